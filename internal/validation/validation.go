package validation

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/iudanet/clickvault/internal/clickmap"
)

// IdentityKeyPattern определяет допустимый формат identity key
// Латинские буквы, цифры и _.@- (покрывает и username, и email формы)
// Минимальной длины нет: достаточно непустого ключа
var IdentityKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_.@-]{1,64}$`)

const (
	// MaxIdentityKeyLen максимальная длина identity key
	MaxIdentityKeyLen = 64
	// MinPasswordLen минимальная длина primary password
	MinPasswordLen = 8
	// MaxSiteLen максимальная длина site локатора
	MaxSiteLen = 255
)

// ValidateIdentityKey проверяет, что identity key соответствует требованиям
func ValidateIdentityKey(key string) error {
	if key == "" {
		return fmt.Errorf("identity key cannot be empty")
	}
	if len(key) > MaxIdentityKeyLen {
		return fmt.Errorf("identity key must not exceed %d characters", MaxIdentityKeyLen)
	}
	if !IdentityKeyPattern.MatchString(key) {
		return fmt.Errorf("identity key can only contain letters, numbers, and _.@-")
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к primary password
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}

// ValidateClickMap проверяет набор точек против границ reference изображения.
// Границы приходят от image провайдера, не изобретаются сервером.
func ValidateClickMap(points []clickmap.Point, width, height int) error {
	if len(points) == 0 {
		return fmt.Errorf("click map cannot be empty")
	}
	if len(points) > clickmap.MaxPoints {
		return fmt.Errorf("click map must not exceed %d points", clickmap.MaxPoints)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image bounds must be positive, got %dx%d", width, height)
	}
	for i, p := range points {
		if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
			return fmt.Errorf("point %d (%d,%d) is outside image bounds %dx%d", i, p.X, p.Y, width, height)
		}
	}
	return nil
}

// ValidateSite проверяет site локатор vault записи
func ValidateSite(site string) error {
	if site == "" {
		return fmt.Errorf("site cannot be empty")
	}
	if len(site) > MaxSiteLen {
		return fmt.Errorf("site must not exceed %d characters", MaxSiteLen)
	}
	return nil
}

// ValidateImageURL проверяет, что локатор изображения - абсолютный http(s) URL
func ValidateImageURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("image url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("image url must be an absolute http(s) url")
	}
	return nil
}
