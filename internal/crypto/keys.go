package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// LoadKey декодирует процессный ключ шифрования из Base64 конфигурации.
// Ключ обязан приходить извне (env/config) и переживать рестарты:
// свежесгенерированный при старте ключ осиротил бы все ранее зашифрованные
// записи. Поэтому здесь только загрузка, генерация - в cmd/genkey.
func LoadKey(keyBase64 string) ([]byte, error) {
	if keyBase64 == "" {
		return nil, fmt.Errorf("encryption key is not configured")
	}

	key, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	return key, nil
}

// GenerateKeyBase64 генерирует новый случайный ключ и возвращает его в Base64.
// Используется только офлайн-утилитой cmd/genkey, никогда сервером.
func GenerateKeyBase64() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
