// Package config handles configuration for the ClickVault server,
// including defaults, JSON overlay, environment variables and flags.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/iudanet/clickvault/internal/clickmap"
)

// Config holds runtime settings for the ClickVault server.
type Config struct {
	// Address - bind адрес HTTP сервера
	Address string
	// DatabasePath - путь к файлу SQLite
	DatabasePath string
	// EncryptionKey - Base64 AES-256 ключ. Обязателен: сервер никогда не
	// генерирует ключ сам (см. cmd/genkey), иначе рестарт осиротит все
	// ранее зашифрованные записи.
	EncryptionKey string
	// JWTSecret - HMAC секрет для подписи session token (HS256)
	JWTSecret string
	// TokenTTL - время жизни session token
	TokenTTL time.Duration
	// ClickTolerance - допуск в пикселях при сравнении click-map
	// (системная константа, не per-identity)
	ClickTolerance int
	// ClickMetric - метрика расстояния: euclidean или chebyshev
	ClickMetric string
	// UnsplashBaseURL - base URL image провайдера (переопределяется в тестах)
	UnsplashBaseURL string
	// UnsplashAccessKey - ключ доступа image провайдера
	UnsplashAccessKey string
	// DependencyTimeout - верхняя граница на вызовы store и image провайдера
	DependencyTimeout time.Duration
	// RateLimit / RateWindow - общий лимит запросов на IP
	RateLimit  int
	RateWindow time.Duration
	// AuthRateLimit / AuthRateWindow - более строгий лимит для /register и
	// /login (смягчение отсутствия lockout счетчика)
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: ключи не имеют дефолтов - их обязана дать среда.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.DatabasePath = "clickvault.db"
	c.TokenTTL = 1 * time.Hour
	c.ClickTolerance = 8
	c.ClickMetric = string(clickmap.MetricEuclidean)
	c.UnsplashBaseURL = ""
	c.DependencyTimeout = 5 * time.Second
	c.RateLimit = 100
	c.RateWindow = 1 * time.Minute
	c.AuthRateLimit = 10
	c.AuthRateWindow = 1 * time.Minute
}

// Load builds a Config by applying defaults, then overlaying values from an
// optional JSON file (-config), environment variables and command-line flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("clickvault-server", flag.ContinueOnError)

	configPath := fs.String("config", "", "path to JSON config file")
	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to SQLite database file")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "JWT signing secret")
	tokenTTLMin := fs.Int("t", int(cfg.TokenTTL.Minutes()), "session token TTL (in minutes)")
	fs.IntVar(&cfg.ClickTolerance, "tol", cfg.ClickTolerance, "click match tolerance (pixels)")
	fs.StringVar(&cfg.ClickMetric, "metric", cfg.ClickMetric, "click distance metric (euclidean|chebyshev)")
	fs.StringVar(&cfg.UnsplashAccessKey, "u", cfg.UnsplashAccessKey, "Unsplash access key")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// JSON файл перекрывает дефолты, но проигрывает env и явным флагам:
	// поэтому сначала json, потом env, потом повторный проход флагов
	if *configPath != "" {
		if err := cfg.applyJSON(*configPath); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	// -t перекрывает TTL только если флаг передан явно
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.TokenTTL = time.Duration(*tokenTTLMin) * time.Minute
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// jsonConfig - промежуточный DTO только для чтения JSON файла
type jsonConfig struct {
	Address           string `json:"address"`
	DatabasePath      string `json:"database_path"`
	EncryptionKey     string `json:"encryption_key"`
	JWTSecret         string `json:"jwt_secret"`
	TokenTTLMinutes   int    `json:"token_ttl_minutes"`
	ClickTolerance    *int   `json:"click_tolerance"`
	ClickMetric       string `json:"click_metric"`
	UnsplashBaseURL   string `json:"unsplash_base_url"`
	UnsplashAccessKey string `json:"unsplash_access_key"`
}

func (c *Config) applyJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if jc.Address != "" {
		c.Address = jc.Address
	}
	if jc.DatabasePath != "" {
		c.DatabasePath = jc.DatabasePath
	}
	if jc.EncryptionKey != "" {
		c.EncryptionKey = jc.EncryptionKey
	}
	if jc.JWTSecret != "" {
		c.JWTSecret = jc.JWTSecret
	}
	if jc.TokenTTLMinutes > 0 {
		c.TokenTTL = time.Duration(jc.TokenTTLMinutes) * time.Minute
	}
	if jc.ClickTolerance != nil {
		c.ClickTolerance = *jc.ClickTolerance
	}
	if jc.ClickMetric != "" {
		c.ClickMetric = jc.ClickMetric
	}
	if jc.UnsplashBaseURL != "" {
		c.UnsplashBaseURL = jc.UnsplashBaseURL
	}
	if jc.UnsplashAccessKey != "" {
		c.UnsplashAccessKey = jc.UnsplashAccessKey
	}

	return nil
}

// applyEnv перекрывает значения из переменных окружения.
// Секреты в проде приходят именно отсюда, не из флагов.
func (c *Config) applyEnv() {
	if v := os.Getenv("CLICKVAULT_ADDRESS"); v != "" {
		c.Address = v
	}
	if v := os.Getenv("CLICKVAULT_DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("CLICKVAULT_ENCRYPTION_KEY"); v != "" {
		c.EncryptionKey = v
	}
	if v := os.Getenv("CLICKVAULT_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("CLICKVAULT_CLICK_TOLERANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ClickTolerance = n
		}
	}
	if v := os.Getenv("CLICKVAULT_CLICK_METRIC"); v != "" {
		c.ClickMetric = v
	}
	if v := os.Getenv("CLICKVAULT_UNSPLASH_BASE_URL"); v != "" {
		c.UnsplashBaseURL = v
	}
	if v := os.Getenv("CLICKVAULT_UNSPLASH_ACCESS_KEY"); v != "" {
		c.UnsplashAccessKey = v
	}
}

// Validate проверяет, что конфигурация пригодна для запуска сервера
func (c *Config) Validate() error {
	if c.EncryptionKey == "" {
		return fmt.Errorf("encryption key is required (CLICKVAULT_ENCRYPTION_KEY), generate one with clickvault-genkey")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (CLICKVAULT_JWT_SECRET)")
	}
	if c.ClickTolerance < 0 {
		return fmt.Errorf("click tolerance must be >= 0, got %d", c.ClickTolerance)
	}
	if !clickmap.Metric(c.ClickMetric).Valid() {
		return fmt.Errorf("unknown click metric %q", c.ClickMetric)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	return nil
}
