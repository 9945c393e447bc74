package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// MinSecretKeyLength is the minimum SECRET_KEY size; JWT and confirmation
// code keys are derived from it.
const MinSecretKeyLength = 32

// Config holds application configuration values.
type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	MongoURI    string `env:"MONGODB_URI,required,notEmpty"`
	MongoDBName string `env:"MONGODB_DB_NAME,required,notEmpty"`
	RedisURL    string `env:"REDIS_URL"` // optional title cache

	SecretKey           string        `env:"SECRET_KEY,required,notEmpty"`
	AccessTokenTTL      time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
	ConfirmationCodeTTL time.Duration `env:"CONFIRMATION_CODE_TTL" envDefault:"72h"`

	PageSize int `env:"PAGE_SIZE" envDefault:"10"`

	EmailHost        string `env:"EMAIL_HOST"`
	EmailPort        int    `env:"EMAIL_PORT" envDefault:"587"`
	EmailUsername    string `env:"EMAIL_USERNAME"`
	EmailAppPassword string `env:"EMAIL_APP_PASSWORD"`
	EmailFrom        string `env:"EMAIL_FROM" envDefault:"noreply@yamdb.local"`
	EmailAPIKey      string `env:"EMAIL_API_KEY"` // Resend; wins over SMTP

	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ReadTimeout        time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// Load reads an optional .env file, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.SecretKey) < MinSecretKeyLength {
		return nil, fmt.Errorf("SECRET_KEY must be at least %d bytes long, got %d", MinSecretKeyLength, len(cfg.SecretKey))
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if cfg.AccessTokenTTL <= 0 || cfg.ConfirmationCodeTTL <= 0 {
		return nil, errors.New("ACCESS_TOKEN_TTL and CONFIRMATION_CODE_TTL must be positive")
	}
	cfg.AppBaseURL = strings.TrimRight(cfg.AppBaseURL, "/")
	return cfg, nil
}

// UseRedisCache reports whether the title cache is configured.
func (c *Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseResend reports whether mail goes out through the Resend API.
func (c *Config) UseResend() bool {
	return c.EmailAPIKey != ""
}

// UseSMTP reports whether mail goes out over SMTP rather than to the log.
func (c *Config) UseSMTP() bool {
	return c.EmailHost != ""
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

// GetAccessTokenTTL returns the lifetime of issued access tokens.
func (c *Config) GetAccessTokenTTL() time.Duration {
	return c.AccessTokenTTL
}

// GetConfirmationCodeTTL returns how long a mailed confirmation code stays valid.
func (c *Config) GetConfirmationCodeTTL() time.Duration {
	return c.ConfirmationCodeTTL
}

func (c *Config) GetPageSize() int {
	return c.PageSize
}

func (c *Config) GetEmailFrom() string {
	return c.EmailFrom
}
