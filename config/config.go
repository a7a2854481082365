package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents the deployment environment of the service.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment falls back to Development for unknown values.
func ParseEnvironment(v string) Environment {
	switch Environment(strings.ToLower(v)) {
	case Production:
		return Production
	case Staging:
		return Staging
	case Testing:
		return Testing
	default:
		return Development
	}
}

// ImagePolicy decides what happens to an unusable client-supplied image URL.
type ImagePolicy string

const (
	// ImagePolicyLenient drops the value and logs a warning.
	ImagePolicyLenient ImagePolicy = "lenient"
	// ImagePolicyStrict rejects the request with a validation error.
	ImagePolicyStrict ImagePolicy = "strict"
)

// Config is built once at startup and handed to the components that need it.
type Config struct {
	Env         string `envconfig:"APP_ENV" default:"development"`
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Discrete connection settings, used when DATABASE_URL is not set.
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"168h"`

	PublicBaseURL  string `envconfig:"PUBLIC_BASE_URL"`
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`
	ImageURLPolicy string `envconfig:"IMAGE_URL_POLICY" default:"lenient"`

	RedisURL string        `envconfig:"REDIS_URL"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"jewelry.orders"`

	BackupDir       string        `envconfig:"BACKUP_DIR"`
	BackupRetention time.Duration `envconfig:"BACKUP_RETENTION" default:"96h"`
	BackupHour      int           `envconfig:"BACKUP_HOUR" default:"2"`
}

// Load reads the process environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.DatabaseURL == "" && c.DBHost == "" {
		return errors.New("either DATABASE_URL or DB_HOST must be set")
	}
	switch ImagePolicy(c.ImageURLPolicy) {
	case ImagePolicyLenient, ImagePolicyStrict:
	default:
		return fmt.Errorf("unknown IMAGE_URL_POLICY %q", c.ImageURLPolicy)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if c.BackupHour < 0 || c.BackupHour > 23 {
		return fmt.Errorf("BACKUP_HOUR out of range: %d", c.BackupHour)
	}
	return nil
}

// Environment returns the parsed APP_ENV value.
func (c Config) Environment() Environment {
	return ParseEnvironment(c.Env)
}

// Policy returns the configured image URL policy.
func (c Config) Policy() ImagePolicy {
	return ImagePolicy(c.ImageURLPolicy)
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
