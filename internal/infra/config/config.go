package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Bedtime BedtimeConfig `yaml:"bedtime"`
	Oracle  OracleConfig  `yaml:"oracle"`
	Forms   FormsConfig   `yaml:"forms"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	AllowedOrigins  []string        `yaml:"allowedOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// BedtimeConfig controls how recommendations are displayed.
type BedtimeConfig struct {
	ClockStyle string `yaml:"clockStyle"`
}

// OracleConfig selects where the trained sleep model artifact is read from.
type OracleConfig struct {
	Source          string         `yaml:"source"`
	Path            string         `yaml:"path"`
	RefreshInterval time.Duration  `yaml:"refreshInterval"`
	Object          ObjectConfig   `yaml:"object"`
	Registry        RegistryConfig `yaml:"registry"`
}

// ObjectConfig locates the artifact in S3-compatible storage.
type ObjectConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// RegistryConfig locates the artifact in the Postgres model registry.
type RegistryConfig struct {
	DSN      string `yaml:"dsn"`
	Model    string `yaml:"model"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// FormsConfig controls form session storage.
type FormsConfig struct {
	TTL   time.Duration `yaml:"ttl"`
	Redis RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for session storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Oracle sources.
const (
	OracleSourceFile     = "file"
	OracleSourceObject   = "object"
	OracleSourceRegistry = "registry"
)

// Load reads configuration from an optional .env file, a YAML file and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("BEDTIME_CLOCK_STYLE"); v != "" {
		cfg.Bedtime.ClockStyle = v
	}
	if v := os.Getenv("ORACLE_SOURCE"); v != "" {
		cfg.Oracle.Source = v
	}
	if v := os.Getenv("ORACLE_PATH"); v != "" {
		cfg.Oracle.Path = v
	}
	if v := os.Getenv("ORACLE_REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Oracle.RefreshInterval = parsed
		}
	}
	if v := os.Getenv("ORACLE_OBJECT_ENDPOINT"); v != "" {
		cfg.Oracle.Object.Endpoint = v
	}
	if v := os.Getenv("ORACLE_OBJECT_ACCESS_KEY"); v != "" {
		cfg.Oracle.Object.AccessKey = v
	}
	if v := os.Getenv("ORACLE_OBJECT_SECRET_KEY"); v != "" {
		cfg.Oracle.Object.SecretKey = v
	}
	if v := os.Getenv("ORACLE_OBJECT_BUCKET"); v != "" {
		cfg.Oracle.Object.Bucket = v
	}
	if v := os.Getenv("ORACLE_OBJECT_REGION"); v != "" {
		cfg.Oracle.Object.Region = v
	}
	if v := os.Getenv("ORACLE_OBJECT_KEY"); v != "" {
		cfg.Oracle.Object.Key = v
	}
	if v := os.Getenv("ORACLE_REGISTRY_DSN"); v != "" {
		cfg.Oracle.Registry.DSN = v
	}
	if v := os.Getenv("ORACLE_REGISTRY_MODEL"); v != "" {
		cfg.Oracle.Registry.Model = v
	}
	if v := os.Getenv("ORACLE_REGISTRY_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Oracle.Registry.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("FORMS_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Forms.TTL = parsed
		}
	}
	if v := os.Getenv("FORMS_REDIS_ENABLED"); v != "" {
		cfg.Forms.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("FORMS_REDIS_ADDR"); v != "" {
		cfg.Forms.Redis.Addr = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Bedtime: BedtimeConfig{
			ClockStyle: "12h",
		},
		Oracle: OracleConfig{
			Source: OracleSourceFile,
			Path:   "configs/models/sleep_calculator.yaml",
			Registry: RegistryConfig{
				Model:    "sleep-calculator",
				MaxConns: 4,
			},
		},
		Forms: FormsConfig{
			TTL: 24 * time.Hour,
			Redis: RedisConfig{
				Prefix: "betterrest:form",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	switch c.Bedtime.ClockStyle {
	case "12h", "24h":
	default:
		return fmt.Errorf("bedtime.clockStyle must be 12h or 24h, got %q", c.Bedtime.ClockStyle)
	}
	if c.Oracle.RefreshInterval < 0 {
		return errors.New("oracle.refreshInterval cannot be negative")
	}
	switch c.Oracle.Source {
	case OracleSourceFile:
		if strings.TrimSpace(c.Oracle.Path) == "" {
			return errors.New("oracle.path cannot be empty when source is file")
		}
	case OracleSourceObject:
		if strings.TrimSpace(c.Oracle.Object.Endpoint) == "" {
			return errors.New("oracle.object.endpoint cannot be empty when source is object")
		}
		if strings.TrimSpace(c.Oracle.Object.Bucket) == "" || strings.TrimSpace(c.Oracle.Object.Key) == "" {
			return errors.New("oracle.object.bucket and oracle.object.key are required when source is object")
		}
	case OracleSourceRegistry:
		if strings.TrimSpace(c.Oracle.Registry.DSN) == "" {
			return errors.New("oracle.registry.dsn cannot be empty when source is registry")
		}
		if strings.TrimSpace(c.Oracle.Registry.Model) == "" {
			return errors.New("oracle.registry.model cannot be empty when source is registry")
		}
	default:
		return fmt.Errorf("oracle.source must be one of file, object, registry; got %q", c.Oracle.Source)
	}
	if c.Forms.TTL < 0 {
		return errors.New("forms.ttl cannot be negative")
	}
	if c.Forms.Redis.Enabled && strings.TrimSpace(c.Forms.Redis.Addr) == "" {
		return errors.New("forms.redis.addr cannot be empty when redis storage is enabled")
	}
	return nil
}
