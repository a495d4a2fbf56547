package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Supported store drivers.
const (
	DriverRueidis = "rueidis"
	DriverGoRedis = "go-redis"
)

// Config holds the data-node configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host            string `yaml:"host" env:"SERVER_IP"`
	Port            int    `yaml:"port" env:"SERVER_PORT"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_timeout_sec"`
	Compress        *bool  `yaml:"compress" env:"HTTP_COMPRESS"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes"`
}

// DatabaseConfig holds store connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver" env:"DB_DRIVER"` // rueidis, go-redis (default: rueidis)
	URL              string   `yaml:"url" env:"REDIS_URL"`
	Addrs            []string `yaml:"addrs" env:"REDIS_ADDRS" envSeparator:","`
	Username         string   `yaml:"username" env:"REDIS_USERNAME"`
	Password         string   `yaml:"password" env:"REDIS_PASSWORD"`
	DB               int      `yaml:"db" env:"REDIS_DB"`
	PoolSize         int      `yaml:"pool_size" env:"REDIS_POOL_SIZE"`
	IdleTimeoutSec   int      `yaml:"idle_timeout_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds fallbacks for omitted search parameters.
type SearchConfig struct {
	UTCOffsetHours     *int   `yaml:"utc_offset_hours" env:"UTC_OFFSET_HOURS"`
	DefaultLimit       int    `yaml:"default_limit"`
	DefaultLanguage    string `yaml:"default_language"`
	DefaultSortField   string `yaml:"default_sort_field"`
	DefaultFilterField string `yaml:"default_filter_field"`
}

// IngestConfig holds batch ingestion settings.
type IngestConfig struct {
	MaxBatchSize int `yaml:"max_batch_size"`
	Concurrency  int `yaml:"concurrency"`
}

// Load reads config/<env>.yaml if present, applies environment overrides,
// fills defaults and validates the result.
func Load(env string) (Config, error) {
	var cfg Config

	configPath := findConfigPath(env)
	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case err == nil:
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// env-only deployment
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	for _, section := range []any{&cfg.HTTP, &cfg.Database, &cfg.Search, &cfg.Logging} {
		if err := env.Parse(section); err != nil {
			return fmt.Errorf("failed to parse environment: %w", err)
		}
	}
	return nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Host == "" {
		c.HTTP.Host = "0.0.0.0"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.Compress == nil {
		on := true
		c.HTTP.Compress = &on
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 32 << 20
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverRueidis
	}
	if c.Database.URL == "" && len(c.Database.Addrs) == 0 {
		c.Database.Addrs = []string{"127.0.0.1:6379"}
	}
	if c.Database.PoolSize <= 0 {
		c.Database.PoolSize = 20
	}
	if c.Database.IdleTimeoutSec <= 0 {
		c.Database.IdleTimeoutSec = 30
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.UTCOffsetHours == nil {
		off := 8
		c.Search.UTCOffsetHours = &off
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 20
	}
	if c.Search.DefaultSortField == "" {
		c.Search.DefaultSortField = "post_timestamp"
	}
	if c.Search.DefaultFilterField == "" {
		c.Search.DefaultFilterField = "post_timestamp"
	}
	if c.Ingest.MaxBatchSize <= 0 {
		c.Ingest.MaxBatchSize = 100
	}
	if c.Ingest.Concurrency <= 0 {
		c.Ingest.Concurrency = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverRueidis, DriverGoRedis:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverRueidis, DriverGoRedis, c.Database.Driver)
	}
	if c.Database.URL == "" && len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.url or database.addrs is required")
	}
	if off := c.Search.UTCOffsetHours; off != nil && (*off < -12 || *off > 14) {
		return fmt.Errorf("search.utc_offset_hours must be between -12 and 14, got %d", *off)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
