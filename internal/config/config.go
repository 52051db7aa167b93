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

type Config struct {
	HTTPAddr string `yaml:"httpAddr"`

	API struct {
		BaseURL string        `yaml:"baseURL"`
		Timeout time.Duration `yaml:"timeout"`
		Token   string        `yaml:"token"`
	} `yaml:"api"`

	TokenStore string `yaml:"tokenStore"` // memory|db

	Database struct {
		Driver string `yaml:"driver"` // mysql|sqlite
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	Logging struct {
		Level string `yaml:"level"` // debug|info|warn|error
		File  string `yaml:"file"`
	} `yaml:"logging"`

	Storage struct {
		Driver         string `yaml:"driver"` // local|s3
		LocalDir       string `yaml:"localDir"`
		LocalURLPrefix string `yaml:"localURLPrefix"`
		S3Region       string `yaml:"s3Region"`
		S3Bucket       string `yaml:"s3Bucket"`
		S3Prefix       string `yaml:"s3Prefix"`
		S3PublicBase   string `yaml:"s3PublicBaseURL"`
	} `yaml:"storage"`

	MetricsEnabled  bool `yaml:"metricsEnabled"`
	DefaultPageSize int  `yaml:"defaultPageSize"`
}

func defaults() Config {
	var c Config
	c.HTTPAddr = ":8080"
	c.API.BaseURL = "http://127.0.0.1:8000/api/"
	c.API.Timeout = 10 * time.Second
	c.TokenStore = "memory"
	c.Database.Driver = "sqlite"
	c.Database.DSN = "laundrydesk.db"
	c.Logging.Level = "info"
	c.Storage.Driver = "local"
	c.DefaultPageSize = 10
	return c
}

// Load reads .env (if present), then the optional YAML file named by
// CONFIG_FILE, then applies environment overrides.
func Load() (Config, error) {
	_ = godotenv.Load()

	c := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := c.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

func (c *Config) readFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	str(&c.HTTPAddr, "HTTP_ADDR")
	str(&c.API.BaseURL, "API_BASE_URL")
	str(&c.API.Token, "API_TOKEN")
	str(&c.TokenStore, "TOKEN_STORE")
	str(&c.Database.Driver, "DB_DRIVER")
	str(&c.Database.DSN, "DB_DSN")
	str(&c.Logging.Level, "LOG_LEVEL")
	str(&c.Logging.File, "LOG_FILE")
	str(&c.Storage.Driver, "STORAGE_DRIVER")
	str(&c.Storage.LocalDir, "LOCAL_UPLOAD_DIR")
	str(&c.Storage.LocalURLPrefix, "LOCAL_UPLOAD_URL_PREFIX")
	str(&c.Storage.S3Region, "S3_REGION")
	str(&c.Storage.S3Bucket, "S3_BUCKET")
	str(&c.Storage.S3Prefix, "S3_PREFIX")
	str(&c.Storage.S3PublicBase, "S3_PUBLIC_BASE_URL")

	if v := os.Getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: API_TIMEOUT: %w", err)
		}
		c.API.Timeout = d
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: METRICS_ENABLED: %w", err)
		}
		c.MetricsEnabled = b
	}
	if v := os.Getenv("DEFAULT_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DEFAULT_PAGE_SIZE: %w", err)
		}
		c.DefaultPageSize = n
	}
	return nil
}

func str(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("API_TIMEOUT must be > 0"))
	}
	switch c.TokenStore {
	case "memory", "db":
	default:
		errs = append(errs, fmt.Errorf("TOKEN_STORE must be memory or db, got %q", c.TokenStore))
	}
	if c.TokenStore == "db" {
		switch c.Database.Driver {
		case "mysql", "sqlite":
		default:
			errs = append(errs, fmt.Errorf("DB_DRIVER must be mysql or sqlite, got %q", c.Database.Driver))
		}
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("DB_DSN is required"))
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	if c.DefaultPageSize < 1 || c.DefaultPageSize > 100 {
		errs = append(errs, errors.New("DEFAULT_PAGE_SIZE must be between 1 and 100"))
	}
	return errors.Join(errs...)
}
