package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL        = "http://localhost:5000/api"
	DefaultAPITimeout    = 30 * time.Second
	DefaultSubjectPrefix = "clubmanager.notifications"
	DefaultPort          = "8080"
	DefaultLogLevel      = "info"
)

var DefaultMinAskingPrice = decimal.NewFromInt(100000)

// Config holds clubmanager settings. Values come from defaults, then the
// optional YAML file, then environment variables.
type Config struct {
	APIURL         string
	APITimeout     time.Duration
	MinAskingPrice decimal.Decimal
	StoragePath    string

	NATSURL           string // empty disables NATS publishing
	NATSSubjectPrefix string

	Port           string
	AllowedOrigins []string
	LogLevel       string
}

// fileConfig mirrors the YAML layout; empty fields leave the default alone
type fileConfig struct {
	API struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Market struct {
		MinAskingPrice string `yaml:"min_asking_price"`
	} `yaml:"market"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	NATS struct {
		URL           string `yaml:"url"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		APIURL:            DefaultAPIURL,
		APITimeout:        DefaultAPITimeout,
		MinAskingPrice:    DefaultMinAskingPrice,
		StoragePath:       defaultStoragePath(),
		NATSSubjectPrefix: DefaultSubjectPrefix,
		Port:              DefaultPort,
		AllowedOrigins:    []string{"*"},
		LogLevel:          DefaultLogLevel,
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	setString(&c.APIURL, fc.API.URL)
	setString(&c.StoragePath, fc.Storage.Path)
	setString(&c.NATSURL, fc.NATS.URL)
	setString(&c.NATSSubjectPrefix, fc.NATS.SubjectPrefix)
	setString(&c.Port, fc.Server.Port)
	setString(&c.LogLevel, fc.LogLevel)
	if len(fc.Server.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.Server.AllowedOrigins
	}
	if err := setDuration(&c.APITimeout, "api.timeout", fc.API.Timeout); err != nil {
		return err
	}
	return setDecimal(&c.MinAskingPrice, "market.min_asking_price", fc.Market.MinAskingPrice)
}

func (c *Config) applyEnv() error {
	c.APIURL = getEnv("CLUB_API_URL", c.APIURL)
	c.StoragePath = getEnv("CLUB_STORAGE_PATH", c.StoragePath)
	c.NATSURL = getEnv("NATS_URL", c.NATSURL)
	c.NATSSubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", c.NATSSubjectPrefix)
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}

	if err := setDuration(&c.APITimeout, "CLUB_API_TIMEOUT", os.Getenv("CLUB_API_TIMEOUT")); err != nil {
		return err
	}
	return setDecimal(&c.MinAskingPrice, "MIN_ASKING_PRICE", os.Getenv("MIN_ASKING_PRICE"))
}

// Validate reports settings the rest of the program cannot work with
func (c *Config) Validate() error {
	var errs []error
	if c.APIURL == "" {
		errs = append(errs, errors.New("api url is required"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("api timeout must be positive, got %s", c.APITimeout))
	}
	if c.MinAskingPrice.IsNegative() {
		errs = append(errs, fmt.Errorf("min asking price must not be negative, got %s", c.MinAskingPrice))
	}
	if c.StoragePath == "" {
		errs = append(errs, errors.New("storage path is required"))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Level returns the configured zerolog level, info when unparseable
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".clubmanager", "storage.db")
	}
	return filepath.Join(home, ".clubmanager", "storage.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	*dst = d
	return nil
}

func setDecimal(dst *decimal.Decimal, name, v string) error {
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
