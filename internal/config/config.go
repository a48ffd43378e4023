// Package config loads and validates configuration for the tripboard API
// server and the tripdash client. Values come from an optional YAML file named
// by TRIPBOARD_CONFIG_PATH, then from environment variables, which win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the environment variable holding the optional YAML file.
const ConfigPathEnv = "TRIPBOARD_CONFIG_PATH"

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `yaml:"port"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `yaml:"database_url"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	CORSOrigins []string `yaml:"cors_origins"`

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `yaml:"migrate_on_start"`

	ExchangeRate ExchangeRateConfig `yaml:"exchange_rate"`
	Supabase     SupabaseConfig     `yaml:"supabase"`
}

// ExchangeRateConfig points the exchange-rate endpoint at a page to scrape.
// An empty URL disables GET /exchange-rate.
type ExchangeRateConfig struct {
	URL    string        `yaml:"url"`
	Class  string        `yaml:"class"`
	Source string        `yaml:"source"`
	TTL    time.Duration `yaml:"ttl"`
}

// SupabaseConfig enables bearer-token auth when both fields are set.
type SupabaseConfig struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

// Enabled reports whether token verification is configured.
func (s SupabaseConfig) Enabled() bool { return s.URL != "" && s.Key != "" }

// ClientConfig holds configuration for the tripdash command-line client.
type ClientConfig struct {
	APIURL          string        `yaml:"api_url"`
	ProfilePath     string        `yaml:"profile"`
	Token           string        `yaml:"token"`
	Timeout         time.Duration `yaml:"timeout"`
	OrphanRefetches int           `yaml:"orphan_refetches"`
}

// Load reads server configuration. It returns an error listing any required
// variables that are not set, or describing the first malformed value.
func Load() (Config, error) {
	cfg := Config{
		Port:         "8080",
		LogLevel:     "info",
		CORSOrigins:  []string{"http://localhost:5173"},
		MaxBodyBytes: 1 << 20,
		ExchangeRate: ExchangeRateConfig{Class: "rate", TTL: time.Hour},
	}

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := loadFromFile(path, "server", &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	cfg.ExchangeRate.URL = getEnv("EXCHANGE_RATE_URL", cfg.ExchangeRate.URL)
	cfg.ExchangeRate.Class = getEnv("EXCHANGE_RATE_CLASS", cfg.ExchangeRate.Class)
	cfg.ExchangeRate.Source = getEnv("EXCHANGE_RATE_SOURCE", cfg.ExchangeRate.Source)
	cfg.Supabase.URL = getEnv("SUPABASE_URL", cfg.Supabase.URL)
	cfg.Supabase.Key = getEnv("SUPABASE_KEY", cfg.Supabase.Key)

	var errs []error
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("invalid MAX_BODY_BYTES %q", v))
		} else {
			cfg.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("MIGRATE_ON_START"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid MIGRATE_ON_START %q", v))
		} else {
			cfg.MigrateOnStart = b
		}
	}
	if v := os.Getenv("EXCHANGE_RATE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("invalid EXCHANGE_RATE_TTL %q", v))
		} else {
			cfg.ExchangeRate.TTL = d
		}
	}
	if (cfg.Supabase.URL == "") != (cfg.Supabase.Key == "") {
		errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_KEY must be set together"))
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		errs = append([]error{fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))}, errs...)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// LoadClient reads tripdash configuration. Nothing is required.
func LoadClient() (ClientConfig, error) {
	cfg := ClientConfig{
		APIURL:          "http://localhost:8080",
		ProfilePath:     defaultProfilePath(),
		Timeout:         15 * time.Second,
		OrphanRefetches: 1,
	}

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := loadFromFile(path, "client", &cfg); err != nil {
			return ClientConfig{}, err
		}
	}

	cfg.APIURL = strings.TrimRight(getEnv("TRIPDASH_API_URL", cfg.APIURL), "/")
	cfg.ProfilePath = getEnv("TRIPDASH_PROFILE", cfg.ProfilePath)
	cfg.Token = getEnv("TRIPDASH_TOKEN", cfg.Token)

	if v := os.Getenv("TRIPDASH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return ClientConfig{}, fmt.Errorf("invalid TRIPDASH_TIMEOUT %q", v)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("TRIPDASH_ORPHAN_REFETCHES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return ClientConfig{}, fmt.Errorf("invalid TRIPDASH_ORPHAN_REFETCHES %q", v)
		}
		cfg.OrphanRefetches = n
	}
	return cfg, nil
}

// loadFromFile decodes the named top-level section of a YAML file into dst.
// Keys absent from the file leave dst untouched.
func loadFromFile(path, section string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	node, ok := doc[section]
	if !ok {
		return nil
	}
	if err := node.Decode(dst); err != nil {
		return fmt.Errorf("parse config file section %q: %w", section, err)
	}
	return nil
}

func defaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tripdash-profile.db"
	}
	return filepath.Join(home, ".tripdash", "profile.db")
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
