// Package config loads the page server settings from an optional YAML file
// and LISTING_WEB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort         = "8080"
	defaultDocument     = "public/object.json"
	defaultPublicDir    = "public"
	defaultFetchTimeout = 8 * time.Second
	defaultRateLimit    = 120
)

// Config holds the runtime settings of the page server.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// Document is the URL or path of the listing document.
	Document string `yaml:"document"`
	// PublicDir holds static assets served under /assets/.
	PublicDir string `yaml:"public_dir"`
	// Template optionally replaces the embedded page skeleton.
	Template string `yaml:"template"`
	// BaseURL is the canonical page URL published in structured data.
	BaseURL string `yaml:"base_url"`
	// FetchTimeout bounds one document fetch.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	// RateLimit is the number of requests allowed per client IP per minute;
	// zero disables limiting.
	RateLimit int `yaml:"rate_limit"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:         ":" + defaultPort,
		Document:     defaultDocument,
		PublicDir:    defaultPublicDir,
		FetchTimeout: defaultFetchTimeout,
		RateLimit:    defaultRateLimit,
		LogLevel:     "info",
	}
}

// Load reads path (when non-empty) over the defaults and applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// applyEnv overrides fields from the environment. Port resolution prefers
// LISTING_WEB_PORT, then PORT.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if port, ok := get("LISTING_WEB_PORT"); ok {
		c.Addr = ":" + port
	} else if port, ok := get("PORT"); ok {
		c.Addr = ":" + port
	}
	if v, ok := get("LISTING_WEB_DOCUMENT"); ok {
		c.Document = v
	}
	if v, ok := get("LISTING_WEB_PUBLIC_DIR"); ok {
		c.PublicDir = v
	}
	if v, ok := get("LISTING_WEB_TEMPLATE"); ok {
		c.Template = v
	}
	if v, ok := get("LISTING_WEB_BASE_URL"); ok {
		c.BaseURL = v
	}
	if v, ok := get("LISTING_WEB_FETCH_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: LISTING_WEB_FETCH_TIMEOUT: %w", err)
		}
		c.FetchTimeout = d
	}
	if v, ok := get("LISTING_WEB_RATE_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: LISTING_WEB_RATE_LIMIT: %w", err)
		}
		c.RateLimit = n
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("config: addr is required"))
	}
	if strings.TrimSpace(c.Document) == "" {
		errs = append(errs, errors.New("config: document is required"))
	}
	if c.FetchTimeout < 0 {
		errs = append(errs, errors.New("config: fetch_timeout must not be negative"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("config: rate_limit must not be negative"))
	}
	return errors.Join(errs...)
}
