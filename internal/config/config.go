// Package config loads the backend configuration from defaults, an
// optional YAML file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerline/backend/internal/money"
	"gopkg.in/yaml.v3"
)

var ErrAPIURLInvalid = errors.New("the API URL must be an absolute URL with scheme and host")

// Config is the complete backend configuration.
type Config struct {
	APIURL      string   `yaml:"api_url"`
	Port        string   `yaml:"port"`
	GinMode     string   `yaml:"gin_mode"`
	LogFormat   string   `yaml:"log_format"`
	CORSOrigins []string `yaml:"cors_allow_origins,omitempty"`
	EnablePprof bool     `yaml:"enable_pprof"`
	DataDir     string   `yaml:"data_dir"`
	Currency    string   `yaml:"currency"`
	Locale      string   `yaml:"locale"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		APIURL:   "http://localhost:8080/api",
		Port:     "8080",
		GinMode:  "release",
		DataDir:  "data",
		Currency: "USD",
		Locale:   "en-US",
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// skips the file. Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	str := map[string]*string{
		"API_URL":    &c.APIURL,
		"PORT":       &c.Port,
		"GIN_MODE":   &c.GinMode,
		"LOG_FORMAT": &c.LogFormat,
		"DATA_DIR":   &c.DataDir,
		"CURRENCY":   &c.Currency,
		"LOCALE":     &c.Locale,
	}

	for key, target := range str {
		if value, ok := os.LookupEnv(key); ok {
			*target = value
		}
	}

	if origins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok {
		c.CORSOrigins = strings.Fields(origins)
	}

	if pprof, ok := os.LookupEnv("ENABLE_PPROF"); ok {
		c.EnablePprof = pprof == "true"
	}
}

// Validate checks the values that cannot be checked by their type.
func (c *Config) Validate() error {
	if _, err := c.URL(); err != nil {
		return err
	}

	if _, err := c.Formatter(); err != nil {
		return err
	}

	return nil
}

// URL returns the parsed API URL.
func (c *Config) URL() (*url.URL, error) {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrAPIURLInvalid, c.APIURL)
	}

	return u, nil
}

// Formatter returns the money formatter for the configured currency and locale.
func (c *Config) Formatter() (money.Formatter, error) {
	return money.NewFormatter(c.Currency, c.Locale)
}

// DatabasePath returns the path of the sqlite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "ledgerline.db")
}
