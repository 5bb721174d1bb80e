// Package config loads the client's YAML configuration and the small set of
// durable user preferences (region, theme) that survive across sessions.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full client configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig locates the MediBuddy backend.
type ServerConfig struct {
	// URL is the HTTP base, e.g. "http://127.0.0.1:8000". The websocket
	// endpoint is derived from it.
	URL string `yaml:"url"`
}

// SearchConfig tunes the debounced search surfaces. The pricing and
// specialty windows are longer because their downstream fan-out is more
// expensive than plain drug lookup.
type SearchConfig struct {
	DrugWindow      time.Duration `yaml:"drug_window"`
	PricingWindow   time.Duration `yaml:"pricing_window"`
	SpecialtyWindow time.Duration `yaml:"specialty_window"`
	ResultLimit     int           `yaml:"result_limit"`
}

// LogConfig controls the debug log file. Stdout belongs to the TUI, so
// logging always goes to a file.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{URL: "http://127.0.0.1:8000"},
		Search: SearchConfig{
			DrugWindow:      300 * time.Millisecond,
			PricingWindow:   500 * time.Millisecond,
			SpecialtyWindow: 500 * time.Millisecond,
			ResultLimit:     20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// WSURL derives the push channel endpoint from the HTTP base URL.
func (c *Config) WSURL() string {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return "ws://127.0.0.1:8000/ws"
	}
	scheme := "ws"
	if strings.HasPrefix(u.Scheme, "https") {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s/ws", scheme, u.Host)
}
