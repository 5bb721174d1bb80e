package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenNoPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "http://127.0.0.1:8000" {
		t.Errorf("default server url = %q", cfg.Server.URL)
	}
	if cfg.Search.DrugWindow != 300*time.Millisecond {
		t.Errorf("drug window = %v, want 300ms", cfg.Search.DrugWindow)
	}
	if cfg.Search.PricingWindow != 500*time.Millisecond {
		t.Errorf("pricing window = %v, want 500ms", cfg.Search.PricingWindow)
	}
	if cfg.Search.SpecialtyWindow != 500*time.Millisecond {
		t.Errorf("specialty window = %v, want 500ms", cfg.Search.SpecialtyWindow)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "server:\n  url: https://medibuddy.example.com\nsearch:\n  drug_window: 150ms\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "https://medibuddy.example.com" {
		t.Errorf("server url = %q", cfg.Server.URL)
	}
	if cfg.Search.DrugWindow != 150*time.Millisecond {
		t.Errorf("drug window = %v, want 150ms", cfg.Search.DrugWindow)
	}
	// Untouched fields keep their defaults.
	if cfg.Search.PricingWindow != 500*time.Millisecond {
		t.Errorf("pricing window = %v, want default 500ms", cfg.Search.PricingWindow)
	}
}

func TestWSURLDerivation(t *testing.T) {
	tests := []struct {
		name     string
		httpURL  string
		expected string
	}{
		{"plain http", "http://127.0.0.1:8000", "ws://127.0.0.1:8000/ws"},
		{"https upgrades to wss", "https://medibuddy.example.com", "wss://medibuddy.example.com/ws"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Server.URL = tt.httpURL
			if got := cfg.WSURL(); got != tt.expected {
				t.Errorf("WSURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	store := NewPrefsStore(t.TempDir())

	p := store.Load()
	if p.Region != "FL" {
		t.Errorf("default region = %q, want FL", p.Region)
	}
	if p.Theme != "dark" {
		t.Errorf("default theme = %q, want dark", p.Theme)
	}

	p.Region = "NY"
	p.Theme = "light"
	if err := store.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := store.Load()
	if reloaded.Region != "NY" {
		t.Errorf("reloaded region = %q, want NY", reloaded.Region)
	}
	if reloaded.Theme != "light" {
		t.Errorf("reloaded theme = %q, want light", reloaded.Theme)
	}
}

func TestPrefsCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	store := NewPrefsStore(dir)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	p := store.Load()
	if p.Region != "FL" || p.Theme != "dark" {
		t.Errorf("corrupt prefs did not fall back to defaults: %+v", p)
	}
}

func TestPrefsInvalidThemeNormalized(t *testing.T) {
	dir := t.TempDir()
	store := NewPrefsStore(dir)
	if err := os.WriteFile(store.Path(), []byte(`{"version":1,"region":"TX","theme":"neon"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	p := store.Load()
	if p.Region != "TX" {
		t.Errorf("region = %q, want TX", p.Region)
	}
	if p.Theme != "dark" {
		t.Errorf("unknown theme normalized to %q, want dark", p.Theme)
	}
}
