package config

import (
	"strings"
	"testing"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LANDSCAPE_API_URI", "https://landscape.example.com/api/")
	t.Setenv("LANDSCAPE_API_KEY", "key")
	t.Setenv("LANDSCAPE_API_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIURI != "https://landscape.example.com/api/" {
		t.Errorf("APIURI = %q", cfg.APIURI)
	}
	if cfg.AccessKey != "key" || cfg.Secret != "secret" {
		t.Errorf("Credentials not loaded: %+v", cfg)
	}
	if cfg.HistoryDB == "" {
		t.Error("Expected a default history path")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		APIURI:    "https://landscape.example.com/api/",
		AccessKey: "key",
		Secret:    "secret",
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing uri", func(c *Config) { c.APIURI = "" }, "LANDSCAPE_API_URI"},
		{"uri without host", func(c *Config) { c.APIURI = "/api/only/path" }, "no host"},
		{"missing key", func(c *Config) { c.AccessKey = "" }, "LANDSCAPE_API_KEY"},
		{"missing secret", func(c *Config) { c.Secret = "" }, "LANDSCAPE_API_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
