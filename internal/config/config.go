// Package config loads the credential triple and local options once at
// startup. The result is passed explicitly to every component; nothing
// here is global.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	APIURI     string
	AccessKey  string
	Secret     string
	ConsulAddr string
	HistoryDB  string
}

// Load reads an optional landscapectl.yaml from
// ~/.config/landscapectl or the working directory, then lets the
// LANDSCAPE_* environment override it.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("landscapectl")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "landscapectl"))
	}
	v.AddConfigPath(".")

	v.BindEnv("api_uri", "LANDSCAPE_API_URI")
	v.BindEnv("api_key", "LANDSCAPE_API_KEY")
	v.BindEnv("api_secret", "LANDSCAPE_API_SECRET")
	v.BindEnv("consul_addr", "CONSUL_HTTP_ADDR")
	v.BindEnv("history_db", "LANDSCAPE_HISTORY_DB")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		APIURI:     v.GetString("api_uri"),
		AccessKey:  v.GetString("api_key"),
		Secret:     v.GetString("api_secret"),
		ConsulAddr: v.GetString("consul_addr"),
		HistoryDB:  v.GetString("history_db"),
	}

	if cfg.HistoryDB == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "/tmp"
		}
		cfg.HistoryDB = filepath.Join(home, ".landscapectl", "history.db")
	}

	return cfg, nil
}

// Validate checks the credential triple after discovery has had its
// chance to fill in the endpoint. Any failure here is fatal before the
// first network call.
func (c Config) Validate() error {
	if c.APIURI == "" {
		return fmt.Errorf("LANDSCAPE_API_URI is not set")
	}
	u, err := url.Parse(c.APIURI)
	if err != nil {
		return fmt.Errorf("parse LANDSCAPE_API_URI: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("LANDSCAPE_API_URI %q has no host", c.APIURI)
	}
	if c.AccessKey == "" {
		return fmt.Errorf("LANDSCAPE_API_KEY is not set")
	}
	if c.Secret == "" {
		return fmt.Errorf("LANDSCAPE_API_SECRET is not set")
	}
	return nil
}
