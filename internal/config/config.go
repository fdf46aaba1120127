// Package config loads mockmentor settings from .env, YAML and the environment.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	DB        DBConfig        `yaml:"db"`
	Profile   ProfileConfig   `yaml:"profile"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Selection SelectionConfig `yaml:"selection"`
	Log       LogConfig       `yaml:"log"`
	Server    ServerConfig    `yaml:"server"`
}

// DBConfig holds SQLite settings. An empty path means the XDG default.
type DBConfig struct {
	Path string `yaml:"path" env:"MOCKMENTOR_DB"`
}

// ProfileConfig selects whose profile is used.
type ProfileConfig struct {
	UserID string `yaml:"user_id" env:"MOCKMENTOR_USER" env-default:"default_user"`
}

// CatalogConfig points at an optional question file replacing the built-in bank.
type CatalogConfig struct {
	Path string `yaml:"path" env:"MOCKMENTOR_CATALOG"`
}

// SelectionConfig tunes question selection.
type SelectionConfig struct {
	Seed         uint64 `yaml:"seed"          env:"MOCKMENTOR_SEED"          env-default:"0"`
	RecentWindow int    `yaml:"recent_window" env:"MOCKMENTOR_RECENT_WINDOW" env-default:"2"`
}

// LogConfig holds logging settings. An empty file disables file output.
type LogConfig struct {
	Level string `yaml:"level" env:"MOCKMENTOR_LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file"  env:"MOCKMENTOR_LOG_FILE"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"MOCKMENTOR_ADDR"             env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"MOCKMENTOR_SHUTDOWN_TIMEOUT" env-default:"10s"`
}
