package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvConfigPath names the YAML config file.
const EnvConfigPath = "MOCKMENTOR_CONFIG"

// DefaultConfigPath is used when MOCKMENTOR_CONFIG is unset.
const DefaultConfigPath = "./mockmentor.yaml"

// Load reads configuration from .env, a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). A .env file in the
// working directory only fills variables that are not already set.
// If the YAML file does not exist and MOCKMENTOR_CONFIG was not set
// explicitly, configuration is loaded from ENV + defaults only.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config

	path := os.Getenv(EnvConfigPath)
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
