package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the full server configuration
type Config struct {
	Server      ServerConfig
	Persistence PersistenceConfig
	Database    DatabaseConfig
	Password    PasswordHashConfig
	Prefix      PrefixConfig
	Bootstrap   BootstrapConfig
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host string `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port int    `env:"HTTP_PORT" env-default:"4000"`
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads envFile when it exists and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
			slog.Debug("No env file found, using environment only", "file", envFile)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	cfg.Prefix = cfg.Prefix.WithBase()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints cleanenv cannot express
func (c Config) Validate() error {
	if _, err := c.Persistence.Backend.RepositoryType(); err != nil {
		return err
	}
	if err := c.Password.Validate(); err != nil {
		return err
	}
	return c.Prefix.Validate()
}
