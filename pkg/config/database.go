package config

import (
	"fmt"

	"github.com/tendant/simple-rbac/pkg/persistence"
)

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	Host     string `env:"IDM_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"IDM_PG_PORT" env-default:"5432"`
	Database string `env:"IDM_PG_DATABASE" env-default:"idm_db"`
	User     string `env:"IDM_PG_USER" env-default:"idm"`
	Password string `env:"IDM_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"IDM_PG_SCHEMA" env-default:"public"`
}

// ToDatabaseURL converts the config to a PostgreSQL connection URL
func (d DatabaseConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

// PersistenceConfig selects the storage backend
type PersistenceConfig struct {
	Backend    persistence.Backend `env:"IDM_PERSISTENCE" env-default:"memory"`
	SQLitePath string              `env:"IDM_SQLITE_PATH" env-default:"idm.db"`
	// Migrate applies the schema (postgres) or runs AutoMigrate (gorm) at startup
	Migrate bool `env:"IDM_PG_MIGRATE" env-default:"true"`
}
