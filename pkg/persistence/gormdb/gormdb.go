// Package gormdb opens GORM connections and owns the row models shared by the
// GORM-backed repositories.
package gormdb

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tendant/simple-rbac/pkg/persistence/pgdb"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Open connects to the database for the given dialect.
func Open(dialect, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	case DialectSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm dialect: %s (supported: postgres, sqlite)", dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// SQLite allows a single writer; transactions must not wait on a second connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	slog.Info("Database opened", "dialect", dialect)
	return db, nil
}

// AutoMigrate creates or updates the identity tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Privilege{}, &Role{}, &User{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// IsDuplicate reports whether err came from a violated unique constraint.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || pgdb.IsUniqueViolation(err) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
