// Package persistence names the storage backends the repositories can run on.
//
// Subpackages hold driver plumbing: pgdb for pgx, gormdb for GORM.
package persistence

import "fmt"

// Type selects a repository implementation.
type Type string

const (
	TypeMemory   Type = "memory"
	TypePostgres Type = "postgres"
	TypeGorm     Type = "gorm"
)

// Backend is the value of IDM_PERSISTENCE.
type Backend string

const (
	BackendMemory       Backend = "memory"
	BackendPostgres     Backend = "postgres"
	BackendGormPostgres Backend = "gorm-postgres"
	BackendGormSQLite   Backend = "gorm-sqlite"
)

// RepositoryType maps a configured backend onto the repository family serving it.
func (b Backend) RepositoryType() (Type, error) {
	switch b {
	case BackendMemory, "":
		return TypeMemory, nil
	case BackendPostgres:
		return TypePostgres, nil
	case BackendGormPostgres, BackendGormSQLite:
		return TypeGorm, nil
	default:
		return "", fmt.Errorf("unsupported persistence backend: %s (supported: memory, postgres, gorm-postgres, gorm-sqlite)", b)
	}
}
