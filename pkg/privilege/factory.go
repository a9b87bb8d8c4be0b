package privilege

import (
	"fmt"

	"github.com/tendant/simple-rbac/pkg/persistence"
	"github.com/tendant/simple-rbac/pkg/persistence/pgdb"
	"gorm.io/gorm"
)

// RepositoryConfig contains configuration for creating a privilege repository
type RepositoryConfig struct {
	// DB is required for PostgreSQL repositories
	DB pgdb.DBTX
	// Gorm is required for GORM repositories
	Gorm *gorm.DB
}

// NewPrivilegeRepository creates a new privilege repository based on the persistence type
func NewPrivilegeRepository(persistenceType persistence.Type, config RepositoryConfig) (PrivilegeRepository, error) {
	switch persistenceType {
	case persistence.TypeMemory:
		return NewInMemoryPrivilegeRepository(), nil
	case persistence.TypePostgres:
		if config.DB == nil {
			return nil, fmt.Errorf("db required for postgres repository")
		}
		return NewPostgresPrivilegeRepository(config.DB), nil
	case persistence.TypeGorm:
		if config.Gorm == nil {
			return nil, fmt.Errorf("gorm db required for gorm repository")
		}
		return NewGormPrivilegeRepository(config.Gorm), nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s (supported: memory, postgres, gorm)", persistenceType)
	}
}
