package role

import (
	"fmt"

	"github.com/tendant/simple-rbac/pkg/persistence"
	"github.com/tendant/simple-rbac/pkg/persistence/pgdb"
	"github.com/tendant/simple-rbac/pkg/privilege"
	"gorm.io/gorm"
)

// RepositoryConfig contains configuration for creating a role repository
type RepositoryConfig struct {
	// DB is required for PostgreSQL repositories
	DB pgdb.DBTX
	// Gorm is required for GORM repositories
	Gorm *gorm.DB
	// Privileges lets the in-memory repository drop references to deleted privileges
	Privileges privilege.PrivilegeRepository
}

// NewRoleRepository creates a new role repository based on the persistence type
func NewRoleRepository(persistenceType persistence.Type, config RepositoryConfig) (RoleRepository, error) {
	switch persistenceType {
	case persistence.TypeMemory:
		return NewInMemoryRoleRepository(config.Privileges), nil
	case persistence.TypePostgres:
		if config.DB == nil {
			return nil, fmt.Errorf("db required for postgres repository")
		}
		return NewPostgresRoleRepository(config.DB), nil
	case persistence.TypeGorm:
		if config.Gorm == nil {
			return nil, fmt.Errorf("gorm db required for gorm repository")
		}
		return NewGormRoleRepository(config.Gorm), nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s (supported: memory, postgres, gorm)", persistenceType)
	}
}
