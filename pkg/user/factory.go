package user

import (
	"fmt"

	"github.com/tendant/simple-rbac/pkg/persistence"
	"github.com/tendant/simple-rbac/pkg/persistence/pgdb"
	"gorm.io/gorm"
)

// RepositoryConfig contains configuration for creating a user repository
type RepositoryConfig struct {
	DB   pgdb.DBTX
	Gorm *gorm.DB
}

// NewUserRepository creates a new user repository based on the persistence type
func NewUserRepository(persistenceType persistence.Type, config RepositoryConfig) (UserRepository, error) {
	switch persistenceType {
	case persistence.TypeMemory:
		return NewInMemoryUserRepository(), nil
	case persistence.TypePostgres:
		if config.DB == nil {
			return nil, fmt.Errorf("db required for postgres repository")
		}
		return NewPostgresUserRepository(config.DB), nil
	case persistence.TypeGorm:
		if config.Gorm == nil {
			return nil, fmt.Errorf("gorm db required for gorm repository")
		}
		return NewGormUserRepository(config.Gorm), nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s (supported: memory, postgres, gorm)", persistenceType)
	}
}
