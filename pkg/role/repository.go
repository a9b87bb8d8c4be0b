package role

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tendant/simple-rbac/pkg/privilege"
)

var ErrRoleNotFound = errors.New("role not found")

type Role struct {
	ID         uuid.UUID             `json:"id"`
	Name       string                `json:"name"`
	Privileges []privilege.Privilege `json:"privileges"`
}

// RoleRepository defines the interface for role storage operations
type RoleRepository interface {
	FindRoles(ctx context.Context) ([]Role, error)
	GetRoleByID(ctx context.Context, id uuid.UUID) (Role, error)
	GetRoleByName(ctx context.Context, name string) (Role, error)
	// CreateRole stores the role together with its privilege references.
	CreateRole(ctx context.Context, name string, privileges []privilege.Privilege) (Role, error)
	// DeleteRole removes the role and its join rows; referenced privileges and users remain.
	DeleteRole(ctx context.Context, id uuid.UUID) error

	InTx(ctx context.Context, fn func(repo RoleRepository) error) error
}
