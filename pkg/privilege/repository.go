package privilege

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrPrivilegeNotFound = errors.New("privilege not found")

type Privilege struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PrivilegeRepository defines the interface for privilege storage operations.
// Lookups return ErrPrivilegeNotFound when nothing matches; CreatePrivilege
// returns an ErrCodeAlreadyExists error when the name is taken.
type PrivilegeRepository interface {
	FindPrivileges(ctx context.Context) ([]Privilege, error)
	GetPrivilegeByID(ctx context.Context, id uuid.UUID) (Privilege, error)
	GetPrivilegeByName(ctx context.Context, name string) (Privilege, error)
	CreatePrivilege(ctx context.Context, name string) (Privilege, error)
	DeletePrivilege(ctx context.Context, id uuid.UUID) error

	// InTx runs fn against a repository bound to a single transaction.
	InTx(ctx context.Context, fn func(repo PrivilegeRepository) error) error
}
