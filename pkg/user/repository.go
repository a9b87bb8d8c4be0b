package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-rbac/pkg/role"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID             uuid.UUID   `json:"id"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Email          string      `json:"email"`
	Password       string      `json:"-"` // one-way hash
	Enabled        bool        `json:"enabled"`
	Roles          []role.Role `json:"roles"`
	CreatedAt      time.Time   `json:"created_at"`
	LastModifiedAt time.Time   `json:"last_modified_at"`
}

// UserRepository defines the interface for user storage operations
type UserRepository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	// CreateUser assigns the ID and timestamps. A taken email yields an ErrCodeAlreadyExists error.
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// InTx runs fn in one transaction. Reads through the bound repository lock the user row where supported.
	InTx(ctx context.Context, fn func(repo UserRepository) error) error
}
