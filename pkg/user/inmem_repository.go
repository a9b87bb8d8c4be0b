package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/role"
)

// InMemoryUserRepository implements UserRepository using in-memory storage
type InMemoryUserRepository struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[uuid.UUID]User),
	}
}

func (r *InMemoryUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	u.Roles = append([]role.Role{}, u.Roles...)
	return u, nil
}

func (r *InMemoryUserRepository) CreateUser(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return User{}, idmerrors.AlreadyExists("user", user.Email)
		}
	}

	now := time.Now().UTC()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.LastModifiedAt = now
	user.Roles = append([]role.Role{}, user.Roles...)
	r.users[user.ID] = user
	return user, nil
}

func (r *InMemoryUserRepository) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Password = passwordHash
	u.LastModifiedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

// InTx runs fn while holding the transaction lock. Writes are not rolled back on error.
func (r *InMemoryUserRepository) InTx(ctx context.Context, fn func(repo UserRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}
