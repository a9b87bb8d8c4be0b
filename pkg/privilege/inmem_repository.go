package privilege

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
)

// InMemoryPrivilegeRepository implements PrivilegeRepository using in-memory storage
type InMemoryPrivilegeRepository struct {
	txMu       sync.Mutex // serializes InTx bodies; not reentrant
	mu         sync.RWMutex
	privileges map[uuid.UUID]Privilege
}

// NewInMemoryPrivilegeRepository creates a new in-memory privilege repository
func NewInMemoryPrivilegeRepository() *InMemoryPrivilegeRepository {
	return &InMemoryPrivilegeRepository{
		privileges: make(map[uuid.UUID]Privilege),
	}
}

// FindPrivileges returns all privileges ordered by name
func (r *InMemoryPrivilegeRepository) FindPrivileges(ctx context.Context) ([]Privilege, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	privileges := make([]Privilege, 0, len(r.privileges))
	for _, p := range r.privileges {
		privileges = append(privileges, p)
	}
	sort.Slice(privileges, func(i, j int) bool { return privileges[i].Name < privileges[j].Name })
	return privileges, nil
}

func (r *InMemoryPrivilegeRepository) GetPrivilegeByID(ctx context.Context, id uuid.UUID) (Privilege, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.privileges[id]
	if !ok {
		return Privilege{}, ErrPrivilegeNotFound
	}
	return p, nil
}

func (r *InMemoryPrivilegeRepository) GetPrivilegeByName(ctx context.Context, name string) (Privilege, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.privileges {
		if p.Name == name {
			return p, nil
		}
	}
	return Privilege{}, ErrPrivilegeNotFound
}

// CreatePrivilege stores a new privilege, enforcing name uniqueness
func (r *InMemoryPrivilegeRepository) CreatePrivilege(ctx context.Context, name string) (Privilege, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.privileges {
		if p.Name == name {
			return Privilege{}, idmerrors.AlreadyExists("privilege", name)
		}
	}

	p := Privilege{ID: uuid.New(), Name: name}
	r.privileges[p.ID] = p
	return p, nil
}

func (r *InMemoryPrivilegeRepository) DeletePrivilege(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.privileges, id)
	return nil
}

// InTx runs fn while holding the transaction lock. Writes are not rolled back on error.
func (r *InMemoryPrivilegeRepository) InTx(ctx context.Context, fn func(repo PrivilegeRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}
