package role

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/privilege"
)

// InMemoryRoleRepository implements RoleRepository using in-memory storage
type InMemoryRoleRepository struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	roles map[uuid.UUID]Role // roleID -> Role with privilege snapshots

	// privileges, when set, resolves stored references so deleted privileges drop out
	privileges privilege.PrivilegeRepository
}

// NewInMemoryRoleRepository creates a new in-memory role repository. privileges may be nil.
func NewInMemoryRoleRepository(privileges privilege.PrivilegeRepository) *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		roles:      make(map[uuid.UUID]Role),
		privileges: privileges,
	}
}

// FindRoles returns all roles ordered by name
func (r *InMemoryRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mu.RLock()
	roles := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	r.mu.RUnlock()

	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	for i := range roles {
		resolved, err := r.resolve(ctx, roles[i])
		if err != nil {
			return nil, err
		}
		roles[i] = resolved
	}
	return roles, nil
}

func (r *InMemoryRoleRepository) GetRoleByID(ctx context.Context, id uuid.UUID) (Role, error) {
	r.mu.RLock()
	role, ok := r.roles[id]
	r.mu.RUnlock()

	if !ok {
		return Role{}, ErrRoleNotFound
	}
	return r.resolve(ctx, role)
}

func (r *InMemoryRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	r.mu.RLock()
	var (
		found Role
		ok    bool
	)
	for _, role := range r.roles {
		if role.Name == name {
			found, ok = role, true
			break
		}
	}
	r.mu.RUnlock()

	if !ok {
		return Role{}, ErrRoleNotFound
	}
	return r.resolve(ctx, found)
}

func (r *InMemoryRoleRepository) CreateRole(ctx context.Context, name string, privileges []privilege.Privilege) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, role := range r.roles {
		if role.Name == name {
			return Role{}, idmerrors.AlreadyExists("role", name)
		}
	}

	role := Role{
		ID:         uuid.New(),
		Name:       name,
		Privileges: dedupePrivileges(privileges),
	}
	r.roles[role.ID] = role
	return role, nil
}

func (r *InMemoryRoleRepository) DeleteRole(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.roles, id)
	return nil
}

// InTx runs fn while holding the transaction lock. Writes are not rolled back on error.
func (r *InMemoryRoleRepository) InTx(ctx context.Context, fn func(repo RoleRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

// resolve reloads privilege references, dropping those that no longer exist
func (r *InMemoryRoleRepository) resolve(ctx context.Context, role Role) (Role, error) {
	if r.privileges == nil {
		role.Privileges = append([]privilege.Privilege{}, role.Privileges...)
		return role, nil
	}

	resolved := make([]privilege.Privilege, 0, len(role.Privileges))
	for _, ref := range role.Privileges {
		p, err := r.privileges.GetPrivilegeByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, privilege.ErrPrivilegeNotFound) {
				continue
			}
			return Role{}, err
		}
		resolved = append(resolved, p)
	}
	role.Privileges = resolved
	return role, nil
}

// dedupePrivileges keeps one reference per privilege ID, ordered by name
func dedupePrivileges(privileges []privilege.Privilege) []privilege.Privilege {
	seen := make(map[uuid.UUID]bool, len(privileges))
	result := make([]privilege.Privilege, 0, len(privileges))
	for _, p := range privileges {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
