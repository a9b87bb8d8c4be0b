package role

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/persistence/gormdb"
	"github.com/tendant/simple-rbac/pkg/privilege"
	"gorm.io/gorm"
)

// GormRoleRepository implements RoleRepository on top of GORM
type GormRoleRepository struct {
	db *gorm.DB
}

var _ RoleRepository = (*GormRoleRepository)(nil)

func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FromRow converts a roles row with preloaded privileges into a Role.
func FromRow(row gormdb.Role) (Role, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return Role{}, fmt.Errorf("invalid role id %q: %w", row.ID, err)
	}

	role := Role{ID: id, Name: row.Name, Privileges: make([]privilege.Privilege, 0, len(row.Privileges))}
	for _, p := range row.Privileges {
		converted, err := privilege.FromRow(p)
		if err != nil {
			return Role{}, err
		}
		role.Privileges = append(role.Privileges, converted)
	}
	return role, nil
}

// PreloadPrivileges loads role privileges ordered by name.
func PreloadPrivileges(db *gorm.DB) *gorm.DB {
	return db.Order("privileges.name")
}

func (r *GormRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	var rows []gormdb.Role
	err := r.db.WithContext(ctx).
		Preload("Privileges", PreloadPrivileges).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	roles := make([]Role, 0, len(rows))
	for _, row := range rows {
		role, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (r *GormRoleRepository) GetRoleByID(ctx context.Context, id uuid.UUID) (Role, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *GormRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *GormRoleRepository) first(ctx context.Context, query string, arg interface{}) (Role, error) {
	var row gormdb.Role
	err := r.db.WithContext(ctx).
		Preload("Privileges", PreloadPrivileges).
		Where(query, arg).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, err
	}
	return FromRow(row)
}

// CreateRole inserts the role and its join rows without touching the privileges themselves
func (r *GormRoleRepository) CreateRole(ctx context.Context, name string, privileges []privilege.Privilege) (Role, error) {
	row := gormdb.Role{Name: name}
	seen := make(map[uuid.UUID]bool, len(privileges))
	for _, p := range privileges {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		row.Privileges = append(row.Privileges, gormdb.Privilege{ID: p.ID.String(), Name: p.Name})
	}

	var created gormdb.Role
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Privileges.*").Create(&row).Error; err != nil {
			return err
		}
		return tx.Preload("Privileges", PreloadPrivileges).First(&created, "id = ?", row.ID).Error
	})
	if err != nil {
		if gormdb.IsDuplicate(err) {
			return Role{}, idmerrors.UniqueViolation(err, "role", name)
		}
		return Role{}, err
	}
	return FromRow(created)
}

// DeleteRole deletes the role together with its roles_privileges and users_roles rows
func (r *GormRoleRepository) DeleteRole(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Privileges", "Users").Delete(&gormdb.Role{ID: id.String()}).Error
}

func (r *GormRoleRepository) InTx(ctx context.Context, fn func(repo RoleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRoleRepository(tx))
	})
}
