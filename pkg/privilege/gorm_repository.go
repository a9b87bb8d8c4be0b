package privilege

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/persistence/gormdb"
	"gorm.io/gorm"
)

// GormPrivilegeRepository implements PrivilegeRepository on top of GORM
type GormPrivilegeRepository struct {
	db *gorm.DB
}

var _ PrivilegeRepository = (*GormPrivilegeRepository)(nil)

func NewGormPrivilegeRepository(db *gorm.DB) *GormPrivilegeRepository {
	return &GormPrivilegeRepository{db: db}
}

// FromRow converts a privileges row into a Privilege.
func FromRow(row gormdb.Privilege) (Privilege, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return Privilege{}, fmt.Errorf("invalid privilege id %q: %w", row.ID, err)
	}
	return Privilege{ID: id, Name: row.Name}, nil
}

func (r *GormPrivilegeRepository) FindPrivileges(ctx context.Context) ([]Privilege, error) {
	var rows []gormdb.Privilege
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}

	privileges := make([]Privilege, 0, len(rows))
	for _, row := range rows {
		p, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		privileges = append(privileges, p)
	}
	return privileges, nil
}

func (r *GormPrivilegeRepository) GetPrivilegeByID(ctx context.Context, id uuid.UUID) (Privilege, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *GormPrivilegeRepository) GetPrivilegeByName(ctx context.Context, name string) (Privilege, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *GormPrivilegeRepository) first(ctx context.Context, query string, arg interface{}) (Privilege, error) {
	var row gormdb.Privilege
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Privilege{}, ErrPrivilegeNotFound
		}
		return Privilege{}, err
	}
	return FromRow(row)
}

func (r *GormPrivilegeRepository) CreatePrivilege(ctx context.Context, name string) (Privilege, error) {
	row := gormdb.Privilege{Name: name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if gormdb.IsDuplicate(err) {
			return Privilege{}, idmerrors.UniqueViolation(err, "privilege", name)
		}
		return Privilege{}, err
	}
	return FromRow(row)
}

// DeletePrivilege deletes the privilege and its roles_privileges rows.
func (r *GormPrivilegeRepository) DeletePrivilege(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Roles").Delete(&gormdb.Privilege{ID: id.String()}).Error
}

func (r *GormPrivilegeRepository) InTx(ctx context.Context, fn func(repo PrivilegeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormPrivilegeRepository(tx))
	})
}
