package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/persistence/gormdb"
	"github.com/tendant/simple-rbac/pkg/role"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements UserRepository on top of GORM
type GormUserRepository struct {
	db        *gorm.DB
	forUpdate bool
}

var _ UserRepository = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func fromRow(row gormdb.User) (User, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return User{}, fmt.Errorf("invalid user id %q: %w", row.ID, err)
	}

	u := User{
		ID:             id,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Email:          row.Email,
		Password:       row.Password,
		Enabled:        row.Enabled,
		Roles:          make([]role.Role, 0, len(row.Roles)),
		CreatedAt:      row.CreatedAt,
		LastModifiedAt: row.LastModifiedAt,
	}
	for _, rr := range row.Roles {
		converted, err := role.FromRow(rr)
		if err != nil {
			return User{}, err
		}
		u.Roles = append(u.Roles, converted)
	}
	return u, nil
}

func (r *GormUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	q := r.db.WithContext(ctx)
	if r.forUpdate {
		// SQLite ignores row locks; its single writer connection serializes instead.
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row gormdb.User
	err := q.
		Preload("Roles", func(db *gorm.DB) *gorm.DB { return db.Order("roles.name") }).
		Preload("Roles.Privileges", role.PreloadPrivileges).
		Where("id = ?", id.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return fromRow(row)
}

func (r *GormUserRepository) CreateUser(ctx context.Context, user User) (User, error) {
	now := time.Now().UTC()
	row := gormdb.User{
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Password:       user.Password,
		Enabled:        user.Enabled,
		CreatedAt:      now,
		LastModifiedAt: now,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		if gormdb.IsDuplicate(err) {
			return User{}, idmerrors.UniqueViolation(err, "user", user.Email)
		}
		return User{}, err
	}
	return fromRow(row)
}

func (r *GormUserRepository) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&gormdb.User{}).
		Where("id = ?", id.String()).
		Updates(map[string]interface{}{
			"password":         passwordHash,
			"last_modified_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *GormUserRepository) InTx(ctx context.Context, fn func(repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormUserRepository{db: tx, forUpdate: true})
	})
}
