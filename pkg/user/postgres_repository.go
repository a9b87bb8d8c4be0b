package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/persistence/pgdb"
	"github.com/tendant/simple-rbac/pkg/role"
)

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db        pgdb.DBTX
	forUpdate bool // set on repositories bound to a transaction
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db pgdb.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `
		SELECT id, first_name, last_name, email, password, enabled, created_at, last_modified_at
		FROM users
		WHERE id = $1`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}

	var u User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.Enabled, &u.CreatedAt, &u.LastModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}

	u.Roles, err = r.userRoles(ctx, u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) userRoles(ctx context.Context, userID uuid.UUID) ([]role.Role, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ur.role_id
		FROM users_roles ur
		JOIN roles ro ON ro.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY ro.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}
	roleIDs, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan user roles: %w", err)
	}

	roleRepo := role.NewPostgresRoleRepository(r.db)
	roles := make([]role.Role, 0, len(roleIDs))
	for _, id := range roleIDs {
		ro, err := roleRepo.GetRoleByID(ctx, id)
		if err != nil {
			return nil, err
		}
		roles = append(roles, ro)
	}
	return roles, nil
}

// CreateUser inserts the user row. Role links are not written here.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user User) (User, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password, enabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, last_modified_at
	`, user.FirstName, user.LastName, user.Email, user.Password, user.Enabled,
	).Scan(&user.ID, &user.CreatedAt, &user.LastModifiedAt)
	if err != nil {
		if pgdb.IsUniqueViolation(err) {
			return User{}, idmerrors.UniqueViolation(err, "user", user.Email)
		}
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if user.Roles == nil {
		user.Roles = []role.Role{}
	}
	return user, nil
}

func (r *PostgresUserRepository) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $2, last_modified_at = (now() AT TIME ZONE 'utc')
		WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) InTx(ctx context.Context, fn func(repo UserRepository) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&PostgresUserRepository{db: tx, forUpdate: true})
	})
}
