package privilege

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/persistence/pgdb"
)

// PostgresPrivilegeRepository implements PrivilegeRepository using PostgreSQL
type PostgresPrivilegeRepository struct {
	db pgdb.DBTX
}

// NewPostgresPrivilegeRepository creates a new PostgreSQL privilege repository
func NewPostgresPrivilegeRepository(db pgdb.DBTX) *PostgresPrivilegeRepository {
	return &PostgresPrivilegeRepository{db: db}
}

func (r *PostgresPrivilegeRepository) FindPrivileges(ctx context.Context) ([]Privilege, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM privileges ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query privileges: %w", err)
	}
	defer rows.Close()

	privileges := []Privilege{}
	for rows.Next() {
		var p Privilege
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan privilege: %w", err)
		}
		privileges = append(privileges, p)
	}
	return privileges, rows.Err()
}

func (r *PostgresPrivilegeRepository) GetPrivilegeByID(ctx context.Context, id uuid.UUID) (Privilege, error) {
	return r.getOne(ctx, `SELECT id, name FROM privileges WHERE id = $1`, id)
}

func (r *PostgresPrivilegeRepository) GetPrivilegeByName(ctx context.Context, name string) (Privilege, error) {
	return r.getOne(ctx, `SELECT id, name FROM privileges WHERE name = $1`, name)
}

func (r *PostgresPrivilegeRepository) getOne(ctx context.Context, query string, arg interface{}) (Privilege, error) {
	var p Privilege
	err := r.db.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Privilege{}, ErrPrivilegeNotFound
		}
		return Privilege{}, fmt.Errorf("failed to get privilege: %w", err)
	}
	return p, nil
}

func (r *PostgresPrivilegeRepository) CreatePrivilege(ctx context.Context, name string) (Privilege, error) {
	var p Privilege
	err := r.db.QueryRow(ctx,
		`INSERT INTO privileges (name) VALUES ($1) RETURNING id, name`, name,
	).Scan(&p.ID, &p.Name)
	if err != nil {
		if pgdb.IsUniqueViolation(err) {
			return Privilege{}, idmerrors.UniqueViolation(err, "privilege", name)
		}
		return Privilege{}, fmt.Errorf("failed to create privilege: %w", err)
	}
	return p, nil
}

// DeletePrivilege deletes the privilege row; roles_privileges rows go with it.
func (r *PostgresPrivilegeRepository) DeletePrivilege(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM privileges WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete privilege: %w", err)
	}
	return nil
}

func (r *PostgresPrivilegeRepository) InTx(ctx context.Context, fn func(repo PrivilegeRepository) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(NewPostgresPrivilegeRepository(tx))
	})
}
