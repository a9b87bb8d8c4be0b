package role

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/persistence/pgdb"
	"github.com/tendant/simple-rbac/pkg/privilege"
)

// PostgresRoleRepository implements RoleRepository using PostgreSQL
type PostgresRoleRepository struct {
	db pgdb.DBTX
}

// NewPostgresRoleRepository creates a new PostgreSQL role repository
func NewPostgresRoleRepository(db pgdb.DBTX) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

func (r *PostgresRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.name, p.id, p.name
		FROM roles r
		LEFT JOIN roles_privileges rp ON rp.role_id = r.id
		LEFT JOIN privileges p ON p.id = rp.privilege_id
		ORDER BY r.name, p.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := []Role{}
	for rows.Next() {
		var (
			roleID        uuid.UUID
			roleName      string
			privilegeID   *uuid.UUID
			privilegeName *string
		)
		if err := rows.Scan(&roleID, &roleName, &privilegeID, &privilegeName); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}

		if len(roles) == 0 || roles[len(roles)-1].ID != roleID {
			roles = append(roles, Role{ID: roleID, Name: roleName, Privileges: []privilege.Privilege{}})
		}
		if privilegeID != nil {
			last := &roles[len(roles)-1]
			last.Privileges = append(last.Privileges, privilege.Privilege{ID: *privilegeID, Name: *privilegeName})
		}
	}
	return roles, rows.Err()
}

func (r *PostgresRoleRepository) GetRoleByID(ctx context.Context, id uuid.UUID) (Role, error) {
	return r.getOne(ctx, `SELECT id, name FROM roles WHERE id = $1`, id)
}

func (r *PostgresRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	return r.getOne(ctx, `SELECT id, name FROM roles WHERE name = $1`, name)
}

func (r *PostgresRoleRepository) getOne(ctx context.Context, query string, arg interface{}) (Role, error) {
	var role Role
	err := r.db.QueryRow(ctx, query, arg).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, fmt.Errorf("failed to get role: %w", err)
	}

	role.Privileges, err = r.rolePrivileges(ctx, role.ID)
	if err != nil {
		return Role{}, err
	}
	return role, nil
}

func (r *PostgresRoleRepository) rolePrivileges(ctx context.Context, roleID uuid.UUID) ([]privilege.Privilege, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name
		FROM privileges p
		JOIN roles_privileges rp ON rp.privilege_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.name
	`, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query role privileges: %w", err)
	}
	defer rows.Close()

	privileges := []privilege.Privilege{}
	for rows.Next() {
		var p privilege.Privilege
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role privilege: %w", err)
		}
		privileges = append(privileges, p)
	}
	return privileges, rows.Err()
}

// CreateRole inserts the role and its roles_privileges rows in one transaction
func (r *PostgresRoleRepository) CreateRole(ctx context.Context, name string, privileges []privilege.Privilege) (Role, error) {
	var role Role
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `INSERT INTO roles (name) VALUES ($1) RETURNING id, name`, name).
			Scan(&role.ID, &role.Name)
		if err != nil {
			return err
		}

		for _, p := range privileges {
			_, err := tx.Exec(ctx, `
				INSERT INTO roles_privileges (role_id, privilege_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, role.ID, p.ID)
			if err != nil {
				return fmt.Errorf("failed to link privilege %s: %w", p.Name, err)
			}
		}

		role.Privileges, err = NewPostgresRoleRepository(tx).rolePrivileges(ctx, role.ID)
		return err
	})
	if err != nil {
		if pgdb.IsUniqueViolation(err) {
			return Role{}, idmerrors.UniqueViolation(err, "role", name)
		}
		return Role{}, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

// DeleteRole deletes the role row; roles_privileges and users_roles rows go with it.
func (r *PostgresRoleRepository) DeleteRole(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

func (r *PostgresRoleRepository) InTx(ctx context.Context, fn func(repo RoleRepository) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(NewPostgresRoleRepository(tx))
	})
}
