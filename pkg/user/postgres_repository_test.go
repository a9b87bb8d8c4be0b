package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-rbac/pkg/persistence/pgdb/pgdbtest"
	"github.com/tendant/simple-rbac/pkg/privilege"
	"github.com/tendant/simple-rbac/pkg/role"
)

func TestUserRepository_Postgres(t *testing.T) {
	pool := pgdbtest.NewPool(t)
	runRepositorySuite(t, NewPostgresUserRepository(pool))

	t.Run("LoadsRoles", func(t *testing.T) {
		ctx := context.Background()
		read, err := privilege.NewPrivilegeService(privilege.NewPostgresPrivilegeRepository(pool)).CreatePrivilegeIfNotFound(ctx, "READ_PRIVILEGE")
		require.NoError(t, err)
		roleService := role.NewRoleService(role.NewPostgresRoleRepository(pool))
		userRole, err := roleService.CreateRoleIfNotFound(ctx, "ROLE_USER", []privilege.Privilege{read})
		require.NoError(t, err)

		repo := NewPostgresUserRepository(pool)
		u, err := repo.CreateUser(ctx, User{FirstName: "Jane", LastName: "Roe", Email: "jane@example.com", Password: "hash", Enabled: true})
		require.NoError(t, err)
		_, err = pool.Exec(ctx, `INSERT INTO users_roles (user_id, role_id) VALUES ($1, $2)`, u.ID, userRole.ID)
		require.NoError(t, err)

		loaded, err := repo.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Roles, 1)
		assert.Equal(t, []privilege.Privilege{read}, loaded.Roles[0].Privileges)

		_, err = roleService.DeleteRole(ctx, "ROLE_USER")
		require.NoError(t, err)
		loaded, err = repo.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, loaded.Roles)
	})
}
