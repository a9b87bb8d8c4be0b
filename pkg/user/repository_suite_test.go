package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/password"
	"golang.org/x/crypto/bcrypt"
)

// runRepositorySuite drives UserService with a real hasher against a persistent repository
func runRepositorySuite(t *testing.T, repo UserRepository) {
	ctx := context.Background()
	svc := NewUserService(repo, password.NewBcryptHasher(bcrypt.MinCost))

	u, err := svc.CreateUser(ctx, CreateUserParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "987654321",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	t.Run("FindUserByID", func(t *testing.T) {
		found, ok, err := svc.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "John", found.FirstName)
		assert.Equal(t, "Doe", found.LastName)
		assert.Equal(t, "john@example.com", found.Email)
		assert.True(t, found.Enabled)
		assert.Empty(t, found.Roles)
		assert.Equal(t, u.Password, found.Password)

		_, ok, err = svc.FindUserByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserParams{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "john@example.com",
			Password:  "password123",
		})
		assert.True(t, idmerrors.IsUniqueViolation(err))
	})

	t.Run("ChangePassword", func(t *testing.T) {
		status, err := svc.ChangePassword(ctx, ChangePasswordParams{ID: u.ID, NewPassword: "987654321", NewPasswordAgain: "123"})
		require.NoError(t, err)
		assert.Equal(t, PasswordsNotSame, status)

		status, err = svc.ChangePassword(ctx, ChangePasswordParams{ID: u.ID, NewPassword: "otherPassword", NewPasswordAgain: "otherPassword"})
		require.NoError(t, err)
		assert.Equal(t, PasswordNotCorrect, status)

		unchanged, _, err := svc.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Password, unchanged.Password)

		status, err = svc.ChangePassword(ctx, ChangePasswordParams{ID: u.ID, NewPassword: "987654321", NewPasswordAgain: "987654321"})
		require.NoError(t, err)
		assert.Equal(t, PasswordChanged, status)

		changed, _, err := svc.FindUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotEqual(t, u.Password, changed.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(changed.Password), []byte("987654321")))

		_, err = svc.ChangePassword(ctx, ChangePasswordParams{ID: uuid.New(), NewPassword: "x", NewPasswordAgain: "x"})
		assert.True(t, idmerrors.IsNotFound(err))
	})

	t.Run("UpdateUnknownUser", func(t *testing.T) {
		err := repo.UpdateUserPassword(ctx, uuid.New(), "hash")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepository_InMemory(t *testing.T) {
	runRepositorySuite(t, NewInMemoryUserRepository())
}
