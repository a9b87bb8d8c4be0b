package user

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/password"
	"golang.org/x/crypto/bcrypt"
)

// MockPasswordHasher is a mock implementation of password.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hashedPassword string) (bool, error) {
	args := m.Called(password, hashedPassword)
	return args.Bool(0), args.Error(1)
}

// writeCountingRepository counts password writes on top of the in-memory store
type writeCountingRepository struct {
	*InMemoryUserRepository
	mu     sync.Mutex
	writes int
}

func (r *writeCountingRepository) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	r.writes++
	r.mu.Unlock()
	return r.InMemoryUserRepository.UpdateUserPassword(ctx, id, passwordHash)
}

func (r *writeCountingRepository) InTx(ctx context.Context, fn func(repo UserRepository) error) error {
	return r.InMemoryUserRepository.InTx(ctx, func(UserRepository) error {
		return fn(r)
	})
}

type recordedStatuses struct {
	statuses []PasswordChangeStatus
}

func (r *recordedStatuses) RecordPasswordChange(status PasswordChangeStatus) {
	r.statuses = append(r.statuses, status)
}

func newTestService(t *testing.T) (*UserService, *writeCountingRepository, *MockPasswordHasher, User) {
	t.Helper()
	repo := &writeCountingRepository{InMemoryUserRepository: NewInMemoryUserRepository()}
	hasher := new(MockPasswordHasher)
	svc := NewUserService(repo, hasher)

	hasher.On("Hash", "987654321").Return("H(987654321)", nil).Once()
	u, err := svc.CreateUser(context.Background(), CreateUserParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "987654321",
	})
	require.NoError(t, err)
	return svc, repo, hasher, u
}

func TestCreateUser(t *testing.T) {
	_, repo, hasher, u := newTestService(t)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.True(t, u.Enabled)
	assert.Empty(t, u.Roles)
	assert.Equal(t, "H(987654321)", u.Password)

	stored, err := repo.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "H(987654321)", stored.Password)
	assert.NotEqual(t, "987654321", stored.Password)
	hasher.AssertExpectations(t)
}

func TestCreateUser_DuplicateEmailPropagates(t *testing.T) {
	svc, _, hasher, _ := newTestService(t)

	hasher.On("Hash", "anotherPass").Return("H(anotherPass)", nil).Once()
	_, err := svc.CreateUser(context.Background(), CreateUserParams{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "anotherPass",
	})
	assert.True(t, idmerrors.IsUniqueViolation(err))
}

func TestCreateUser_HashFailure(t *testing.T) {
	repo := NewInMemoryUserRepository()
	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "secret123").Return("", errors.New("entropy exhausted"))
	svc := NewUserService(repo, hasher)

	_, err := svc.CreateUser(context.Background(), CreateUserParams{Email: "a@b.com", Password: "secret123"})
	assert.EqualError(t, err, "entropy exhausted")
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownUser", func(t *testing.T) {
		svc, repo, hasher, _ := newTestService(t)

		status, err := svc.ChangePassword(ctx, ChangePasswordParams{
			ID:               uuid.New(),
			NewPassword:      "987654321",
			NewPasswordAgain: "987654321",
		})
		require.Error(t, err)
		assert.Empty(t, status)
		assert.True(t, idmerrors.IsCode(err, idmerrors.ErrCodeUserNotFound))
		assert.Contains(t, err.Error(), MsgUserNotFound)
		assert.Equal(t, 0, repo.writes)
		hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("ConfirmationMismatch", func(t *testing.T) {
		svc, repo, hasher, u := newTestService(t)

		status, err := svc.ChangePassword(ctx, ChangePasswordParams{
			ID:               u.ID,
			NewPassword:      "987654321",
			NewPasswordAgain: "123",
		})
		require.NoError(t, err)
		assert.Equal(t, PasswordsNotSame, status)
		assert.Equal(t, 0, repo.writes)
		hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("NewPasswordDoesNotVerify", func(t *testing.T) {
		svc, repo, hasher, u := newTestService(t)
		hasher.On("Verify", "newPassword1", "H(987654321)").Return(false, nil).Once()

		status, err := svc.ChangePassword(ctx, ChangePasswordParams{
			ID:               u.ID,
			Password:         "987654321",
			NewPassword:      "newPassword1",
			NewPasswordAgain: "newPassword1",
		})
		require.NoError(t, err)
		assert.Equal(t, PasswordNotCorrect, status)
		assert.Equal(t, 0, repo.writes)

		stored, err := repo.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "H(987654321)", stored.Password)
		hasher.AssertExpectations(t)
	})

	t.Run("NewPasswordVerifies", func(t *testing.T) {
		svc, repo, hasher, u := newTestService(t)
		hasher.On("Verify", "987654321", "H(987654321)").Return(true, nil).Once()
		hasher.On("Hash", "987654321").Return("H'(987654321)", nil).Once()

		status, err := svc.ChangePassword(ctx, ChangePasswordParams{
			ID:               u.ID,
			Password:         "ignored",
			NewPassword:      "987654321",
			NewPasswordAgain: "987654321",
		})
		require.NoError(t, err)
		assert.Equal(t, PasswordChanged, status)
		assert.Equal(t, 1, repo.writes)

		stored, err := repo.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "H'(987654321)", stored.Password)
		hasher.AssertExpectations(t)
	})

	t.Run("CurrentPasswordIsNotConsulted", func(t *testing.T) {
		svc, _, hasher, u := newTestService(t)
		hasher.On("Verify", "987654321", "H(987654321)").Return(true, nil).Once()
		hasher.On("Hash", "987654321").Return("H(987654321)", nil).Once()

		status, err := svc.ChangePassword(ctx, ChangePasswordParams{
			ID:               u.ID,
			Password:         "totally wrong",
			NewPassword:      "987654321",
			NewPasswordAgain: "987654321",
		})
		require.NoError(t, err)
		assert.Equal(t, PasswordChanged, status)
		hasher.AssertNotCalled(t, "Verify", "totally wrong", mock.Anything)
	})

	t.Run("VerifyFailurePropagates", func(t *testing.T) {
		svc, repo, hasher, u := newTestService(t)
		hasher.On("Verify", "987654321", "H(987654321)").Return(false, errors.New("corrupt hash")).Once()

		_, err := svc.ChangePassword(ctx, ChangePasswordParams{
			ID:               u.ID,
			NewPassword:      "987654321",
			NewPasswordAgain: "987654321",
		})
		assert.EqualError(t, err, "corrupt hash")
		assert.Equal(t, 0, repo.writes)
	})
}

func TestChangePassword_EmptyNewPasswordIsNotCorrect(t *testing.T) {
	ctx := context.Background()
	repo := &writeCountingRepository{InMemoryUserRepository: NewInMemoryUserRepository()}
	svc := NewUserService(repo, password.NewBcryptHasher(bcrypt.MinCost))

	u, err := svc.CreateUser(ctx, CreateUserParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "987654321",
	})
	require.NoError(t, err)

	status, err := svc.ChangePassword(ctx, ChangePasswordParams{ID: u.ID, NewPassword: "", NewPasswordAgain: ""})
	require.NoError(t, err)
	assert.Equal(t, PasswordNotCorrect, status)
	assert.Equal(t, 0, repo.writes)
}

func TestChangePassword_UnreadableStoredHashIsNotCorrect(t *testing.T) {
	ctx := context.Background()
	repo := &writeCountingRepository{InMemoryUserRepository: NewInMemoryUserRepository()}
	svc := NewUserService(repo, password.NewMultiHasher(password.NewBcryptHasher(bcrypt.MinCost)))

	u, err := repo.CreateUser(ctx, User{FirstName: "John", LastName: "Doe", Email: "john@example.com", Password: "not-a-digest", Enabled: true})
	require.NoError(t, err)

	status, err := svc.ChangePassword(ctx, ChangePasswordParams{ID: u.ID, NewPassword: "987654321", NewPasswordAgain: "987654321"})
	require.NoError(t, err)
	assert.Equal(t, PasswordNotCorrect, status)
	assert.Equal(t, 0, repo.writes)
}

func TestChangePassword_AfterAlgorithmChange(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryUserRepository()

	bcryptHasher, err := password.NewPasswordHasher(password.AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	u, err := NewUserService(repo, bcryptHasher).CreateUser(ctx, CreateUserParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "987654321",
	})
	require.NoError(t, err)

	argonHasher, err := password.NewPasswordHasher(password.AlgorithmArgon2id, 0)
	require.NoError(t, err)
	status, err := NewUserService(repo, argonHasher).ChangePassword(ctx, ChangePasswordParams{
		ID:               u.ID,
		NewPassword:      "987654321",
		NewPasswordAgain: "987654321",
	})
	require.NoError(t, err)
	assert.Equal(t, PasswordChanged, status)

	stored, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, password.AlgorithmArgon2id, password.DetectAlgorithm(stored.Password))
}

func TestChangePassword_RecordsStatus(t *testing.T) {
	recorder := &recordedStatuses{}
	repo := NewInMemoryUserRepository()
	svc := NewUserService(repo, password.NewBcryptHasher(bcrypt.MinCost), WithStatusRecorder(recorder))
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Password:  "987654321",
	})
	require.NoError(t, err)
	originalHash := u.Password

	status, err := svc.ChangePassword(ctx, ChangePasswordParams{ID: u.ID, NewPassword: "987654321", NewPasswordAgain: "123"})
	require.NoError(t, err)
	assert.Equal(t, PasswordsNotSame, status)

	status, err = svc.ChangePassword(ctx, ChangePasswordParams{ID: u.ID, NewPassword: "different1", NewPasswordAgain: "different1"})
	require.NoError(t, err)
	assert.Equal(t, PasswordNotCorrect, status)

	status, err = svc.ChangePassword(ctx, ChangePasswordParams{ID: u.ID, NewPassword: "987654321", NewPasswordAgain: "987654321"})
	require.NoError(t, err)
	assert.Equal(t, PasswordChanged, status)

	assert.Equal(t, []PasswordChangeStatus{PasswordsNotSame, PasswordNotCorrect, PasswordChanged}, recorder.statuses)

	stored, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("987654321")))
}

func TestFindUserByID(t *testing.T) {
	svc, _, _, u := newTestService(t)

	found, ok, err := svc.FindUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, u.Email, found.Email)

	_, ok, err = svc.FindUserByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}
