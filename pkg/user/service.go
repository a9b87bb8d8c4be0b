package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/password"
	"github.com/tendant/simple-rbac/pkg/role"
)

// PasswordChangeStatus is the outcome of a password change that reached the comparison step
type PasswordChangeStatus string

const (
	PasswordChanged    PasswordChangeStatus = "Password changed."
	PasswordsNotSame   PasswordChangeStatus = "Passwords are not same."
	PasswordNotCorrect PasswordChangeStatus = "Password is not correct."
)

const MsgUserNotFound = "User not found"

type CreateUserParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type ChangePasswordParams struct {
	ID               uuid.UUID
	Password         string // current password, carried but not compared
	NewPassword      string
	NewPasswordAgain string
}

// StatusRecorder observes password change outcomes
type StatusRecorder interface {
	RecordPasswordChange(status PasswordChangeStatus)
}

type UserService struct {
	repo     UserRepository
	hasher   password.PasswordHasher
	recorder StatusRecorder
}

type Option func(*UserService)

func WithStatusRecorder(recorder StatusRecorder) Option {
	return func(s *UserService) {
		s.recorder = recorder
	}
}

func NewUserService(repo UserRepository, hasher password.PasswordHasher, opts ...Option) *UserService {
	s := &UserService{
		repo:   repo,
		hasher: hasher,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser stores a new enabled user without roles. Duplicate emails are
// reported by the repository.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	slog.Debug("Creating user", "email", params.Email)

	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		return User{}, err
	}

	return s.repo.CreateUser(ctx, User{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Password:  hashed,
		Enabled:   true,
		Roles:     []role.Role{},
	})
}

// ChangePassword rewrites the stored hash when the new password matches its
// confirmation and verifies against the hash already on file. An empty new
// password or an unreadable stored hash counts as not verifying.
func (s *UserService) ChangePassword(ctx context.Context, params ChangePasswordParams) (PasswordChangeStatus, error) {
	var status PasswordChangeStatus
	err := s.repo.InTx(ctx, func(repo UserRepository) error {
		u, err := repo.GetUserByID(ctx, params.ID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return idmerrors.NotFound(idmerrors.ErrCodeUserNotFound, MsgUserNotFound)
			}
			return err
		}

		if params.NewPassword != params.NewPasswordAgain {
			status = PasswordsNotSame
			return nil
		}

		match, err := s.hasher.Verify(params.NewPassword, u.Password)
		switch {
		case errors.Is(err, password.ErrEmptyPassword):
			match = false
		case errors.Is(err, password.ErrInvalidHashFormat):
			slog.Warn("Stored password hash has an unknown format", "user_id", u.ID)
			match = false
		case err != nil:
			return err
		}
		if !match {
			status = PasswordNotCorrect
			return nil
		}

		hashed, err := s.hasher.Hash(params.NewPassword)
		if err != nil {
			return err
		}
		if err := repo.UpdateUserPassword(ctx, u.ID, hashed); err != nil {
			return err
		}
		status = PasswordChanged
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Debug("Password change processed", "user_id", params.ID, "status", status)
	if s.recorder != nil {
		s.recorder.RecordPasswordChange(status)
	}
	return status, nil
}

func (s *UserService) FindUserByID(ctx context.Context, id uuid.UUID) (User, bool, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, false, nil
		}
		return User{}, false, err
	}
	return u, true, nil
}
