package privilege

import (
	"context"
	"errors"
	"log/slog"

	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
)

const (
	PrivilegeDeleted      = "Privilege deleted."
	MsgPrivilegeNotFound  = "Privilege is not found."
	errEmptyPrivilegeName = "privilege name cannot be empty"
)

// PrivilegeService provides methods for privilege management
type PrivilegeService struct {
	repo PrivilegeRepository
}

func NewPrivilegeService(repo PrivilegeRepository) *PrivilegeService {
	return &PrivilegeService{
		repo: repo,
	}
}

func (s *PrivilegeService) FindPrivileges(ctx context.Context) ([]Privilege, error) {
	return s.repo.FindPrivileges(ctx)
}

// CreatePrivilegeIfNotFound returns the privilege with the given name, creating it first when absent.
func (s *PrivilegeService) CreatePrivilegeIfNotFound(ctx context.Context, name string) (Privilege, error) {
	if name == "" {
		return Privilege{}, idmerrors.InvalidInput("name", errEmptyPrivilegeName)
	}

	var result Privilege
	err := s.repo.InTx(ctx, func(repo PrivilegeRepository) error {
		existing, err := repo.GetPrivilegeByName(ctx, name)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, ErrPrivilegeNotFound) {
			return err
		}

		result, err = repo.CreatePrivilege(ctx, name)
		return err
	})
	if idmerrors.IsUniqueViolation(err) {
		// A concurrent caller inserted the same name first.
		slog.Debug("Privilege created concurrently, reloading", "name", name)
		return s.repo.GetPrivilegeByName(ctx, name)
	}
	if err != nil {
		return Privilege{}, err
	}
	return result, nil
}

// DeletePrivilege removes the privilege with the given name.
func (s *PrivilegeService) DeletePrivilege(ctx context.Context, name string) (string, error) {
	err := s.repo.InTx(ctx, func(repo PrivilegeRepository) error {
		existing, err := repo.GetPrivilegeByName(ctx, name)
		if err != nil {
			if errors.Is(err, ErrPrivilegeNotFound) {
				return idmerrors.NotFound(idmerrors.ErrCodePrivilegeNotFound, MsgPrivilegeNotFound)
			}
			return err
		}
		return repo.DeletePrivilege(ctx, existing.ID)
	})
	if err != nil {
		return "", err
	}

	slog.Info("Privilege deleted", "name", name)
	return PrivilegeDeleted, nil
}

// FindPrivilegeByName looks up a privilege; found is false when none exists.
func (s *PrivilegeService) FindPrivilegeByName(ctx context.Context, name string) (Privilege, bool, error) {
	p, err := s.repo.GetPrivilegeByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrPrivilegeNotFound) {
			return Privilege{}, false, nil
		}
		return Privilege{}, false, err
	}
	return p, true, nil
}
