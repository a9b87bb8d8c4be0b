package role

import (
	"context"
	"errors"
	"log/slog"

	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/privilege"
)

const (
	RoleDeleted     = "Role deleted."
	MsgRoleNotFound = "Role is not found."
)

// RoleService provides methods for role management
type RoleService struct {
	repo RoleRepository
}

func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{
		repo: repo,
	}
}

func (s *RoleService) FindRoles(ctx context.Context) ([]Role, error) {
	return s.repo.FindRoles(ctx)
}

// CreateRoleIfNotFound returns the role with the given name, creating it with
// the supplied privileges when absent. An existing role is returned unchanged.
func (s *RoleService) CreateRoleIfNotFound(ctx context.Context, name string, privileges []privilege.Privilege) (Role, error) {
	if name == "" {
		return Role{}, idmerrors.InvalidInput("name", "role name cannot be empty")
	}

	var result Role
	err := s.repo.InTx(ctx, func(repo RoleRepository) error {
		existing, err := repo.GetRoleByName(ctx, name)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, ErrRoleNotFound) {
			return err
		}

		result, err = repo.CreateRole(ctx, name, privileges)
		return err
	})
	if idmerrors.IsUniqueViolation(err) {
		slog.Debug("Role created concurrently, reloading", "name", name)
		return s.repo.GetRoleByName(ctx, name)
	}
	if err != nil {
		return Role{}, err
	}
	return result, nil
}

// DeleteRole removes the role with the given name
func (s *RoleService) DeleteRole(ctx context.Context, name string) (string, error) {
	err := s.repo.InTx(ctx, func(repo RoleRepository) error {
		existing, err := repo.GetRoleByName(ctx, name)
		if err != nil {
			if errors.Is(err, ErrRoleNotFound) {
				return idmerrors.NotFound(idmerrors.ErrCodeRoleNotFound, MsgRoleNotFound)
			}
			return err
		}
		return repo.DeleteRole(ctx, existing.ID)
	})
	if err != nil {
		return "", err
	}

	slog.Info("Role deleted", "name", name)
	return RoleDeleted, nil
}

func (s *RoleService) FindRoleByName(ctx context.Context, name string) (Role, bool, error) {
	r, err := s.repo.GetRoleByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return Role{}, false, nil
		}
		return Role{}, false, err
	}
	return r, true, nil
}
