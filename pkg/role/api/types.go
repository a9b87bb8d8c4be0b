package api

import privilegeapi "github.com/tendant/simple-rbac/pkg/privilege/api"

// CreateRoleRequest represents the request body for creating a role.
// Privileges are referenced by name and must already exist.
type CreateRoleRequest struct {
	Name       string   `json:"name" validate:"required,max=255"`
	Privileges []string `json:"privileges" validate:"dive,required"`
}

type RoleResponse struct {
	ID         string                           `json:"id"`
	Name       string                           `json:"name"`
	Privileges []privilegeapi.PrivilegeResponse `json:"privileges"`
}
