package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-rbac/pkg/common"
	"github.com/tendant/simple-rbac/pkg/privilege"
	privilegeapi "github.com/tendant/simple-rbac/pkg/privilege/api"
	"github.com/tendant/simple-rbac/pkg/role"
)

type Handle struct {
	roleService      *role.RoleService
	privilegeService *privilege.PrivilegeService
	validator        *common.Validator
}

func NewHandle(roleService *role.RoleService, privilegeService *privilege.PrivilegeService) *Handle {
	return &Handle{
		roleService:      roleService,
		privilegeService: privilegeService,
		validator:        common.NewValidator(),
	}
}

func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ListRoles)
	r.Post("/", h.CreateRole)
	r.Get("/{name}", h.GetRole)
	r.Delete("/{name}", h.DeleteRole)
}

func toResponse(ro role.Role) RoleResponse {
	privileges := make([]privilegeapi.PrivilegeResponse, 0, len(ro.Privileges))
	for _, p := range ro.Privileges {
		privileges = append(privileges, privilegeapi.PrivilegeResponse{ID: p.ID.String(), Name: p.Name})
	}
	return RoleResponse{ID: ro.ID.String(), Name: ro.Name, Privileges: privileges}
}

// ListRoles handles retrieving a list of roles
func (h *Handle) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.FindRoles(r.Context())
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to find roles")
		return
	}

	resp := make([]RoleResponse, 0, len(roles))
	for _, ro := range roles {
		resp = append(resp, toResponse(ro))
	}
	render.JSON(w, r, resp)
}

// CreateRole returns the named role, creating it with the listed privileges when absent
func (h *Handle) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		common.RenderError(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		common.RenderServiceError(w, r, err, "Invalid request")
		return
	}

	// An existing role is returned as stored, so its listed privileges are never resolved.
	existing, found, err := h.roleService.FindRoleByName(r.Context(), req.Name)
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to find role")
		return
	}
	if found {
		render.JSON(w, r, toResponse(existing))
		return
	}

	privileges := make([]privilege.Privilege, 0, len(req.Privileges))
	for _, name := range req.Privileges {
		p, found, err := h.privilegeService.FindPrivilegeByName(r.Context(), name)
		if err != nil {
			common.RenderServiceError(w, r, err, "Failed to find privilege")
			return
		}
		if !found {
			common.RenderError(w, r, http.StatusBadRequest, privilege.MsgPrivilegeNotFound, name)
			return
		}
		privileges = append(privileges, p)
	}

	ro, err := h.roleService.CreateRoleIfNotFound(r.Context(), req.Name, privileges)
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to create role")
		return
	}
	render.JSON(w, r, toResponse(ro))
}

// GetRole handles retrieving a role by name
func (h *Handle) GetRole(w http.ResponseWriter, r *http.Request) {
	ro, found, err := h.roleService.FindRoleByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to find role")
		return
	}
	if !found {
		common.RenderError(w, r, http.StatusNotFound, role.MsgRoleNotFound, "")
		return
	}
	render.JSON(w, r, toResponse(ro))
}

func (h *Handle) DeleteRole(w http.ResponseWriter, r *http.Request) {
	msg, err := h.roleService.DeleteRole(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to delete role")
		return
	}
	common.RenderMessage(w, r, http.StatusOK, msg)
}
