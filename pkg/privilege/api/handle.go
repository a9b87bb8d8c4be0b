package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-rbac/pkg/common"
	"github.com/tendant/simple-rbac/pkg/privilege"
)

type Handle struct {
	privilegeService *privilege.PrivilegeService
	validator        *common.Validator
}

func NewHandle(privilegeService *privilege.PrivilegeService) *Handle {
	return &Handle{
		privilegeService: privilegeService,
		validator:        common.NewValidator(),
	}
}

// RegisterRoutes registers the privilege routes relative to the mount point
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ListPrivileges)
	r.Post("/", h.CreatePrivilege)
	r.Get("/{name}", h.GetPrivilege)
	r.Delete("/{name}", h.DeletePrivilege)
}

func toResponse(p privilege.Privilege) PrivilegeResponse {
	return PrivilegeResponse{ID: p.ID.String(), Name: p.Name}
}

// ListPrivileges handles retrieving all privileges
func (h *Handle) ListPrivileges(w http.ResponseWriter, r *http.Request) {
	privileges, err := h.privilegeService.FindPrivileges(r.Context())
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to find privileges")
		return
	}

	resp := make([]PrivilegeResponse, 0, len(privileges))
	for _, p := range privileges {
		resp = append(resp, toResponse(p))
	}
	render.JSON(w, r, resp)
}

// CreatePrivilege returns the named privilege, creating it when absent
func (h *Handle) CreatePrivilege(w http.ResponseWriter, r *http.Request) {
	var req CreatePrivilegeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		common.RenderError(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		common.RenderServiceError(w, r, err, "Invalid request")
		return
	}

	p, err := h.privilegeService.CreatePrivilegeIfNotFound(r.Context(), req.Name)
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to create privilege")
		return
	}
	render.JSON(w, r, toResponse(p))
}

// GetPrivilege handles retrieving a privilege by name
func (h *Handle) GetPrivilege(w http.ResponseWriter, r *http.Request) {
	p, found, err := h.privilegeService.FindPrivilegeByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to find privilege")
		return
	}
	if !found {
		common.RenderError(w, r, http.StatusNotFound, privilege.MsgPrivilegeNotFound, "")
		return
	}
	render.JSON(w, r, toResponse(p))
}

// DeletePrivilege handles deleting a privilege by name
func (h *Handle) DeletePrivilege(w http.ResponseWriter, r *http.Request) {
	msg, err := h.privilegeService.DeletePrivilege(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to delete privilege")
		return
	}
	common.RenderMessage(w, r, http.StatusOK, msg)
}
