package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-rbac/pkg/common"
	privilegeapi "github.com/tendant/simple-rbac/pkg/privilege/api"
	roleapi "github.com/tendant/simple-rbac/pkg/role/api"
	"github.com/tendant/simple-rbac/pkg/user"
)

type Handle struct {
	userService *user.UserService
	validator   *common.Validator
}

func NewHandle(userService *user.UserService) *Handle {
	return &Handle{
		userService: userService,
		validator:   common.NewValidator(),
	}
}

func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Post("/", h.CreateUser)
	r.Get("/{id}", h.GetUser)
	r.Put("/{id}/password", h.ChangePassword)
}

func toResponse(u user.User) UserResponse {
	roles := make([]roleapi.RoleResponse, 0, len(u.Roles))
	for _, ro := range u.Roles {
		privileges := make([]privilegeapi.PrivilegeResponse, 0, len(ro.Privileges))
		for _, p := range ro.Privileges {
			privileges = append(privileges, privilegeapi.PrivilegeResponse{ID: p.ID.String(), Name: p.Name})
		}
		roles = append(roles, roleapi.RoleResponse{ID: ro.ID.String(), Name: ro.Name, Privileges: privileges})
	}

	return UserResponse{
		ID:             u.ID.String(),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Enabled:        u.Enabled,
		Roles:          roles,
		CreatedAt:      u.CreatedAt,
		LastModifiedAt: u.LastModifiedAt,
	}
}

// CreateUser handles user signup
func (h *Handle) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		common.RenderError(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := h.validator.Validate(req); err != nil {
		common.RenderServiceError(w, r, err, "Invalid request")
		return
	}

	var params user.CreateUserParams
	if err := copier.Copy(&params, &req); err != nil {
		common.RenderError(w, r, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	u, err := h.userService.CreateUser(r.Context(), params)
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to create user")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toResponse(u))
}

// GetUser handles retrieving a user by UUID
func (h *Handle) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.RenderError(w, r, http.StatusBadRequest, "Invalid user ID", err.Error())
		return
	}

	u, found, err := h.userService.FindUserByID(r.Context(), id)
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to find user")
		return
	}
	if !found {
		common.RenderError(w, r, http.StatusNotFound, user.MsgUserNotFound, "")
		return
	}
	render.JSON(w, r, toResponse(u))
}

// ChangePassword returns the resulting status message with 200 for every outcome
// except an unknown user.
func (h *Handle) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.RenderError(w, r, http.StatusBadRequest, "Invalid user ID", err.Error())
		return
	}

	var req ChangePasswordRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		common.RenderError(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	params := user.ChangePasswordParams{ID: id}
	if err := copier.Copy(&params, &req); err != nil {
		common.RenderError(w, r, http.StatusInternalServerError, "Failed to change password", err.Error())
		return
	}

	status, err := h.userService.ChangePassword(r.Context(), params)
	if err != nil {
		common.RenderServiceError(w, r, err, "Failed to change password")
		return
	}
	common.RenderMessage(w, r, http.StatusOK, string(status))
}
