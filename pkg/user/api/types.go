package api

import (
	"time"

	roleapi "github.com/tendant/simple-rbac/pkg/role/api"
)

type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=20"`
	LastName  string `json:"last_name" validate:"required,min=2,max=20"`
	Email     string `json:"email" validate:"required,max=50,idm_email"`
	Password  string `json:"password" validate:"required,min=8,max=100"`
}

// ChangePasswordRequest is the body of PUT /users/{id}/password. It carries no
// validation tags: every combination of values reaches the service and gets a status.
type ChangePasswordRequest struct {
	Password         string `json:"password"`
	NewPassword      string `json:"new_password"`
	NewPasswordAgain string `json:"new_password_again"`
}

type UserResponse struct {
	ID             string                 `json:"id"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	Email          string                 `json:"email"`
	Enabled        bool                   `json:"enabled"`
	Roles          []roleapi.RoleResponse `json:"roles"`
	CreatedAt      time.Time              `json:"created_at"`
	LastModifiedAt time.Time              `json:"last_modified_at"`
}
