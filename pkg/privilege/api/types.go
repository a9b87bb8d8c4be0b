package api

// CreatePrivilegeRequest represents the request body for creating a privilege
type CreatePrivilegeRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// PrivilegeResponse represents a privilege in API responses
type PrivilegeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
