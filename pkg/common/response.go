package common

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	idmerrors "github.com/tendant/simple-rbac/pkg/errors"
)

// MessageResponse carries a status string returned by a service
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Error   string                 `json:"error,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func RenderMessage(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, MessageResponse{Message: message})
}

func RenderError(w http.ResponseWriter, r *http.Request, statusCode int, message, errorDetail string) {
	renderError(w, r, statusCode, ErrorResponse{Status: "error", Message: message, Error: errorDetail})
}

// RenderServiceError maps a service error onto a response. Structured errors
// keep their message and status; anything else is logged and reported as a
// 500 with the fallback message.
func RenderServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var structured *idmerrors.Error
	if stderrors.As(err, &structured) {
		statusCode := structured.HTTPStatusCode()
		if statusCode < http.StatusInternalServerError {
			renderError(w, r, statusCode, ErrorResponse{
				Status:  "error",
				Message: structured.Message,
				Details: structured.Details,
			})
			return
		}
	}

	slog.Error(fallback, "error", err)
	RenderError(w, r, http.StatusInternalServerError, fallback, err.Error())
}

func renderError(w http.ResponseWriter, r *http.Request, statusCode int, response ErrorResponse) {
	render.Status(r, statusCode)
	render.JSON(w, r, response)
}
