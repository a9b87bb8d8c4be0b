package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-rbac/pkg/common"
	"github.com/tendant/simple-rbac/pkg/password"
	"github.com/tendant/simple-rbac/pkg/user"
	"golang.org/x/crypto/bcrypt"
)

func setupRouter() http.Handler {
	svc := user.NewUserService(user.NewInMemoryUserRepository(), password.NewBcryptHasher(bcrypt.MinCost))
	r := chi.NewRouter()
	r.Route("/users", NewHandle(svc).RegisterRoutes)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createUser(t *testing.T, h http.Handler) UserResponse {
	t.Helper()
	w := do(h, http.MethodPost, "/users", `{"first_name":"John","last_name":"Doe","email":"john@example.com","password":"987654321"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateUser(t *testing.T) {
	h := setupRouter()
	u := createUser(t, h)

	assert.Equal(t, "John", u.FirstName)
	assert.True(t, u.Enabled)
	assert.Empty(t, u.Roles)
	assert.NotContains(t, u.ID, "987654321")

	w := do(h, http.MethodGet, "/users/"+u.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	// duplicate email surfaces as a conflict
	w = do(h, http.MethodPost, "/users", `{"first_name":"Jane","last_name":"Doe","email":"john@example.com","password":"987654321"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUser_Validation(t *testing.T) {
	h := setupRouter()

	w := do(h, http.MethodPost, "/users", `{"first_name":"J","last_name":"Doe","email":"bad","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "first_name")
	assert.Contains(t, resp.Details, "email")
	assert.Contains(t, resp.Details, "password")
}

func TestGetUser(t *testing.T) {
	h := setupRouter()

	w := do(h, http.MethodGet, "/users/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodGet, "/users/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChangePassword(t *testing.T) {
	h := setupRouter()
	u := createUser(t, h)
	path := "/users/" + u.ID + "/password"

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "confirmation mismatch",
			path:       path,
			body:       `{"password":"987654321","new_password":"987654321","new_password_again":"123"}`,
			wantStatus: http.StatusOK,
			wantMsg:    string(user.PasswordsNotSame),
		},
		{
			name:       "new password does not verify",
			path:       path,
			body:       `{"password":"987654321","new_password":"newPassword1","new_password_again":"newPassword1"}`,
			wantStatus: http.StatusOK,
			wantMsg:    string(user.PasswordNotCorrect),
		},
		{
			name:       "new password verifies",
			path:       path,
			body:       `{"password":"whatever","new_password":"987654321","new_password_again":"987654321"}`,
			wantStatus: http.StatusOK,
			wantMsg:    string(user.PasswordChanged),
		},
		{
			name:       "confirmation mismatch without current password",
			path:       path,
			body:       `{"new_password":"987654321","new_password_again":"123"}`,
			wantStatus: http.StatusOK,
			wantMsg:    string(user.PasswordsNotSame),
		},
		{
			name:       "empty new password",
			path:       path,
			body:       `{}`,
			wantStatus: http.StatusOK,
			wantMsg:    string(user.PasswordNotCorrect),
		},
		{
			name:       "unknown user with short passwords",
			path:       "/users/" + uuid.New().String() + "/password",
			body:       `{"new_password":"1","new_password_again":"2"}`,
			wantStatus: http.StatusNotFound,
			wantMsg:    user.MsgUserNotFound,
		},
		{
			name:       "unknown user",
			path:       "/users/" + uuid.New().String() + "/password",
			body:       `{"password":"987654321","new_password":"987654321","new_password_again":"987654321"}`,
			wantStatus: http.StatusNotFound,
			wantMsg:    user.MsgUserNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPut, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			var resp struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}
