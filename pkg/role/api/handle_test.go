package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-rbac/pkg/common"
	"github.com/tendant/simple-rbac/pkg/privilege"
	"github.com/tendant/simple-rbac/pkg/role"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	privileges := privilege.NewInMemoryPrivilegeRepository()
	privilegeService := privilege.NewPrivilegeService(privileges)
	for _, name := range []string{"READ_PRIVILEGE", "WRITE_PRIVILEGE"} {
		_, err := privilegeService.CreatePrivilegeIfNotFound(context.Background(), name)
		require.NoError(t, err)
	}

	roleService := role.NewRoleService(role.NewInMemoryRoleRepository(privileges))
	r := chi.NewRouter()
	r.Route("/roles", NewHandle(roleService, privilegeService).RegisterRoutes)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoleHandlers(t *testing.T) {
	h := setupRouter(t)

	w := do(h, http.MethodPost, "/roles", `{"name":"ROLE_ADMIN","privileges":["READ_PRIVILEGE","WRITE_PRIVILEGE"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var admin RoleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &admin))
	assert.Equal(t, "ROLE_ADMIN", admin.Name)
	assert.Len(t, admin.Privileges, 2)

	// existing role comes back unchanged
	w = do(h, http.MethodPost, "/roles", `{"name":"ROLE_ADMIN","privileges":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var again RoleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, admin, again)

	w = do(h, http.MethodGet, "/roles/ROLE_ADMIN", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodGet, "/roles", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []RoleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(h, http.MethodDelete, "/roles/ROLE_ADMIN", "")
	require.Equal(t, http.StatusOK, w.Code)
	var msg common.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, role.RoleDeleted, msg.Message)

	w = do(h, http.MethodDelete, "/roles/ROLE_ADMIN", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodGet, "/roles/ROLE_ADMIN", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRole_UnknownPrivilege(t *testing.T) {
	h := setupRouter(t)

	w := do(h, http.MethodPost, "/roles", `{"name":"ROLE_X","privileges":["NOPE"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodGet, "/roles/ROLE_X", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRole_ExistingRoleIgnoresUnknownPrivilege(t *testing.T) {
	h := setupRouter(t)

	w := do(h, http.MethodPost, "/roles", `{"name":"ROLE_USER","privileges":["READ_PRIVILEGE"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created RoleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(h, http.MethodPost, "/roles", `{"name":"ROLE_USER","privileges":["NOPE"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var again RoleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, created, again)
}
