package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	pkgconfig "github.com/tendant/simple-rbac/pkg/config"
	"github.com/tendant/simple-rbac/pkg/metrics"
	"github.com/tendant/simple-rbac/pkg/privilege"
	privilegeapi "github.com/tendant/simple-rbac/pkg/privilege/api"
	"github.com/tendant/simple-rbac/pkg/role"
	roleapi "github.com/tendant/simple-rbac/pkg/role/api"
	"github.com/tendant/simple-rbac/pkg/user"
	userapi "github.com/tendant/simple-rbac/pkg/user/api"
)

// Config holds all the handlers needed to setup routes
type Config struct {
	// Prefix configuration for all routes
	PrefixConfig pkgconfig.PrefixConfig

	PrivilegeHandle *privilegeapi.Handle
	RoleHandle      *roleapi.Handle
	UserHandle      *userapi.Handle

	// MetricsEnabled mounts /metrics and the request metrics middleware
	MetricsEnabled bool
}

// Services bundles the domain services behind the HTTP handlers
type Services struct {
	Privileges *privilege.PrivilegeService
	Roles      *role.RoleService
	Users      *user.UserService
}

// NewConfig builds the handlers for the given services
func NewConfig(prefixes pkgconfig.PrefixConfig, services Services) Config {
	return Config{
		PrefixConfig:    prefixes,
		PrivilegeHandle: privilegeapi.NewHandle(services.Privileges),
		RoleHandle:      roleapi.NewHandle(services.Roles, services.Privileges),
		UserHandle:      userapi.NewHandle(services.Users),
		MetricsEnabled:  true,
	}
}

// SetupRoutes mounts all IDM routes on the provided router.
// Groups with an empty prefix or a nil handle are skipped.
func SetupRoutes(router chi.Router, cfg Config) {
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})

	if cfg.MetricsEnabled {
		router.Handle("/metrics", metrics.Handler())
	}

	router.Group(func(r chi.Router) {
		if cfg.MetricsEnabled {
			r.Use(metrics.Middleware)
		}

		if cfg.PrefixConfig.Privileges != "" && cfg.PrivilegeHandle != nil {
			r.Route(cfg.PrefixConfig.Privileges, cfg.PrivilegeHandle.RegisterRoutes)
		}
		if cfg.PrefixConfig.Roles != "" && cfg.RoleHandle != nil {
			r.Route(cfg.PrefixConfig.Roles, cfg.RoleHandle.RegisterRoutes)
		}
		if cfg.PrefixConfig.Users != "" && cfg.UserHandle != nil {
			r.Route(cfg.PrefixConfig.Users, cfg.UserHandle.RegisterRoutes)
		}
	})
}
