package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tendant/simple-rbac/pkg/bootstrap"
	"github.com/tendant/simple-rbac/pkg/config"
	"github.com/tendant/simple-rbac/pkg/metrics"
	"github.com/tendant/simple-rbac/pkg/persistence"
	"github.com/tendant/simple-rbac/pkg/persistence/gormdb"
	"github.com/tendant/simple-rbac/pkg/persistence/pgdb"
	"github.com/tendant/simple-rbac/pkg/privilege"
	"github.com/tendant/simple-rbac/pkg/role"
	"github.com/tendant/simple-rbac/pkg/router"
	"github.com/tendant/simple-rbac/pkg/user"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("IDM service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	services, err := initializeServices(store, cfg)
	if err != nil {
		return err
	}

	if cfg.Bootstrap.Enabled {
		privileges, roles := bootstrap.DefaultDefinitions()
		result, err := bootstrap.SeedDefaults(ctx, bootstrap.DefaultsConfig{
			Privileges:       privileges,
			Roles:            roles,
			PrivilegeService: services.Privileges,
			RoleService:      services.Roles,
		})
		if err != nil {
			return fmt.Errorf("failed to seed default data: %w", err)
		}
		bootstrap.PrintDefaultsResult(os.Stdout, result)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	router.SetupRoutes(r, router.NewConfig(cfg.Prefix, services))

	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("IDM service listening",
			"address", server.Addr,
			"persistence", cfg.Persistence.Backend,
			"password_hash", cfg.Password.Algorithm)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// store carries whichever connection the configured backend needs
type store struct {
	repoType persistence.Type
	pool     pgdb.DBTX
	gorm     *gorm.DB
}

func openStore(ctx context.Context, cfg config.Config) (store, func(), error) {
	repoType, err := cfg.Persistence.Backend.RepositoryType()
	if err != nil {
		return store{}, nil, err
	}
	noop := func() {}

	switch cfg.Persistence.Backend {
	case persistence.BackendPostgres:
		pool, err := pgdb.NewPool(ctx, cfg.Database.ToDatabaseURL())
		if err != nil {
			slog.Error("Failed to connect to database",
				"host", cfg.Database.Host,
				"port", cfg.Database.Port,
				"database", cfg.Database.Database,
				"schema", cfg.Database.Schema)
			return store{}, nil, err
		}
		if cfg.Persistence.Migrate {
			if err := pgdb.ApplySchema(ctx, pool); err != nil {
				pool.Close()
				return store{}, nil, err
			}
		}
		slog.Info("Database connected", "database", cfg.Database.Database, "schema", cfg.Database.Schema)
		return store{repoType: repoType, pool: pool}, pool.Close, nil

	case persistence.BackendGormPostgres, persistence.BackendGormSQLite:
		dialect, dsn := gormdb.DialectPostgres, cfg.Database.ToDatabaseURL()
		if cfg.Persistence.Backend == persistence.BackendGormSQLite {
			dialect, dsn = gormdb.DialectSQLite, cfg.Persistence.SQLitePath
		}
		db, err := gormdb.Open(dialect, dsn)
		if err != nil {
			return store{}, nil, err
		}
		if cfg.Persistence.Migrate {
			if err := gormdb.AutoMigrate(db); err != nil {
				return store{}, nil, err
			}
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return store{repoType: repoType, gorm: db}, closeDB, nil

	default:
		slog.Warn("Using in-memory persistence; data is lost on restart")
		return store{repoType: repoType}, noop, nil
	}
}

func initializeServices(s store, cfg config.Config) (router.Services, error) {
	privilegeRepo, err := privilege.NewPrivilegeRepository(s.repoType, privilege.RepositoryConfig{DB: s.pool, Gorm: s.gorm})
	if err != nil {
		return router.Services{}, fmt.Errorf("failed to create privilege repository: %w", err)
	}
	roleRepo, err := role.NewRoleRepository(s.repoType, role.RepositoryConfig{DB: s.pool, Gorm: s.gorm, Privileges: privilegeRepo})
	if err != nil {
		return router.Services{}, fmt.Errorf("failed to create role repository: %w", err)
	}
	userRepo, err := user.NewUserRepository(s.repoType, user.RepositoryConfig{DB: s.pool, Gorm: s.gorm})
	if err != nil {
		return router.Services{}, fmt.Errorf("failed to create user repository: %w", err)
	}

	hasher, err := cfg.Password.NewHasher()
	if err != nil {
		return router.Services{}, err
	}

	return router.Services{
		Privileges: privilege.NewPrivilegeService(privilegeRepo),
		Roles:      role.NewRoleService(roleRepo),
		Users:      user.NewUserService(userRepo, hasher, user.WithStatusRecorder(metrics.PasswordChangeRecorder{})),
	}, nil
}
