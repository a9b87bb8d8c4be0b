package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tendant/simple-rbac/pkg/privilege"
	"github.com/tendant/simple-rbac/pkg/role"
)

const (
	ReadPrivilege  = "READ_PRIVILEGE"
	WritePrivilege = "WRITE_PRIVILEGE"
	RoleAdmin      = "ROLE_ADMIN"
	RoleUser       = "ROLE_USER"
)

// RoleDefinition names a role and the privileges it is created with
type RoleDefinition struct {
	Name       string
	Privileges []string
}

// DefaultsConfig contains configuration for seeding default privileges and roles
type DefaultsConfig struct {
	Privileges []string
	Roles      []RoleDefinition

	// Service dependencies
	PrivilegeService *privilege.PrivilegeService
	RoleService      *role.RoleService
}

// DefaultDefinitions returns READ_PRIVILEGE and WRITE_PRIVILEGE, ROLE_ADMIN
// holding both and ROLE_USER holding read only.
func DefaultDefinitions() ([]string, []RoleDefinition) {
	return []string{ReadPrivilege, WritePrivilege}, []RoleDefinition{
		{Name: RoleAdmin, Privileges: []string{ReadPrivilege, WritePrivilege}},
		{Name: RoleUser, Privileges: []string{ReadPrivilege}},
	}
}

// EntryInfo describes one seeded privilege or role
type EntryInfo struct {
	ID      uuid.UUID
	Name    string
	Created bool // true if created, false if already existed
}

// DefaultsResult contains the result of the seeding run
type DefaultsResult struct {
	Privileges []EntryInfo
	Roles      []EntryInfo
}

// SeedDefaults ensures the configured privileges and roles exist. Every entry
// goes through create-if-not-found, so running it again is a no-op and roles
// that already exist keep their stored privileges.
func SeedDefaults(ctx context.Context, cfg DefaultsConfig) (*DefaultsResult, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid bootstrap configuration: %w", err)
	}

	result := &DefaultsResult{}
	byName := make(map[string]privilege.Privilege, len(cfg.Privileges))

	for _, name := range cfg.Privileges {
		_, existed, err := cfg.PrivilegeService.FindPrivilegeByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up privilege %s: %w", name, err)
		}
		p, err := cfg.PrivilegeService.CreatePrivilegeIfNotFound(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure privilege %s: %w", name, err)
		}
		byName[p.Name] = p
		result.Privileges = append(result.Privileges, EntryInfo{ID: p.ID, Name: p.Name, Created: !existed})
	}

	for _, def := range cfg.Roles {
		privileges := make([]privilege.Privilege, 0, len(def.Privileges))
		for _, name := range def.Privileges {
			p, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("role %s references unseeded privilege %s", def.Name, name)
			}
			privileges = append(privileges, p)
		}

		_, existed, err := cfg.RoleService.FindRoleByName(ctx, def.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up role %s: %w", def.Name, err)
		}
		r, err := cfg.RoleService.CreateRoleIfNotFound(ctx, def.Name, privileges)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure role %s: %w", def.Name, err)
		}
		result.Roles = append(result.Roles, EntryInfo{ID: r.ID, Name: r.Name, Created: !existed})
	}

	slog.Info("Default data seeded",
		"privileges_created", countCreated(result.Privileges),
		"roles_created", countCreated(result.Roles))

	return result, nil
}

func validateConfig(cfg DefaultsConfig) error {
	if cfg.PrivilegeService == nil {
		return fmt.Errorf("PrivilegeService is required")
	}
	if cfg.RoleService == nil {
		return fmt.Errorf("RoleService is required")
	}
	return nil
}

// countCreated counts how many entries were created (vs already existed)
func countCreated(entries []EntryInfo) int {
	count := 0
	for _, e := range entries {
		if e.Created {
			count++
		}
	}
	return count
}
