package config

import (
	"fmt"
	"strings"
)

// PrefixConfig holds configurable API endpoint prefixes for all route groups.
//
// Example environment variables:
//
//	API_PREFIX_BASE=/api/v1/idm
//	API_PREFIX_PRIVILEGES=/api/v1/idm/privileges
//	API_PREFIX_ROLES=/api/v1/idm/roles
//	API_PREFIX_USERS=/api/v1/idm/users
type PrefixConfig struct {
	Base       string `env:"API_PREFIX_BASE"`
	Privileges string `env:"API_PREFIX_PRIVILEGES"`
	Roles      string `env:"API_PREFIX_ROLES"`
	Users      string `env:"API_PREFIX_USERS"`
}

// DefaultV1Prefixes returns the default v1 prefix configuration.
func DefaultV1Prefixes() PrefixConfig {
	return BuildPrefixesFromBase("/api/v1/idm")
}

// BuildPrefixesFromBase appends the route segment of each group to basePath.
func BuildPrefixesFromBase(basePath string) PrefixConfig {
	basePath = strings.TrimSuffix(basePath, "/")

	return PrefixConfig{
		Base:       basePath,
		Privileges: basePath + "/privileges",
		Roles:      basePath + "/roles",
		Users:      basePath + "/users",
	}
}

// WithBase fills unset groups from Base, falling back to DefaultV1Prefixes.
// Explicit per-group values are kept.
func (p PrefixConfig) WithBase() PrefixConfig {
	defaults := DefaultV1Prefixes()
	if p.Base != "" {
		defaults = BuildPrefixesFromBase(p.Base)
	}

	if p.Privileges == "" {
		p.Privileges = defaults.Privileges
	}
	if p.Roles == "" {
		p.Roles = defaults.Roles
	}
	if p.Users == "" {
		p.Users = defaults.Users
	}
	p.Base = defaults.Base
	return p
}

// Validate checks that all prefix paths are valid (non-empty and start with /)
func (p PrefixConfig) Validate() error {
	prefixes := []struct {
		name  string
		value string
	}{
		{"Privileges", p.Privileges},
		{"Roles", p.Roles},
		{"Users", p.Users},
	}

	for _, prefix := range prefixes {
		if prefix.value == "" {
			return fmt.Errorf("prefix %s cannot be empty", prefix.name)
		}
		if !strings.HasPrefix(prefix.value, "/") {
			return fmt.Errorf("prefix %s must start with '/': got %q", prefix.name, prefix.value)
		}
	}
	return nil
}
