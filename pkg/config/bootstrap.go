package config

// BootstrapConfig controls the default privileges and roles seeded at startup
type BootstrapConfig struct {
	Enabled bool `env:"IDM_BOOTSTRAP_ENABLED" env-default:"true"`
}
