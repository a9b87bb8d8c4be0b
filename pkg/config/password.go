package config

import (
	"github.com/tendant/simple-rbac/pkg/password"
)

// PasswordHashConfig selects the one-way hash used for stored credentials
type PasswordHashConfig struct {
	Algorithm  string `env:"PASSWORD_HASH_ALGORITHM" env-default:"bcrypt"`
	BcryptCost int    `env:"PASSWORD_BCRYPT_COST" env-default:"10"`
}

func (c PasswordHashConfig) Validate() error {
	_, err := c.NewHasher()
	return err
}

// NewHasher builds the configured hasher
func (c PasswordHashConfig) NewHasher() (password.PasswordHasher, error) {
	return password.NewPasswordHasher(c.Algorithm, c.BcryptCost)
}
