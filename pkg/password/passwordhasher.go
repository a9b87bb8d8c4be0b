package password

import "errors"

var (
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrInvalidHashFormat = errors.New("invalid password hash format")
)

// PasswordHasher is the one-way credential hashing primitive used by the user service
type PasswordHasher interface {
	// Hash returns the one-way digest of a plaintext password
	Hash(password string) (string, error)

	// Verify checks if the plaintext password matches the stored digest
	Verify(password, hashedPassword string) (bool, error)
}
