package password

import "fmt"

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// NewPasswordHasher creates a hasher that writes the configured algorithm and
// verifies digests of every supported algorithm
func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	var primary PasswordHasher
	switch algorithm {
	case "", AlgorithmBcrypt:
		primary = NewBcryptHasher(bcryptCost)
	case AlgorithmArgon2id:
		primary = NewArgon2Hasher()
	default:
		return nil, fmt.Errorf("unsupported password hash algorithm: %s (supported: bcrypt, argon2id)", algorithm)
	}
	return NewMultiHasher(primary), nil
}
