package password

import "strings"

// MultiHasher hashes with one algorithm and verifies any supported format,
// detected from the stored digest. Hashes written before an algorithm change
// keep verifying.
type MultiHasher struct {
	primary PasswordHasher
	bcrypt  *BcryptHasher
	argon2  *Argon2Hasher
}

// NewMultiHasher creates a MultiHasher that hashes new passwords with primary
func NewMultiHasher(primary PasswordHasher) *MultiHasher {
	return &MultiHasher{
		primary: primary,
		bcrypt:  NewBcryptHasher(0),
		argon2:  NewArgon2Hasher(),
	}
}

// Hash implements PasswordHasher.Hash
func (h *MultiHasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

// Verify implements PasswordHasher.Verify
func (h *MultiHasher) Verify(password, hashedPassword string) (bool, error) {
	if password == "" || hashedPassword == "" {
		return false, ErrEmptyPassword
	}

	switch DetectAlgorithm(hashedPassword) {
	case AlgorithmArgon2id:
		return h.argon2.Verify(password, hashedPassword)
	case AlgorithmBcrypt:
		// bcrypt reads the cost from the digest
		return h.bcrypt.Verify(password, hashedPassword)
	default:
		return false, ErrInvalidHashFormat
	}
}

// DetectAlgorithm names the algorithm that produced hashedPassword, or "" when
// the format is not recognized.
func DetectAlgorithm(hashedPassword string) string {
	switch {
	case strings.HasPrefix(hashedPassword, "$argon2id$"):
		return AlgorithmArgon2id
	case strings.HasPrefix(hashedPassword, "$2a$"),
		strings.HasPrefix(hashedPassword, "$2b$"),
		strings.HasPrefix(hashedPassword, "$2y$"):
		return AlgorithmBcrypt
	default:
		return ""
	}
}
