package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor (2^10 rounds).
const PasswordCost = 10

// MaxPasswordBytes is how much of a password bcrypt reads. Longer input is
// cut to this length on both hash and compare.
const MaxPasswordBytes = 72

func bcryptInput(plain string) []byte {
	b := []byte(plain)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(bcryptInput(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plain)) == nil
}
