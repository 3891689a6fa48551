package auth

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// minBcryptCost is the lowest work factor we accept. bcrypt's own default
// is 10; anything below that is too cheap for stored credentials.
const minBcryptCost = 10

// bcryptCost returns the configured work factor, clamped to a sane range.
func bcryptCost() int {
	cost := minBcryptCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cost = n
		}
	}
	if cost < minBcryptCost {
		cost = minBcryptCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return cost
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost())
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a bcrypt hash against a plaintext candidate.
// bcrypt's comparison is constant-time on the derived key.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
