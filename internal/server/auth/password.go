package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// ErrPasswordTooShort is returned when a plaintext password has fewer than
// six characters after trimming.
var ErrPasswordTooShort = errors.New("Password must be at least 6 characters long")

// HashPassword produces a salted one-way hash of password. A blank input
// returns an empty hash and no error: callers treat "no password supplied"
// as "no change" on update.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", nil
	}
	if len(password) < 6 {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether candidate matches the stored hash.
func CheckPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
