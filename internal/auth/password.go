package auth

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt truncates passwords at 72 bytes. Enforced explicitly to avoid
	// inconsistent login behavior.
	bcryptMaxPasswordBytes = 72
	minPasswordChars       = 8
)

var errPasswordValidation = errors.New("password validation")

// HashPassword hashes a plaintext password using bcrypt.
// The password must be at least minPasswordChars characters and at most
// bcryptMaxPasswordBytes bytes of UTF-8.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("%w: password required", errPasswordValidation)
	}
	if utf8.RuneCountInString(plain) < minPasswordChars {
		return "", fmt.Errorf("%w: password must be at least %d characters", errPasswordValidation, minPasswordChars)
	}
	if len(plain) > bcryptMaxPasswordBytes {
		return "", fmt.Errorf("%w: password too long, bcrypt supports up to %d bytes", errPasswordValidation, bcryptMaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// IsPasswordValidationError reports whether the error is a user-facing
// password rule violation rather than an internal failure.
func IsPasswordValidationError(err error) bool {
	return errors.Is(err, errPasswordValidation)
}

func ComparePasswordHash(hash string, plain string) error {
	if plain == "" {
		return fmt.Errorf("password required")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
