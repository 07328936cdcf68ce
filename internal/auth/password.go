package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword applies the password strength policy: minimum length
// and not entirely numeric.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	numeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return errors.New("password cannot be entirely numeric")
	}
	return nil
}
