package auth

import (
	"fmt"
	"unicode/utf8"

	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced everywhere a password is set: admin
// creation and password reset.
const MinPasswordLength = 6

// HashPassword derives a salted bcrypt hash from a plaintext password.
// The plaintext is never stored anywhere.
func HashPassword(plainText string) (string, error) {
	if utf8.RuneCountInString(plainText) < MinPasswordLength {
		return "", servererrors.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(plainText),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether plainText matches the stored bcrypt
// hash. bcrypt's comparison is resistant to timing attacks.
func VerifyPassword(plainText, storedHash string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(storedHash),
		[]byte(plainText),
	)

	return err == nil
}
