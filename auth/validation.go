package auth

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const (
	oneTimeCodeLength = 6
	minPasswordLength = 8
)

// ValidateCredentials checks first-factor input before any network call is
// issued.
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.Wrap(ValidationErr, "email is required")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return errors.Wrap(ValidationErr, "invalid email format")
	}
	if password == "" {
		return errors.Wrap(ValidationErr, "password is required")
	}
	return nil
}

// ValidateOneTimeCode requires exactly six ASCII digits.
func ValidateOneTimeCode(code string) error {
	if len(code) != oneTimeCodeLength {
		return errors.Wrap(ValidationErr, "verification code must be 6 digits")
	}
	for _, r := range code {
		if !unicode.IsDigit(r) || r > '9' {
			return errors.Wrap(ValidationErr, "verification code must be 6 digits")
		}
	}
	return nil
}

// ValidateNewPassword enforces the minimum secret length for reset and
// signup. Anything stronger is the service's policy to enforce.
func ValidateNewPassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.Wrapf(WeakSecretErr, "password must be at least %d characters", minPasswordLength)
	}
	return nil
}
