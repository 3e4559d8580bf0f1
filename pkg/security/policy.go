package security

import (
	"regexp"
	"strings"
	"time"

	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
)

const (
	passwordMinLen = 8
	passwordMaxLen = 16
)

var passwordCharset = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]+$`)

// ValidateRawPassword enforces the account password policy: 8-16 characters
// from the allowed charset, and the holder's birth date must not appear in
// any common format.
func ValidateRawPassword(raw string, birthDate time.Time) error {
	if strings.TrimSpace(raw) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "password cannot be empty")
	}
	if len(raw) < passwordMinLen || len(raw) > passwordMaxLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be 8-16 characters")
	}
	if !passwordCharset.MatchString(raw) {
		return pkgerrors.New(pkgerrors.CodeValidation, "password may only contain letters, digits and special characters")
	}
	if !birthDate.IsZero() && containsBirthDate(raw, birthDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must not contain the birth date")
	}
	return nil
}

func containsBirthDate(password string, birthDate time.Time) bool {
	formats := []string{"20060102", "060102", "2006-01-02", "06-01-02"}
	for _, layout := range formats {
		if strings.Contains(password, birthDate.Format(layout)) {
			return true
		}
	}
	return false
}
