package validation

import (
	"regexp"
	"strings"
)

// Administrator credential rules
const (
	// EmailPattern is the administrator email format.
	EmailPattern = `^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`

	// PasswordMinLength is the minimum administrator password length.
	PasswordMinLength = 6
)

var emailRegexp = regexp.MustCompile(EmailPattern)

// IsValidEmail reports whether email matches the administrator email format.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && emailRegexp.MatchString(email)
}

// IsValidPassword reports whether password satisfies the minimum length.
// Whitespace-only passwords are rejected.
func IsValidPassword(password string) bool {
	if strings.TrimSpace(password) == "" {
		return false
	}
	return len(password) >= PasswordMinLength
}
