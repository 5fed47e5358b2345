package utils

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

const minPasswordLength = 8

// ValidatePassword applies the account password policy and returns every
// rule the candidate violates: minimum length, not entirely numeric, and
// not too similar to the username or the local part of the email address.
func ValidatePassword(password, username, email string) []string {
	var msgs []string

	if len(password) < minPasswordLength {
		msgs = append(msgs, fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength))
	}

	numeric := len(password) > 0
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		msgs = append(msgs, "This password is entirely numeric.")
	}

	if tooSimilar(password, username) || tooSimilar(password, emailLocalPart(email)) {
		msgs = append(msgs, "The password is too similar to the username or email.")
	}

	return msgs
}

// tooSimilar reports case-insensitive containment either way. Attributes
// shorter than 4 characters are ignored to avoid false positives.
func tooSimilar(password, attr string) bool {
	if len(attr) < 4 {
		return false
	}
	p := strings.ToLower(password)
	a := strings.ToLower(attr)
	return strings.Contains(p, a) || strings.Contains(a, p)
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
