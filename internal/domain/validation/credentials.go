// Package validation contains pure rule-checking for account credentials.
// It has no I/O; callers decide how to surface the returned violations.
package validation

import (
	"strings"

	"ratehub/internal/domain/entity"
)

// NamePolicy controls the display-name length rule, which differs by actor:
// self-registration accepts 3-60 characters, administrative creation requires
// the stricter 20-60 form.
type NamePolicy int

const (
	// PolicySelf applies to self-registration via the public signup endpoint.
	PolicySelf NamePolicy = iota
	// PolicyAdmin applies when an administrator creates the account.
	PolicyAdmin
)

// specialChars is the closed set of symbols a password may (and must) contain.
const specialChars = "!@#$%^&*"

// AccountInput is the candidate record checked by ValidateNewAccount.
type AccountInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     entity.Role
}

// ValidateNewAccount checks a candidate account record against the platform's
// field rules and returns the ordered list of human-readable violations.
// An empty slice means the record is valid.
func ValidateNewAccount(input AccountInput, policy NamePolicy) []string {
	var violations []string

	minName := 3
	if policy == PolicyAdmin {
		minName = 20
	}
	if n := len(input.Name); n < minName || n > 60 {
		if policy == PolicyAdmin {
			violations = append(violations, "Name must be between 20 and 60 characters.")
		} else {
			violations = append(violations, "Name must be between 3 and 60 characters.")
		}
	}

	if !ValidEmail(input.Email) {
		violations = append(violations, "Invalid email format.")
	}

	if err := ValidatePassword(input.Password); err != nil {
		violations = append(violations, err.Error())
	}

	if len(input.Address) > 400 {
		violations = append(violations, "Address must not exceed 400 characters.")
	}

	switch policy {
	case PolicySelf:
		if !input.Role.SelfRegistrable() {
			violations = append(violations, "Role must be user or store_owner.")
		}
	case PolicyAdmin:
		if !input.Role.IsValid() {
			violations = append(violations, "Invalid role.")
		}
	}

	return violations
}

// PasswordError is returned by ValidatePassword when the password breaks the policy.
type PasswordError string

// Error implements the error interface.
func (e PasswordError) Error() string {
	return string(e)
}

// errPasswordPolicy is the single user-facing message for every password violation;
// the policy is intentionally not itemized so the rule set stays one sentence.
const errPasswordPolicy = PasswordError(
	"Password must be 8-16 characters, include one uppercase letter and one special character.")

// ValidatePassword checks the password policy: length 8-16, at least one
// uppercase letter, at least one symbol from the special set, and no characters
// outside letters, digits and that set.
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 16 {
		return errPasswordPolicy
	}

	var hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			// allowed, contributes nothing further
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		default:
			return errPasswordPolicy
		}
	}

	if !hasUpper || !hasSpecial {
		return errPasswordPolicy
	}

	return nil
}

// ValidEmail reports whether the address has a plausible local@domain shape with
// no embedded whitespace. Deliverability is not checked.
func ValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}

	domain := email[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	// The dot must split the domain into two non-empty labels.
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}

	return true
}
