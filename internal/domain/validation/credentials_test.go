package validation

import (
	"strings"
	"testing"

	"ratehub/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func validInput() AccountInput {
	return AccountInput{
		Name:     "Ordinary User",
		Email:    "user@example.com",
		Password: "StrongPass1!",
		Address:  "1 Main Street",
		Role:     entity.RoleUser,
	}
}

func TestValidateNewAccount_Valid(t *testing.T) {
	violations := ValidateNewAccount(validInput(), PolicySelf)
	assert.Empty(t, violations)
}

func TestValidateNewAccount_NamePolicyAsymmetry(t *testing.T) {
	input := validInput()
	input.Name = "Short Name" // 10 chars: fine for self, too short for admin

	assert.Empty(t, ValidateNewAccount(input, PolicySelf))

	violations := ValidateNewAccount(input, PolicyAdmin)
	assert.Contains(t, violations, "Name must be between 20 and 60 characters.")

	input.Name = "An Administratively Created Account Name"
	assert.Empty(t, ValidateNewAccount(input, PolicyAdmin))
}

func TestValidateNewAccount_RolePolicy(t *testing.T) {
	input := validInput()

	// Self-registration may not claim the admin role.
	input.Role = entity.RoleAdmin
	violations := ValidateNewAccount(input, PolicySelf)
	assert.Contains(t, violations, "Role must be user or store_owner.")

	// Administrators can create any valid role.
	input.Name = "An Administratively Created Account Name"
	assert.Empty(t, ValidateNewAccount(input, PolicyAdmin))

	input.Role = entity.Role("superuser")
	violations = ValidateNewAccount(input, PolicyAdmin)
	assert.Contains(t, violations, "Invalid role.")
}

func TestValidateNewAccount_OrderedViolations(t *testing.T) {
	input := AccountInput{
		Name:     "ab",
		Email:    "not-an-email",
		Password: "short",
		Address:  strings.Repeat("x", 401),
		Role:     entity.RoleAdmin,
	}

	violations := ValidateNewAccount(input, PolicySelf)
	assert.Equal(t, []string{
		"Name must be between 3 and 60 characters.",
		"Invalid email format.",
		"Password must be 8-16 characters, include one uppercase letter and one special character.",
		"Address must not exceed 400 characters.",
		"Role must be user or store_owner.",
	}, violations)
}

func TestValidatePassword(t *testing.T) {
	valid := []string{
		"StrongPass1!",
		"Abcdefg@",
		"UPPER#lower9",
		"A!aaaaaaaaaaaaa1",
	}
	for _, p := range valid {
		assert.NoError(t, ValidatePassword(p), "expected valid: %s", p)
	}

	invalid := []string{
		"",
		"Short1!",              // too short
		"WayTooLongPassword1!", // too long
		"alllower1!",           // no uppercase
		"NoSpecial123",         // no special character
		"HasSpace 1!",          // space is outside the allowed set
		"Tricky?Pass1",         // '?' is not in the special set
	}
	for _, p := range invalid {
		assert.Error(t, ValidatePassword(p), "expected invalid: %s", p)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("a.b+c@sub.domain.org"))

	bad := []string{
		"",
		"plain",
		"@nodomain.com",
		"user@",
		"user@domain",
		"user@domain.",
		"user@@example.com",
		"user name@example.com",
	}
	for _, e := range bad {
		assert.False(t, ValidEmail(e), "expected invalid: %s", e)
	}
}
