// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleAdmin indicates a platform administrator role.
	RoleAdmin Role = "admin"
	// RoleUser indicates a regular user role.
	RoleUser Role = "user"
	// RoleStoreOwner indicates a store owner role.
	RoleStoreOwner Role = "store_owner"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	default:
		return false
	}
}

// SelfRegistrable reports whether the role may be chosen during self-registration.
// Administrators can only be created by another administrator.
func (r Role) SelfRegistrable() bool {
	return r == RoleUser || r == RoleStoreOwner
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
