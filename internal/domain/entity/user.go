// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity entity, representing a unique account on the platform.
// PasswordHash is populated only by the persistence layer and must never be
// serialized into API responses.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Name         string    // The user's display name.
	Email        string    // The user's email, unique across all accounts, used as the login identifier.
	PasswordHash string    // The bcrypt-hashed password. Never leaves the identity-store boundary.
	Address      string    // The user's postal address, free-form text.
	Role         Role      // The account's single role: admin, user, or store_owner.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
