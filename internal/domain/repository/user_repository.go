// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email unique constraint is violated.
	ErrEmailTaken = errors.New("email already registered")
)

// UserFilter narrows and orders user listings. Empty fields are ignored.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    entity.Role
	SortBy  string // "name" or "email"; anything else leaves storage order
	Desc    bool
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// Create persists a new user. The email unique constraint is authoritative:
	// a violation at insert surfaces as ErrEmailTaken even if a pre-check passed.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdatePassword overwrites the stored password hash for a user. Idempotent.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Update modifies a user's profile fields (name, email, address, role).
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves users matching the filter.
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}
