// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required for public self-registration.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     entity.Role
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdatePasswordInput defines the data required to change an account's password.
type UpdatePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput defines the data an administrator supplies when creating an account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     entity.Role
}

// UpdateUserInput defines the mutable profile fields of an account.
type UpdateUserInput struct {
	UserID  uuid.UUID
	Name    string
	Email   string
	Address string
	Role    entity.Role
}

// --- Output DTOs ---

// SignupOutput returns the newly created account and its first session token.
type SignupOutput struct {
	AccessToken string
	ExpiresIn   int64 // Seconds until the token expires.
	User        *entity.User
}

// LoginOutput returns the issued session token after a successful login.
type LoginOutput struct {
	AccessToken string
	ExpiresIn   int64 // Seconds until the token expires.
	User        *entity.User
}

// UserDetail pairs an account with derived rating data. AverageRating is
// populated only for store_owner accounts that have a store with ratings.
type UserDetail struct {
	User          *entity.User
	AverageRating *float64
}

// DashboardTotals summarizes the platform for the admin dashboard.
type DashboardTotals struct {
	Users   int64
	Stores  int64
	Ratings int64
}

// AccountUsecase defines the interface for identity and account operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Signup registers a new account with a self-registrable role.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// Login verifies credentials and issues a session token. Unknown email and
	// wrong password are indistinguishable to the caller.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetMe returns the account behind an authenticated session.
	GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdatePassword changes the caller's password after verifying the old one.
	UpdatePassword(ctx context.Context, input *UpdatePasswordInput) error

	// CreateUser registers an account on behalf of an administrator; any role is allowed.
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)

	// GetUser returns one account with derived rating data for store owners.
	GetUser(ctx context.Context, userID uuid.UUID) (*UserDetail, error)

	// ListUsers returns the accounts matching the filter.
	ListUsers(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error)

	// UpdateUser modifies an account's profile fields.
	UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser removes an account.
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// DashboardTotals returns the platform-wide entity counts.
	DashboardTotals(ctx context.Context) (*DashboardTotals, error)
}
