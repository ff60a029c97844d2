package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for rating persistence.
var (
	// ErrRatingNotFound is returned when no rating exists for the requested key.
	ErrRatingNotFound = errors.New("rating not found")
	// ErrDuplicateRating is returned when the (user, store) uniqueness constraint
	// is violated. The constraint is the authoritative guard against the
	// check-then-insert race; the second concurrent writer receives this error.
	ErrDuplicateRating = errors.New("rating already exists for this user and store")
)

// StoreAverage pairs a store with the rounded mean of its ratings.
type StoreAverage struct {
	StoreID   uuid.UUID
	StoreName string
	Average   float64
}

// RatingRepository defines the standard operations for rating persistence and
// aggregate computation. Averages are rounded to one decimal, half up.
type RatingRepository interface {
	// Create inserts a new rating. A unique-constraint violation on
	// (user_id, store_id) surfaces as ErrDuplicateRating.
	Create(ctx context.Context, rating *entity.Rating) error

	// FindByUserAndStore retrieves the rating a user gave a store, if any.
	FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error)

	// UpdateValue changes the value of the existing rating for the exact
	// (user, store) pair. Returns ErrRatingNotFound when no such rating exists;
	// it never creates one.
	UpdateValue(ctx context.Context, userID, storeID uuid.UUID, value int) error

	// UpdateValueByID changes a rating's value by rating ID (administrative).
	UpdateValueByID(ctx context.Context, id uuid.UUID, value int) error

	// Delete removes a rating by ID (administrative).
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser retrieves all of a user's ratings joined with store info.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserRating, error)

	// ListAll retrieves every rating joined with user and store info, newest first.
	ListAll(ctx context.Context) ([]*entity.RatingDetail, error)

	// ListByStore retrieves a store's ratings joined with user info, newest first.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.RatingDetail, error)

	// AverageByStore returns the rounded mean of a store's ratings and how many
	// ratings it has. A store with zero ratings yields (0, 0, nil).
	AverageByStore(ctx context.Context, storeID uuid.UUID) (avg float64, count int64, err error)

	// AverageOverall returns the rounded mean across all ratings, 0 when none exist.
	AverageOverall(ctx context.Context) (float64, error)

	// AveragesPerStore returns the rounded mean for every store that has ratings.
	AveragesPerStore(ctx context.Context) ([]*StoreAverage, error)

	// Count returns the total number of ratings.
	Count(ctx context.Context) (int64, error)
}
