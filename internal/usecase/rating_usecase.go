package usecase

import (
	"context"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"

	"github.com/google/uuid"
)

// SubmitRatingInput defines the data required to rate a store.
type SubmitRatingInput struct {
	UserID  uuid.UUID
	StoreID uuid.UUID
	Value   int
}

// StoreAverageOutput pairs a store's average with its rating count.
type StoreAverageOutput struct {
	StoreID       uuid.UUID
	StoreName     string
	AverageRating float64
	RatingCount   int64
}

// RatingUsecase defines the interface for rating ledger operations.
type RatingUsecase interface {
	// SubmitRating records a user's first rating of a store. A second submission
	// for the same store is rejected; update must be used instead.
	SubmitRating(ctx context.Context, input *SubmitRatingInput) (*entity.Rating, error)

	// UpdateRating changes the value of the caller's existing rating of a store.
	UpdateRating(ctx context.Context, input *SubmitRatingInput) error

	// ListMyRatings returns the caller's ratings joined with store info.
	ListMyRatings(ctx context.Context, userID uuid.UUID) ([]*entity.UserRating, error)

	// ListAllRatings returns every rating on the platform (administrative).
	ListAllRatings(ctx context.Context) ([]*entity.RatingDetail, error)

	// ListOwnerRatings returns the ratings submitted against the owner's stores.
	ListOwnerRatings(ctx context.Context, ownerID uuid.UUID) ([]*entity.RatingDetail, error)

	// OwnerAverages returns the rounded average for each of the owner's stores.
	OwnerAverages(ctx context.Context, ownerID uuid.UUID) ([]*StoreAverageOutput, error)

	// UpdateRatingByID changes a rating's value by ID (administrative).
	UpdateRatingByID(ctx context.Context, ratingID uuid.UUID, value int) error

	// DeleteRating removes a rating by ID (administrative).
	DeleteRating(ctx context.Context, ratingID uuid.UUID) error

	// OverallAverage returns the rounded mean across every rating on the platform.
	OverallAverage(ctx context.Context) (float64, error)

	// AveragesPerStore returns the rounded mean for every store that has ratings.
	AveragesPerStore(ctx context.Context) ([]*repository.StoreAverage, error)
}
