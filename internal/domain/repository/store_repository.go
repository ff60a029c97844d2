package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreFilter narrows and orders store listings. Empty fields are ignored.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
	OwnerID *uuid.UUID
	SortBy  string // "name" or "email"
	Desc    bool
}

// StoreRepository defines the standard operations for store persistence.
type StoreRepository interface {
	// Create persists a new store.
	Create(ctx context.Context, store *entity.Store) error

	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// Update modifies an existing store.
	Update(ctx context.Context, store *entity.Store) error

	// Delete removes a store by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListWithRatings retrieves stores matching the filter, each carrying its
	// rounded average rating. When forUser is non-nil, each row also carries
	// that user's own rating of the store if one exists.
	ListWithRatings(ctx context.Context, filter StoreFilter, forUser *uuid.UUID) ([]*entity.StoreWithRating, error)

	// Count returns the total number of stores.
	Count(ctx context.Context) (int64, error)
}
