package entity

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a registered store that users can rate.
type Store struct {
	ID        uuid.UUID  // The unique ID for this store.
	Name      string     // The store's display name.
	Email     string     // The store's contact email.
	Address   string     // The store's physical address.
	OwnerID   *uuid.UUID // The store_owner account managing this store, nil when unassigned.
	CreatedAt time.Time  // Timestamp of when this store was registered.
	UpdatedAt time.Time  // Timestamp of the last modification to this store.
}

// StoreWithRating is a read model combining a store with its derived rating data.
// AverageRating is the 1-decimal rounded mean of all ratings for the store, 0 when
// the store has none. UserRating carries the requesting user's own rating when the
// listing is scoped to a user, nil otherwise.
type StoreWithRating struct {
	Store
	AverageRating float64
	UserRating    *int
}
