package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating score bounds. Values outside [MinRatingValue, MaxRatingValue] are rejected
// before they reach the persistence layer.
const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// Rating represents a single user's rating of a single store.
// The platform enforces at most one Rating per (UserID, StoreID) pair; the
// composite unique index in the ratings table is the authoritative guard.
type Rating struct {
	ID        uuid.UUID // The unique ID for this rating record.
	UserID    uuid.UUID // The user who submitted the rating.
	StoreID   uuid.UUID // The store the rating targets.
	Value     int       // The rating value, an integer from 1 to 5 inclusive.
	CreatedAt time.Time // Assigned at insert, immutable afterwards.
	UpdatedAt time.Time // Timestamp of the last value change.
}

// ValidValue reports whether v is an acceptable rating value.
func ValidValue(v int) bool {
	return v >= MinRatingValue && v <= MaxRatingValue
}

// RatingDetail is a read model joining a rating with the user and store it involves,
// used by the global rating views for administrators and store owners.
type RatingDetail struct {
	RatingID     uuid.UUID
	Value        int
	StoreName    string
	StoreAddress string
	UserName     string
	UserEmail    string
	CreatedAt    time.Time
}

// UserRating is a read model joining one of a user's ratings with the rated store.
type UserRating struct {
	RatingID     uuid.UUID
	StoreID      uuid.UUID
	StoreName    string
	StoreAddress string
	Value        int
	CreatedAt    time.Time
}
