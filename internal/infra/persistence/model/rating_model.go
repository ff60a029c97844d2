package model

import (
	"time"

	"github.com/google/uuid"
)

// RatingModel mirrors the 'ratings' table. The composite unique index on
// (user_id, store_id) is the authoritative guard against a user rating the
// same store twice; application-level pre-checks only shortcut the error path.
type RatingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_store"`
	Value     int       `gorm:"not null;check:value >= 1 AND value <= 5"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User  *UserModel  `gorm:"foreignKey:UserID"`
	Store *StoreModel `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
