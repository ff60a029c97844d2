package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel mirrors the 'stores' table.
type StoreModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string     `gorm:"type:varchar(60);not null;index"`
	Email     string     `gorm:"type:varchar(255)"`
	Address   string     `gorm:"type:varchar(400)"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner   *UserModel    `gorm:"foreignKey:OwnerID"`
	Ratings []RatingModel `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}
