package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One row per user and listing
type Favorite struct {
	ID        string   `json:"id" gorm:"type:uuid;primarykey"`
	UserID    string   `json:"-" gorm:"type:uuid;uniqueIndex:idx_favorite_user_listing"`
	User      *User    `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ListingID string   `json:"listing_id" gorm:"type:uuid;uniqueIndex:idx_favorite_user_listing"`
	Listing   *Listing `json:"listing,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}

func (base *Favorite) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}
