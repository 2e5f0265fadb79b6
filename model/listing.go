package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Primary listing struct for DB interactions
// Country is the ISO alpha-2 code; Region is free text
// Price is per night, in whole currency units
type Listing struct {
	ID            string        `json:"id" gorm:"type:uuid;primarykey"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	ImageSrc      string        `json:"image_src"`
	Category      string        `json:"category" gorm:"index"`
	RoomCount     int           `json:"room_count"`
	BathroomCount int           `json:"bathroom_count"`
	GuestCount    int           `json:"guest_count"`
	Country       string        `json:"country" gorm:"index"`
	Region        string        `json:"region"`
	Latlng        []float64     `json:"latlng" gorm:"serializer:json"`
	Price         int           `json:"price"`
	UserID        string        `json:"-" gorm:"type:uuid;index"`
	User          *User         `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Reservations  []Reservation `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Listing to be returned to client
type PublicListing struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ImageSrc      string     `json:"image_src"`
	Category      string     `json:"category"`
	RoomCount     int        `json:"room_count"`
	BathroomCount int        `json:"bathroom_count"`
	GuestCount    int        `json:"guest_count"`
	Country       string     `json:"country"`
	CountryName   string     `json:"country_name"`
	Region        string     `json:"region"`
	Latlng        []float64  `json:"latlng"`
	Price         int        `json:"price"`
	User          PublicUser `json:"user,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (base *Listing) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}

// ImageFileID, when set, points at an uploaded file and replaces ImageSrc
type SubmitListing struct {
	Title         string    `json:"title" validate:"required"`
	Description   string    `json:"description" validate:"required"`
	ImageSrc      string    `json:"image_src" validate:"required_without=ImageFileID"`
	ImageFileID   string    `json:"image_file_id" validate:"omitempty,uuid"`
	Category      string    `json:"category" validate:"required"`
	RoomCount     int       `json:"room_count" validate:"min=1"`
	BathroomCount int       `json:"bathroom_count" validate:"min=1"`
	GuestCount    int       `json:"guest_count" validate:"min=1"`
	Country       string    `json:"country" validate:"required"`
	Region        string    `json:"region"`
	Latlng        []float64 `json:"latlng" validate:"omitempty,len=2"`
	Price         int       `json:"price" validate:"min=1"`
}

func (l Listing) ToPublicFormat() any {
	pl := PublicListing{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		ImageSrc:      l.ImageSrc,
		Category:      l.Category,
		RoomCount:     l.RoomCount,
		BathroomCount: l.BathroomCount,
		GuestCount:    l.GuestCount,
		Country:       l.Country,
		CountryName:   CountryName(l.Country),
		Region:        l.Region,
		Latlng:        l.Latlng,
		Price:         l.Price,
		CreatedAt:     l.CreatedAt,
	}

	if l.User != nil {
		pl.User = l.User.ToPublicFormat().(PublicUser)
	}

	return pl
}

// Location renders "Region, Country" as shown on listing cards.
func (l Listing) Location() string {
	country := CountryName(l.Country)
	if country == "" {
		country = l.Country
	}
	if l.Region == "" {
		return country
	}
	return l.Region + ", " + country
}
