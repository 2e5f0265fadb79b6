package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"staybook/booking"
)

// Dates are stored as UTC midnight; the interval is closed
// Receipt is the signed record of the booked terms
type Reservation struct {
	ID               string         `json:"id" gorm:"type:uuid;primarykey"`
	UserID           string         `json:"user_id" gorm:"type:uuid;index"`
	User             *User          `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ListingID        string         `json:"listing_id" gorm:"type:uuid;index"`
	Listing          *Listing       `json:"listing,omitempty"`
	StartDate        time.Time      `json:"start_date"`
	EndDate          time.Time      `json:"end_date"`
	TotalPrice       int            `json:"total_price"`
	Receipt          datatypes.JSON `json:"receipt,omitempty"`
	ReceiptSignature string         `json:"receipt_signature,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

type PublicReservation struct {
	ID         string         `json:"id"`
	ListingID  string         `json:"listing_id"`
	Listing    *PublicListing `json:"listing,omitempty"`
	StartDate  time.Time      `json:"start_date"`
	EndDate    time.Time      `json:"end_date"`
	TotalPrice int            `json:"total_price"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (base *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID != "" {
		return
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}

func (r Reservation) Span() booking.Span {
	return booking.Span{Start: r.StartDate, End: r.EndDate}
}

func (r Reservation) ToPublicFormat() any {
	pr := PublicReservation{
		ID:         r.ID,
		ListingID:  r.ListingID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		TotalPrice: r.TotalPrice,
		CreatedAt:  r.CreatedAt,
	}

	if r.Listing != nil {
		pl := r.Listing.ToPublicFormat().(PublicListing)
		pr.Listing = &pl
	}

	return pr
}

// Request body sent by the listing page. TotalPrice is what the guest was
// shown; zero lets the server price the stay.
type SubmitReservation struct {
	TotalPrice int       `json:"totalPrice" validate:"min=0"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	ListingID  string    `json:"listing" validate:"required,uuid"`
}

// Terms recorded and signed at booking time
type ReservationReceipt struct {
	ReservationID string    `json:"reservation_id"`
	ListingID     string    `json:"listing_id"`
	GuestID       string    `json:"guest_id"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Nights        int       `json:"nights"`
	NightlyPrice  int       `json:"nightly_price"`
	TotalPrice    int       `json:"total_price"`
	Issuer        string    `json:"issuer"`
	IssuedAt      time.Time `json:"issued_at"`
}

func (r PublicReservation) Span() booking.Span {
	return booking.Span{Start: r.StartDate, End: r.EndDate}
}
