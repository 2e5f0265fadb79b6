package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Trip is a reservation joined with the listing it books.
type Trip struct {
	ReservationID string    `db:"reservation_id"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	TotalPrice    int       `db:"total_price"`
	ListingID     string    `db:"listing_id"`
	Title         string    `db:"title"`
	ImageSrc      string    `db:"image_src"`
	Category      string    `db:"category"`
	Country       string    `db:"country"`
	Region        string    `db:"region"`
}

type TripStore interface {
	TripsByGuest(ctx context.Context, userID string) ([]Trip, error)
	TripsByHost(ctx context.Context, hostID string) ([]Trip, error)
}

type TripStoreImpl struct {
	db *sqlx.DB
}

func NewTripStore(db *sqlx.DB) *TripStoreImpl {
	return &TripStoreImpl{db: db}
}

const tripColumns = `
	SELECT
		r.id AS reservation_id,
		r.start_date,
		r.end_date,
		r.total_price,
		l.id AS listing_id,
		l.title,
		l.image_src,
		l.category,
		l.country,
		l.region
	FROM reservations r
	JOIN listings l ON l.id = r.listing_id
`

// TripsByGuest lists the stays a user booked, soonest first.
func (s *TripStoreImpl) TripsByGuest(ctx context.Context, userID string) ([]Trip, error) {
	query := s.db.Rebind(tripColumns + `
	WHERE r.user_id = ?
	ORDER BY r.start_date ASC
	`)

	trips := []Trip{}
	if err := s.db.SelectContext(ctx, &trips, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query trips for guest %s: %w", userID, err)
	}
	return trips, nil
}

// TripsByHost lists reservations made on a host's listings.
func (s *TripStoreImpl) TripsByHost(ctx context.Context, hostID string) ([]Trip, error) {
	query := s.db.Rebind(tripColumns + `
	WHERE l.user_id = ?
	ORDER BY r.start_date ASC
	`)

	trips := []Trip{}
	if err := s.db.SelectContext(ctx, &trips, query, hostID); err != nil {
		return nil, fmt.Errorf("failed to query reservations for host %s: %w", hostID, err)
	}
	return trips, nil
}
