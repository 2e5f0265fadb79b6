package model

type ListingQueryParams struct {
	Page          int    `query:"page" validate:"omitempty,min=1"`
	Limit         int    `query:"limit" validate:"omitempty,min=1,max=100"`
	UserID        string `query:"userId"`
	Category      string `query:"category"`
	Country       string `query:"country"`
	GuestCount    int    `query:"guestCount" validate:"omitempty,min=0"`
	RoomCount     int    `query:"roomCount" validate:"omitempty,min=0"`
	BathroomCount int    `query:"bathroomCount" validate:"omitempty,min=0"`
	StartDate     string `query:"startDate"`
	EndDate       string `query:"endDate"`
}

type ReservationQueryParams struct {
	ListingID string `query:"listingId"`
	UserID    string `query:"userId"`
	AuthorID  string `query:"authorId"`
}

type SearchQueryParams struct {
	Country    string `query:"country"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	GuestCount int    `query:"guestCount"`
}
