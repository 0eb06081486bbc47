package storage

import "time"

// Destination is a searchable destination row used for autocomplete and
// for resolving the upstream destination identifier.
type Destination struct {
	UID  string  `json:"uid"`
	Term string  `json:"term"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type"`
}

// NewBooking is the caller-supplied portion of a booking.
type NewBooking struct {
	HotelID         string
	DestinationUID  string
	CheckIn         time.Time
	CheckOut        time.Time
	Rooms           int
	Adults          int
	Children        int
	GuestFirstName  string
	GuestLastName   string
	GuestEmail      string
	SpecialRequests string
	TotalPrice      float64
	Currency        string
	PaymentRef      string
}

// Booking is a stored booking row. PaymentRef is an opaque reference into
// the external payment processor; nothing else about payment lives here.
type Booking struct {
	ID              int64     `json:"-"`
	Reference       string    `json:"reference"`
	HotelID         string    `json:"hotel_id"`
	DestinationUID  string    `json:"destination_uid"`
	CheckIn         time.Time `json:"checkin"`
	CheckOut        time.Time `json:"checkout"`
	Rooms           int       `json:"rooms"`
	Adults          int       `json:"adults"`
	Children        int       `json:"children"`
	GuestFirstName  string    `json:"guest_first_name"`
	GuestLastName   string    `json:"guest_last_name"`
	GuestEmail      string    `json:"guest_email"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	TotalPrice      float64   `json:"total_price"`
	Currency        string    `json:"currency"`
	PaymentRef      *string   `json:"payment_ref,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
