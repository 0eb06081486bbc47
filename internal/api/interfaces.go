package api

import (
	"context"

	"github.com/tripweave/hotel-search-api/internal/provider"
	"github.com/tripweave/hotel-search-api/internal/search"
	"github.com/tripweave/hotel-search-api/internal/storage"
)

// SearchService defines the search pipeline operations needed by handlers.
type SearchService interface {
	Search(ctx context.Context, q search.Query) (search.Page, error)
	RoomOffers(ctx context.Context, hotelID string, q search.Query) ([]provider.RoomOffer, error)
}

// DestinationRepo defines the destination lookups needed by handlers.
type DestinationRepo interface {
	SearchDestinations(ctx context.Context, term string, limit int) ([]storage.Destination, error)
}

// BookingRepo defines the booking persistence needed by handlers.
type BookingRepo interface {
	CreateBooking(ctx context.Context, nb storage.NewBooking) (*storage.Booking, error)
	GetBooking(ctx context.Context, reference string) (*storage.Booking, error)
}
