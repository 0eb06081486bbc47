package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository provides database access for destinations and bookings.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// SearchDestinations returns destinations whose term starts with the given
// prefix, case-insensitively, for the autocomplete endpoint.
func (r *Repository) SearchDestinations(ctx context.Context, term string, limit int) ([]Destination, error) {
	if limit < 1 {
		limit = 10
	}

	const q = `
		SELECT uid, term, lat, lng, type
		FROM destinations
		WHERE term ILIKE $1 || '%'
		ORDER BY term
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, q, strings.TrimSpace(term), limit)
	if err != nil {
		return nil, fmt.Errorf("querying destinations for term %q: %w", term, err)
	}
	defer rows.Close()

	var results []Destination
	for rows.Next() {
		var d Destination
		if err := rows.Scan(&d.UID, &d.Term, &d.Lat, &d.Lng, &d.Type); err != nil {
			return nil, fmt.Errorf("scanning destination row: %w", err)
		}
		results = append(results, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating destination rows: %w", err)
	}

	return results, nil
}

// GetDestination retrieves a destination by its upstream identifier.
// Returns nil, nil when the uid is unknown.
func (r *Repository) GetDestination(ctx context.Context, uid string) (*Destination, error) {
	const q = `
		SELECT uid, term, lat, lng, type
		FROM destinations
		WHERE uid = $1
	`

	var d Destination
	err := r.q.QueryRow(ctx, q, uid).Scan(&d.UID, &d.Term, &d.Lat, &d.Lng, &d.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying destination %s: %w", uid, err)
	}

	return &d, nil
}

// CreateBooking inserts a booking with a generated reference and returns
// the stored row.
func (r *Repository) CreateBooking(ctx context.Context, nb NewBooking) (*Booking, error) {
	ref, err := newBookingReference()
	if err != nil {
		return nil, fmt.Errorf("generating booking reference: %w", err)
	}

	const q = `
		INSERT INTO bookings (
			reference, hotel_id, destination_uid, checkin, checkout,
			rooms, adults, children,
			guest_first_name, guest_last_name, guest_email, special_requests,
			total_price, currency, payment_ref
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''))
		RETURNING id, created_at, updated_at
	`

	b := Booking{
		Reference:       ref,
		HotelID:         nb.HotelID,
		DestinationUID:  nb.DestinationUID,
		CheckIn:         nb.CheckIn,
		CheckOut:        nb.CheckOut,
		Rooms:           nb.Rooms,
		Adults:          nb.Adults,
		Children:        nb.Children,
		GuestFirstName:  nb.GuestFirstName,
		GuestLastName:   nb.GuestLastName,
		GuestEmail:      nb.GuestEmail,
		SpecialRequests: nb.SpecialRequests,
		TotalPrice:      nb.TotalPrice,
		Currency:        nb.Currency,
	}
	if nb.PaymentRef != "" {
		b.PaymentRef = &nb.PaymentRef
	}

	err = r.q.QueryRow(ctx, q,
		ref, nb.HotelID, nb.DestinationUID, nb.CheckIn, nb.CheckOut,
		nb.Rooms, nb.Adults, nb.Children,
		nb.GuestFirstName, nb.GuestLastName, nb.GuestEmail, nb.SpecialRequests,
		nb.TotalPrice, nb.Currency, nb.PaymentRef,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting booking for hotel %s: %w", nb.HotelID, err)
	}

	return &b, nil
}

// GetBooking retrieves a booking by its reference.
// Returns nil, nil when the reference is unknown.
func (r *Repository) GetBooking(ctx context.Context, reference string) (*Booking, error) {
	const q = `
		SELECT id, reference, hotel_id, destination_uid, checkin, checkout,
		       rooms, adults, children,
		       guest_first_name, guest_last_name, guest_email, special_requests,
		       total_price, currency, payment_ref, created_at, updated_at
		FROM bookings
		WHERE reference = $1
	`

	var b Booking
	var specialRequests *string
	err := r.q.QueryRow(ctx, q, reference).Scan(
		&b.ID,
		&b.Reference,
		&b.HotelID,
		&b.DestinationUID,
		&b.CheckIn,
		&b.CheckOut,
		&b.Rooms,
		&b.Adults,
		&b.Children,
		&b.GuestFirstName,
		&b.GuestLastName,
		&b.GuestEmail,
		&specialRequests,
		&b.TotalPrice,
		&b.Currency,
		&b.PaymentRef,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying booking %s: %w", reference, err)
	}

	if specialRequests != nil {
		b.SpecialRequests = *specialRequests
	}
	return &b, nil
}

// newBookingReference generates a short, human-readable booking reference.
func newBookingReference() (string, error) {
	var raw [5]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return "BK-" + strings.ToUpper(hex.EncodeToString(raw[:])), nil
}
