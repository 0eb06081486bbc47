package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tripweave/hotel-search-api/internal/provider"
	"github.com/tripweave/hotel-search-api/internal/search"
	"github.com/tripweave/hotel-search-api/internal/storage"
)

const maxDestinationResults = 10

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	searcher     SearchService
	destinations DestinationRepo
	bookings     BookingRepo
	log          *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(searcher SearchService, destinations DestinationRepo, bookings BookingRepo, log *slog.Logger) *Handlers {
	return &Handlers{
		searcher:     searcher,
		destinations: destinations,
		bookings:     bookings,
		log:          log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSearchError maps pipeline errors onto the response taxonomy:
// invalid query 400, prices pending 202, upstream failure passed through
// verbatim, anything else a generic 500.
func (h *Handlers) writeSearchError(w http.ResponseWriter, err error) {
	var upstreamErr *provider.UpstreamError

	switch {
	case errors.Is(err, search.ErrInvalidQuery):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, provider.ErrPricesNotReady):
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
	case errors.As(err, &upstreamErr):
		if upstreamErr.ContentType != "" {
			w.Header().Set("Content-Type", upstreamErr.ContentType)
		}
		w.WriteHeader(upstreamErr.StatusCode)
		_, _ = w.Write(upstreamErr.Body)
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// SearchHotels handles GET /api/v1/hotels/search.
func (h *Handlers) SearchHotels(w http.ResponseWriter, r *http.Request) {
	q, err := search.ParseQuery(r.URL.Query())
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	page, err := h.searcher.Search(r.Context(), q)
	if err != nil {
		if !errors.Is(err, provider.ErrPricesNotReady) {
			h.log.Error("search failed", "destination", q.DestinationID, "err", err)
		}
		h.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// HotelRooms handles GET /api/v1/hotels/{id}/rooms.
func (h *Handlers) HotelRooms(w http.ResponseWriter, r *http.Request) {
	hotelID := chi.URLParam(r, "id")

	q, err := search.ParseStayQuery(r.URL.Query())
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	offers, err := h.searcher.RoomOffers(r.Context(), hotelID, q)
	if err != nil {
		if !errors.Is(err, provider.ErrPricesNotReady) {
			h.log.Error("room offers failed", "hotel", hotelID, "err", err)
		}
		h.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"hotel_id": hotelID,
		"rooms":    offers,
	})
}

// SearchDestinations handles GET /api/v1/destinations?q=<prefix>.
func (h *Handlers) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing q"})
		return
	}

	results, err := h.destinations.SearchDestinations(r.Context(), term, maxDestinationResults)
	if err != nil {
		h.log.Error("destination search failed", "term", term, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if results == nil {
		results = []storage.Destination{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"destinations": results})
}

// bookingRequest is the JSON body accepted by CreateBooking.
type bookingRequest struct {
	HotelID         string  `json:"hotel_id"`
	DestinationUID  string  `json:"destination_id"`
	CheckIn         string  `json:"checkin"`
	CheckOut        string  `json:"checkout"`
	Rooms           int     `json:"rooms"`
	Adults          int     `json:"adults"`
	Children        int     `json:"children"`
	GuestFirstName  string  `json:"guest_first_name"`
	GuestLastName   string  `json:"guest_last_name"`
	GuestEmail      string  `json:"guest_email"`
	SpecialRequests string  `json:"special_requests"`
	TotalPrice      float64 `json:"total_price"`
	Currency        string  `json:"currency"`
	PaymentRef      string  `json:"payment_ref"`
}

func (b *bookingRequest) validate() (storage.NewBooking, error) {
	var missing []string
	for field, val := range map[string]string{
		"hotel_id":         b.HotelID,
		"destination_id":   b.DestinationUID,
		"checkin":          b.CheckIn,
		"checkout":         b.CheckOut,
		"guest_first_name": b.GuestFirstName,
		"guest_last_name":  b.GuestLastName,
		"guest_email":      b.GuestEmail,
	} {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return storage.NewBooking{}, errors.New("missing required fields: " + strings.Join(missing, ", "))
	}

	checkin, err := time.Parse("2006-01-02", b.CheckIn)
	if err != nil {
		return storage.NewBooking{}, errors.New("checkin must be YYYY-MM-DD")
	}
	checkout, err := time.Parse("2006-01-02", b.CheckOut)
	if err != nil {
		return storage.NewBooking{}, errors.New("checkout must be YYYY-MM-DD")
	}
	if !checkout.After(checkin) {
		return storage.NewBooking{}, errors.New("checkout must be after checkin")
	}
	if b.TotalPrice <= 0 {
		return storage.NewBooking{}, errors.New("total_price must be positive")
	}

	nb := storage.NewBooking{
		HotelID:         b.HotelID,
		DestinationUID:  b.DestinationUID,
		CheckIn:         checkin,
		CheckOut:        checkout,
		Rooms:           b.Rooms,
		Adults:          b.Adults,
		Children:        b.Children,
		GuestFirstName:  b.GuestFirstName,
		GuestLastName:   b.GuestLastName,
		GuestEmail:      b.GuestEmail,
		SpecialRequests: b.SpecialRequests,
		TotalPrice:      b.TotalPrice,
		Currency:        b.Currency,
		PaymentRef:      b.PaymentRef,
	}
	if nb.Rooms < 1 {
		nb.Rooms = 1
	}
	if nb.Adults < 1 {
		nb.Adults = 1
	}
	if nb.Children < 0 {
		nb.Children = 0
	}
	if nb.Currency == "" {
		nb.Currency = "USD"
	}
	return nb, nil
}

// CreateBooking handles POST /api/v1/bookings.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	nb, err := req.validate()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), nb)
	if err != nil {
		h.log.Error("create booking failed", "hotel", nb.HotelID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to store booking"})
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// GetBooking handles GET /api/v1/bookings/{ref}.
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	booking, err := h.bookings.GetBooking(r.Context(), ref)
	if err != nil {
		h.log.Error("get booking failed", "reference", ref, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if booking == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "booking not found"})
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis connectivity.
func HealthHandlerFunc(db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
