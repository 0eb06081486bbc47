package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the chi router with all routes configured.
// Health and metrics are unauthenticated; search, rooms, and destination
// lookups are public; booking routes require bearer auth. Rate limiting is
// applied globally: 60 requests per minute per IP.
func NewRouter(handlers *Handlers, token string, db dbPinger, redisClient redisPinger, metricsHandler http.Handler, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(db, redisClient, log))
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Get("/api/v1/hotels/search", handlers.SearchHotels)
	r.Get("/api/v1/hotels/{id}/rooms", handlers.HotelRooms)
	r.Get("/api/v1/destinations", handlers.SearchDestinations)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(token))
		r.Post("/api/v1/bookings", handlers.CreateBooking)
		r.Get("/api/v1/bookings/{ref}", handlers.GetBooking)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
