package search

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tripweave/hotel-search-api/internal/provider"
)

const (
	defaultRooms    = 1
	defaultAdults   = 2
	defaultPage     = 1
	defaultPageSize = 18
)

// ErrInvalidQuery marks client errors: a required search parameter is
// missing or unusable. No upstream or cache call happens for these.
var ErrInvalidQuery = errors.New("invalid search query")

// Query is the validated, typed search request. All numeric view
// parameters have already been coerced to usable defaults.
type Query struct {
	DestinationID string
	CheckIn       string
	CheckOut      string
	Rooms         int
	Adults        int
	Children      int

	MinStars       float64
	MinGuestRating float64
	MinPrice       float64
	MaxPrice       float64
	SortBy         string
	Page           int
	PageSize       int
}

// ParseQuery builds a Query from raw URL parameters. destination_id,
// checkin, and checkout are required; everything else falls back to a
// default when absent or non-numeric.
func ParseQuery(vals url.Values) (Query, error) {
	q, err := parseStay(vals)
	if err != nil {
		return Query{}, err
	}
	if q.DestinationID == "" {
		return Query{}, fmt.Errorf("%w: missing destination_id", ErrInvalidQuery)
	}
	return q, nil
}

// ParseStayQuery builds a Query for the room-offers lookup, where the
// destination is optional (the hotel identifier comes from the path).
func ParseStayQuery(vals url.Values) (Query, error) {
	return parseStay(vals)
}

func parseStay(vals url.Values) (Query, error) {
	checkin := strings.TrimSpace(vals.Get("checkin"))
	checkout := strings.TrimSpace(vals.Get("checkout"))

	if checkin == "" {
		return Query{}, fmt.Errorf("%w: missing checkin", ErrInvalidQuery)
	}
	if checkout == "" {
		return Query{}, fmt.Errorf("%w: missing checkout", ErrInvalidQuery)
	}
	if _, err := time.Parse("2006-01-02", checkin); err != nil {
		return Query{}, fmt.Errorf("%w: checkin must be YYYY-MM-DD", ErrInvalidQuery)
	}
	if _, err := time.Parse("2006-01-02", checkout); err != nil {
		return Query{}, fmt.Errorf("%w: checkout must be YYYY-MM-DD", ErrInvalidQuery)
	}

	q := Query{
		DestinationID:  strings.TrimSpace(vals.Get("destination_id")),
		CheckIn:        checkin,
		CheckOut:       checkout,
		Rooms:          intOrDefault(vals.Get("rooms"), defaultRooms),
		Adults:         intOrDefault(vals.Get("adults"), defaultAdults),
		Children:       intOrDefault(vals.Get("children"), 0),
		MinStars:       floatOrDefault(vals.Get("min_stars"), 0),
		MinGuestRating: floatOrDefault(vals.Get("min_guest_rating"), 0),
		MinPrice:       floatOrDefault(vals.Get("min_price"), 0),
		MaxPrice:       floatOrDefault(vals.Get("max_price"), math.Inf(1)),
		SortBy:         vals.Get("sort_by"),
		Page:           intOrDefault(vals.Get("page"), defaultPage),
		PageSize:       intOrDefault(vals.Get("limit"), defaultPageSize),
	}

	if q.Rooms < 1 {
		q.Rooms = defaultRooms
	}
	if q.Adults < 1 {
		q.Adults = defaultAdults
	}
	if q.Children < 0 {
		q.Children = 0
	}
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}

	return q, nil
}

// Key derives the cache identity from the parameters that affect the raw
// result set. Filter, sort, and pagination parameters never enter the key.
func (q Query) Key() string {
	return fmt.Sprintf("%s|%s|%s|%d|%d|%d",
		q.DestinationID, q.CheckIn, q.CheckOut, q.Rooms, q.Adults, q.Children)
}

// PriceQuery converts the search query into upstream stay parameters.
func (q Query) PriceQuery() provider.PriceQuery {
	return provider.PriceQuery{
		DestinationID: q.DestinationID,
		CheckIn:       q.CheckIn,
		CheckOut:      q.CheckOut,
		Rooms:         q.Rooms,
		Adults:        q.Adults,
		Children:      q.Children,
	}
}

func intOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func floatOrDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
