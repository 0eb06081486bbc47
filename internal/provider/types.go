package provider

import (
	"strconv"
	"strings"
)

// Hotel is the upstream hotel metadata record.
type Hotel struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Rating      float64      `json:"rating"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	Address     string       `json:"address,omitempty"`
	Description string       `json:"description,omitempty"`
	GuestRating *GuestRating `json:"guest_rating,omitempty"`
	Images      *ImageInfo   `json:"images,omitempty"`
}

// GuestRating holds aggregated review scores on a 0-100 scale.
// Hotels without enough reviews have no block at all.
type GuestRating struct {
	Overall     float64 `json:"overall"`
	Cleanliness float64 `json:"cleanliness,omitempty"`
	Service     float64 `json:"service,omitempty"`
	Location    float64 `json:"location,omitempty"`
}

// ImageInfo describes how to build image URLs for a hotel.
type ImageInfo struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
	Count  int    `json:"count"`
}

// Quote is a single hotel price from the upstream price endpoint.
type Quote struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// QuoteSet is the upstream's asynchronous pricing result. While Completed
// is false the set is an interim snapshot and must not be treated as final.
type QuoteSet struct {
	Completed bool    `json:"completed"`
	Hotels    []Quote `json:"hotels"`
}

// RoomOffer is a bookable room rate for a single hotel.
type RoomOffer struct {
	Key              string  `json:"key"`
	RoomType         string  `json:"room_type"`
	Description      string  `json:"description,omitempty"`
	Price            float64 `json:"price"`
	FreeCancellation bool    `json:"free_cancellation"`
	Breakfast        bool    `json:"breakfast"`
}

// RoomOfferSet mirrors QuoteSet for the per-hotel room price endpoint.
type RoomOfferSet struct {
	Completed bool        `json:"completed"`
	Rooms     []RoomOffer `json:"rooms"`
}

// PriceQuery carries the stay parameters sent to the upstream price endpoints.
type PriceQuery struct {
	DestinationID string
	CheckIn       string
	CheckOut      string
	Rooms         int
	Adults        int
	Children      int
}

// GuestsParam encodes occupancy as per-room guest counts joined by "|",
// e.g. 2 rooms with 4 guests total becomes "2|2". Guests are split evenly
// across rooms with the remainder assigned to the first rooms.
func (q PriceQuery) GuestsParam() string {
	rooms := q.Rooms
	if rooms < 1 {
		rooms = 1
	}
	total := q.Adults + q.Children
	if total < 1 {
		total = 1
	}

	perRoom := total / rooms
	remainder := total % rooms

	parts := make([]string, rooms)
	for i := range parts {
		n := perRoom
		if i < remainder {
			n++
		}
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "|")
}
