package search

import "github.com/tripweave/hotel-search-api/internal/provider"

// Record is a hotel metadata record with its merged price quote.
// Price is nil when the completed quote set had no entry for the hotel.
type Record struct {
	provider.Hotel
	Price *float64 `json:"price"`
}

// Merge attaches prices to the metadata list by hotel identifier.
// Output order matches the metadata input; every hotel appears exactly
// once. An empty quote set yields all-nil prices, which is valid.
func Merge(hotels []provider.Hotel, quotes provider.QuoteSet) []Record {
	prices := make(map[string]float64, len(quotes.Hotels))
	for _, quote := range quotes.Hotels {
		prices[quote.ID] = quote.Price
	}

	records := make([]Record, 0, len(hotels))
	for _, h := range hotels {
		rec := Record{Hotel: h}
		if p, ok := prices[h.ID]; ok {
			price := p
			rec.Price = &price
		}
		records = append(records, rec)
	}
	return records
}
