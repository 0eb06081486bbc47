package search

import (
	"math"
	"sort"
)

// Page is one slice of the filtered and sorted result set, plus the
// pagination metadata the client needs to fetch the rest.
type Page struct {
	Hotels  []Record `json:"hotels"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	HasMore bool     `json:"hasMore"`
}

// Filter keeps the records matching the query's bounds. Filters compose
// by AND and never reorder surviving records. Once either price bound is
// narrower than the full range, hotels without a numeric price drop out.
func Filter(records []Record, q Query) []Record {
	priceFiltered := q.MinPrice > 0 || !math.IsInf(q.MaxPrice, 1)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Rating < q.MinStars {
			continue
		}
		if guestScore(r) < q.MinGuestRating {
			continue
		}
		if priceFiltered {
			if r.Price == nil || *r.Price < q.MinPrice || *r.Price > q.MaxPrice {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Sort orders records in place per the sort key. All orders are
// descending; the sort is stable so equal values keep upstream order.
//   - "price": by price, hotels without a price last
//   - "guestRating": by overall guest score, missing block counts as 0
//   - anything else: by star rating
func Sort(records []Record, key string) {
	switch key {
	case "price":
		sort.SliceStable(records, func(i, j int) bool {
			return priceValue(records[i]) > priceValue(records[j])
		})
	case "guestRating":
		sort.SliceStable(records, func(i, j int) bool {
			return guestScore(records[i]) > guestScore(records[j])
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Rating > records[j].Rating
		})
	}
}

// Paginate slices one page out of the filtered, sorted set. page and size
// are assumed already coerced to >= 1 by ParseQuery. Extreme values whose
// offset arithmetic overflows are treated as a page past the end.
func Paginate(records []Record, page, size int) Page {
	offset := (page - 1) * size

	items := []Record{}
	hasMore := false
	if offset >= 0 && offset < len(records) {
		end := offset + size
		if end < 0 || end > len(records) {
			end = len(records)
		}
		items = records[offset:end]
		hasMore = end < len(records)
	}

	return Page{
		Hotels:  items,
		Total:   len(records),
		Page:    page,
		Limit:   size,
		HasMore: hasMore,
	}
}

func guestScore(r Record) float64 {
	if r.GuestRating == nil {
		return 0
	}
	return r.GuestRating.Overall
}

func priceValue(r Record) float64 {
	if r.Price == nil {
		return math.Inf(-1)
	}
	return *r.Price
}
