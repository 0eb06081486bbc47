package search_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/hotel-search-api/internal/provider"
	"github.com/tripweave/hotel-search-api/internal/search"
)

func ptr(f float64) *float64 { return &f }

func rec(id string, stars float64, guest *float64, price *float64) search.Record {
	h := provider.Hotel{ID: id, Rating: stars}
	if guest != nil {
		h.GuestRating = &provider.GuestRating{Overall: *guest}
	}
	return search.Record{Hotel: h, Price: price}
}

func noFilter() search.Query {
	return search.Query{MaxPrice: math.Inf(1), Page: 1, PageSize: 18}
}

// ---- Filter ----

func TestFilter_PriceRange(t *testing.T) {
	records := []search.Record{
		rec("a", 3, nil, ptr(50)),
		rec("b", 3, nil, ptr(150)),
		rec("c", 3, nil, ptr(250)),
		rec("d", 3, nil, nil),
	}

	q := noFilter()
	q.MinPrice = 100
	q.MaxPrice = 200

	got := search.Filter(records, q)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestFilter_FullRangeKeepsUnpriced(t *testing.T) {
	records := []search.Record{
		rec("a", 3, nil, ptr(50)),
		rec("b", 3, nil, nil),
	}

	got := search.Filter(records, noFilter())
	assert.Len(t, got, 2)
}

func TestFilter_MaxPriceOnlyExcludesUnpriced(t *testing.T) {
	records := []search.Record{
		rec("a", 3, nil, ptr(50)),
		rec("b", 3, nil, nil),
	}

	q := noFilter()
	q.MaxPrice = 1000

	got := search.Filter(records, q)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFilter_StarAndGuestFloors(t *testing.T) {
	records := []search.Record{
		rec("a", 5, ptr(90), ptr(100)),
		rec("b", 4, ptr(70), ptr(100)),
		rec("c", 3, nil, ptr(100)),
	}

	q := noFilter()
	q.MinStars = 4
	got := search.Filter(records, q)
	assert.Len(t, got, 2)

	q = noFilter()
	q.MinGuestRating = 80
	got = search.Filter(records, q)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID, "missing guest-rating block counts as 0")
}

func TestFilter_Monotonicity(t *testing.T) {
	records := []search.Record{
		rec("a", 5, ptr(90), ptr(100)),
		rec("b", 4, ptr(70), ptr(180)),
		rec("c", 3, ptr(50), ptr(260)),
		rec("d", 2, nil, nil),
	}

	loose := noFilter()
	loose.MinStars = 2

	tight := loose
	tight.MinStars = 4
	assert.GreaterOrEqual(t,
		len(search.Filter(records, loose)),
		len(search.Filter(records, tight)),
		"tightening a bound must not grow the result")

	tight = loose
	tight.MinPrice = 150
	assert.GreaterOrEqual(t,
		len(search.Filter(records, loose)),
		len(search.Filter(records, tight)))
}

func TestFilter_PreservesOrder(t *testing.T) {
	records := []search.Record{
		rec("x", 4, nil, ptr(10)),
		rec("y", 2, nil, ptr(20)),
		rec("z", 4, nil, ptr(30)),
	}

	q := noFilter()
	q.MinStars = 3
	got := search.Filter(records, q)
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].ID)
	assert.Equal(t, "z", got[1].ID)
}

// ---- Sort ----

func TestSort_GuestRatingDescending(t *testing.T) {
	records := []search.Record{
		rec("a", 3, ptr(75), nil),
		rec("b", 3, ptr(85), nil),
		rec("c", 3, nil, nil),
	}

	search.Sort(records, "guestRating")

	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
	assert.Equal(t, "c", records[2].ID, "missing score sorts as 0")
}

func TestSort_PriceDescending(t *testing.T) {
	records := []search.Record{
		rec("a", 3, nil, ptr(100)),
		rec("b", 3, nil, nil),
		rec("c", 3, nil, ptr(300)),
	}

	search.Sort(records, "price")

	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
	assert.Equal(t, "b", records[2].ID, "unpriced hotels sort last")
}

func TestSort_DefaultByStars(t *testing.T) {
	records := []search.Record{
		rec("a", 2, nil, nil),
		rec("b", 5, nil, nil),
		rec("c", 4, nil, nil),
	}

	search.Sort(records, "")

	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "c", records[1].ID)
	assert.Equal(t, "a", records[2].ID)

	search.Sort(records, "whatever")
	assert.Equal(t, "b", records[0].ID, "unknown key falls back to star rating")
}

func TestSort_Stability(t *testing.T) {
	records := []search.Record{
		rec("first", 4, nil, ptr(100)),
		rec("second", 4, nil, ptr(100)),
		rec("third", 4, nil, ptr(100)),
	}

	search.Sort(records, "price")

	assert.Equal(t, "first", records[0].ID)
	assert.Equal(t, "second", records[1].ID)
	assert.Equal(t, "third", records[2].ID)
}

// ---- Paginate ----

func TestPaginate_SecondPage(t *testing.T) {
	records := []search.Record{rec("a", 1, nil, nil), rec("b", 1, nil, nil)}

	page := search.Paginate(records, 2, 1)

	require.Len(t, page.Hotels, 1)
	assert.Equal(t, "b", page.Hotels[0].ID)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 1, page.Limit)
	assert.False(t, page.HasMore)
}

func TestPaginate_HasMore(t *testing.T) {
	records := []search.Record{rec("a", 1, nil, nil), rec("b", 1, nil, nil), rec("c", 1, nil, nil)}

	page := search.Paginate(records, 1, 2)
	assert.Len(t, page.Hotels, 2)
	assert.True(t, page.HasMore)
}

func TestPaginate_OffsetPastEnd(t *testing.T) {
	records := []search.Record{rec("a", 1, nil, nil)}

	page := search.Paginate(records, 5, 10)
	assert.NotNil(t, page.Hotels)
	assert.Empty(t, page.Hotels)
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.HasMore)
}

func TestPaginate_ExtremePageAndSize(t *testing.T) {
	records := []search.Record{rec("a", 1, nil, nil), rec("b", 1, nil, nil)}

	page := search.Paginate(records, math.MaxInt, 18)
	assert.NotNil(t, page.Hotels)
	assert.Empty(t, page.Hotels)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasMore)

	page = search.Paginate(records, 2, math.MaxInt)
	assert.NotNil(t, page.Hotels)
	assert.Empty(t, page.Hotels)
	assert.False(t, page.HasMore)

	page = search.Paginate(records, 1, math.MaxInt)
	assert.Len(t, page.Hotels, 2)
	assert.False(t, page.HasMore)
}

func TestPaginate_CoverageNoGapsNoDuplicates(t *testing.T) {
	var records []search.Record
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, id := range ids {
		records = append(records, rec(id, 1, nil, nil))
	}

	size := 3
	var combined []string
	for page := 1; ; page++ {
		p := search.Paginate(records, page, size)
		for _, h := range p.Hotels {
			combined = append(combined, h.ID)
		}
		if !p.HasMore {
			break
		}
	}

	assert.Equal(t, ids, combined)
}
