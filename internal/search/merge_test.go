package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/hotel-search-api/internal/provider"
	"github.com/tripweave/hotel-search-api/internal/search"
)

func TestMerge_PartialQuotes(t *testing.T) {
	hotels := []provider.Hotel{{ID: "h1"}, {ID: "h2"}, {ID: "h3"}}
	quotes := provider.QuoteSet{
		Completed: true,
		Hotels: []provider.Quote{
			{ID: "h1", Price: 120},
			{ID: "h3", Price: 95.5},
		},
	}

	records := search.Merge(hotels, quotes)
	require.Len(t, records, 3)

	require.NotNil(t, records[0].Price)
	assert.Equal(t, 120.0, *records[0].Price)
	assert.Nil(t, records[1].Price, "h2 has no quote")
	require.NotNil(t, records[2].Price)
	assert.Equal(t, 95.5, *records[2].Price)
}

func TestMerge_PreservesMetadataOrder(t *testing.T) {
	hotels := []provider.Hotel{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	quotes := provider.QuoteSet{Completed: true, Hotels: []provider.Quote{
		{ID: "a", Price: 1},
		{ID: "b", Price: 2},
		{ID: "c", Price: 3},
	}}

	records := search.Merge(hotels, quotes)
	require.Len(t, records, 3)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
	assert.Equal(t, "b", records[2].ID)
}

func TestMerge_EmptyQuoteSet(t *testing.T) {
	hotels := []provider.Hotel{{ID: "h1"}, {ID: "h2"}}

	records := search.Merge(hotels, provider.QuoteSet{Completed: true})
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Nil(t, r.Price)
	}
}

func TestMerge_NoHotels(t *testing.T) {
	records := search.Merge(nil, provider.QuoteSet{Completed: true, Hotels: []provider.Quote{{ID: "x", Price: 1}}})
	assert.Empty(t, records)
	assert.NotNil(t, records)
}
