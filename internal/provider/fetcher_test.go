package provider_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/hotel-search-api/internal/obs"
	"github.com/tripweave/hotel-search-api/internal/provider"
)

// ---- fake upstream clients ----

type fakeHotelLister struct {
	calls  atomic.Int32
	hotels []provider.Hotel
	err    error
}

func (f *fakeHotelLister) FetchHotels(_ context.Context, _ string) ([]provider.Hotel, error) {
	f.calls.Add(1)
	return f.hotels, f.err
}

type fakePriceQuoter struct {
	calls     atomic.Int32
	responses []provider.QuoteSet
	err       error

	roomCalls     atomic.Int32
	roomResponses []provider.RoomOfferSet
	roomErr       error
}

func (f *fakePriceQuoter) FetchPrices(_ context.Context, _ provider.PriceQuery) (provider.QuoteSet, error) {
	n := int(f.calls.Add(1)) - 1
	if f.err != nil {
		return provider.QuoteSet{}, f.err
	}
	if n >= len(f.responses) {
		n = len(f.responses) - 1
	}
	return f.responses[n], nil
}

func (f *fakePriceQuoter) FetchRoomOffers(_ context.Context, _ string, _ provider.PriceQuery) (provider.RoomOfferSet, error) {
	n := int(f.roomCalls.Add(1)) - 1
	if f.roomErr != nil {
		return provider.RoomOfferSet{}, f.roomErr
	}
	if n >= len(f.roomResponses) {
		n = len(f.roomResponses) - 1
	}
	return f.roomResponses[n], nil
}

// ---- helpers ----

func noSleep(_ context.Context, _ time.Duration) error { return nil }

func testMetrics(t *testing.T) *obs.Metrics {
	t.Helper()
	return obs.NewMetrics(prometheus.NewRegistry())
}

func completed(quotes ...provider.Quote) provider.QuoteSet {
	return provider.QuoteSet{Completed: true, Hotels: quotes}
}

func pending() provider.QuoteSet {
	return provider.QuoteSet{Completed: false}
}

func buildFetcher(t *testing.T, hotels *fakeHotelLister, prices *fakePriceQuoter, retries int) *provider.Fetcher {
	t.Helper()
	poll := provider.NewPollPolicy(retries, 300*time.Millisecond).WithSleep(noSleep)
	return provider.NewFetcherWithClients(hotels, prices, poll, testMetrics(t))
}

// ---- Fetch ----

func TestFetch_CompletedFirstTry(t *testing.T) {
	hotels := &fakeHotelLister{hotels: []provider.Hotel{{ID: "h1"}, {ID: "h2"}}}
	prices := &fakePriceQuoter{responses: []provider.QuoteSet{completed(provider.Quote{ID: "h1", Price: 100})}}

	f := buildFetcher(t, hotels, prices, 2)
	gotHotels, quotes, err := f.Fetch(context.Background(), provider.PriceQuery{DestinationID: "RsBU"})
	require.NoError(t, err)

	assert.Len(t, gotHotels, 2)
	assert.True(t, quotes.Completed)
	assert.Equal(t, int32(1), hotels.calls.Load())
	assert.Equal(t, int32(1), prices.calls.Load())
}

func TestFetch_CompletesWithinRetryBound(t *testing.T) {
	hotels := &fakeHotelLister{hotels: []provider.Hotel{{ID: "h1"}}}
	prices := &fakePriceQuoter{responses: []provider.QuoteSet{
		pending(),
		pending(),
		completed(provider.Quote{ID: "h1", Price: 80}),
	}}

	f := buildFetcher(t, hotels, prices, 2)
	_, quotes, err := f.Fetch(context.Background(), provider.PriceQuery{DestinationID: "RsBU"})
	require.NoError(t, err)

	assert.True(t, quotes.Completed)
	assert.Equal(t, int32(3), prices.calls.Load(), "initial call plus two retries")
}

func TestFetch_NotReadyAfterExhaustingRetries(t *testing.T) {
	hotels := &fakeHotelLister{hotels: []provider.Hotel{{ID: "h1"}}}
	prices := &fakePriceQuoter{responses: []provider.QuoteSet{pending()}}

	f := buildFetcher(t, hotels, prices, 2)
	_, _, err := f.Fetch(context.Background(), provider.PriceQuery{DestinationID: "RsBU"})

	require.ErrorIs(t, err, provider.ErrPricesNotReady)
	assert.Equal(t, int32(3), prices.calls.Load(), "total attempts = 1 + retry bound")
}

func TestFetch_ZeroRetryBound(t *testing.T) {
	hotels := &fakeHotelLister{hotels: []provider.Hotel{{ID: "h1"}}}
	prices := &fakePriceQuoter{responses: []provider.QuoteSet{pending()}}

	f := buildFetcher(t, hotels, prices, 0)
	_, _, err := f.Fetch(context.Background(), provider.PriceQuery{DestinationID: "RsBU"})

	require.ErrorIs(t, err, provider.ErrPricesNotReady)
	assert.Equal(t, int32(1), prices.calls.Load())
}

func TestFetch_MetadataErrorPropagates(t *testing.T) {
	upstreamErr := &provider.UpstreamError{StatusCode: 503, Body: []byte(`{"error":"maintenance"}`)}
	hotels := &fakeHotelLister{err: upstreamErr}
	prices := &fakePriceQuoter{responses: []provider.QuoteSet{completed()}}

	f := buildFetcher(t, hotels, prices, 2)
	_, _, err := f.Fetch(context.Background(), provider.PriceQuery{DestinationID: "RsBU"})

	var got *provider.UpstreamError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 503, got.StatusCode)
}

func TestFetch_PriceHTTPErrorNotRetried(t *testing.T) {
	hotels := &fakeHotelLister{hotels: []provider.Hotel{{ID: "h1"}}}
	prices := &fakePriceQuoter{err: &provider.UpstreamError{StatusCode: 500, Body: []byte("boom")}}

	f := buildFetcher(t, hotels, prices, 2)
	_, _, err := f.Fetch(context.Background(), provider.PriceQuery{DestinationID: "RsBU"})

	var got *provider.UpstreamError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, int32(1), prices.calls.Load(), "HTTP failures are not retried by the poll")
}

// ---- FetchRooms ----

func TestFetchRooms_PollsUntilCompleted(t *testing.T) {
	prices := &fakePriceQuoter{roomResponses: []provider.RoomOfferSet{
		{Completed: false},
		{Completed: true, Rooms: []provider.RoomOffer{{Key: "std-1", Price: 90}}},
	}}

	f := buildFetcher(t, &fakeHotelLister{}, prices, 2)
	offers, err := f.FetchRooms(context.Background(), "h1", provider.PriceQuery{})
	require.NoError(t, err)

	require.Len(t, offers, 1)
	assert.Equal(t, "std-1", offers[0].Key)
	assert.Equal(t, int32(2), prices.roomCalls.Load())
}

func TestFetchRooms_NotReady(t *testing.T) {
	prices := &fakePriceQuoter{roomResponses: []provider.RoomOfferSet{{Completed: false}}}

	f := buildFetcher(t, &fakeHotelLister{}, prices, 2)
	_, err := f.FetchRooms(context.Background(), "h1", provider.PriceQuery{})

	require.ErrorIs(t, err, provider.ErrPricesNotReady)
	assert.Equal(t, int32(3), prices.roomCalls.Load())
}

func TestFetch_SleepErrorAborts(t *testing.T) {
	hotels := &fakeHotelLister{hotels: []provider.Hotel{{ID: "h1"}}}
	prices := &fakePriceQuoter{responses: []provider.QuoteSet{pending()}}

	poll := provider.NewPollPolicy(2, time.Millisecond).
		WithSleep(func(_ context.Context, _ time.Duration) error { return errors.New("canceled") })
	f := provider.NewFetcherWithClients(hotels, prices, poll, testMetrics(t))

	_, _, err := f.Fetch(context.Background(), provider.PriceQuery{DestinationID: "RsBU"})
	require.Error(t, err)
	assert.Equal(t, int32(1), prices.calls.Load())
}
