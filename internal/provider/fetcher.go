package provider

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tripweave/hotel-search-api/internal/obs"
)

// hotelLister is the interface satisfied by Client for metadata calls.
type hotelLister interface {
	FetchHotels(ctx context.Context, destinationID string) ([]Hotel, error)
}

// priceQuoter is the interface satisfied by Client for price calls.
type priceQuoter interface {
	FetchPrices(ctx context.Context, q PriceQuery) (QuoteSet, error)
	FetchRoomOffers(ctx context.Context, hotelID string, q PriceQuery) (RoomOfferSet, error)
}

// Fetcher obtains hotel metadata and a completed price quote set for a
// search. Metadata and prices are requested concurrently; the price call
// is re-polled within the PollPolicy bound until the upstream reports the
// quote set completed.
type Fetcher struct {
	hotels  hotelLister
	prices  priceQuoter
	poll    PollPolicy
	metrics *obs.Metrics
}

// NewFetcher constructs a Fetcher backed by a single upstream client.
func NewFetcher(client *Client, poll PollPolicy, m *obs.Metrics) *Fetcher {
	return &Fetcher{hotels: client, prices: client, poll: poll, metrics: m}
}

// NewFetcherWithClients constructs a Fetcher with injectable clients (used in tests).
func NewFetcherWithClients(h hotelLister, p priceQuoter, poll PollPolicy, m *obs.Metrics) *Fetcher {
	return &Fetcher{hotels: h, prices: p, poll: poll, metrics: m}
}

// Fetch returns the metadata list and a completed quote set for the query.
// Upstream HTTP or transport failures on either call propagate as-is; an
// incomplete quote set after the poll bound returns ErrPricesNotReady.
func (f *Fetcher) Fetch(ctx context.Context, q PriceQuery) ([]Hotel, QuoteSet, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var hotels []Hotel
	var quotes QuoteSet

	g.Go(func() error {
		start := time.Now()
		hs, err := f.hotels.FetchHotels(gCtx, q.DestinationID)
		f.metrics.ObserveUpstreamLatency("hotels", time.Since(start).Seconds())
		if err != nil {
			return err
		}
		hotels = hs
		return nil
	})

	g.Go(func() error {
		qs, err := f.pollPrices(gCtx, q)
		if err != nil {
			return err
		}
		quotes = qs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, QuoteSet{}, err
	}

	if !quotes.Completed {
		f.metrics.IncPricesNotReady()
		return nil, QuoteSet{}, ErrPricesNotReady
	}

	return hotels, quotes, nil
}

// pollPrices issues the initial price call and retries on Completed=false
// only. HTTP and transport errors are never retried here.
func (f *Fetcher) pollPrices(ctx context.Context, q PriceQuery) (QuoteSet, error) {
	start := time.Now()
	quotes, err := f.prices.FetchPrices(ctx, q)
	f.metrics.ObserveUpstreamLatency("prices", time.Since(start).Seconds())
	if err != nil {
		return QuoteSet{}, err
	}

	for attempt := 0; !quotes.Completed && attempt < f.poll.MaxRetries; attempt++ {
		if err := f.poll.Wait(ctx); err != nil {
			return QuoteSet{}, err
		}

		f.metrics.IncPriceRetries()
		start = time.Now()
		quotes, err = f.prices.FetchPrices(ctx, q)
		f.metrics.ObserveUpstreamLatency("prices", time.Since(start).Seconds())
		if err != nil {
			return QuoteSet{}, err
		}
	}

	return quotes, nil
}

// FetchRooms returns completed room offers for a single hotel, applying the
// same completion poll as Fetch.
func (f *Fetcher) FetchRooms(ctx context.Context, hotelID string, q PriceQuery) ([]RoomOffer, error) {
	start := time.Now()
	offers, err := f.prices.FetchRoomOffers(ctx, hotelID, q)
	f.metrics.ObserveUpstreamLatency("rooms", time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	for attempt := 0; !offers.Completed && attempt < f.poll.MaxRetries; attempt++ {
		if err := f.poll.Wait(ctx); err != nil {
			return nil, err
		}

		f.metrics.IncPriceRetries()
		start = time.Now()
		offers, err = f.prices.FetchRoomOffers(ctx, hotelID, q)
		f.metrics.ObserveUpstreamLatency("rooms", time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}
	}

	if !offers.Completed {
		f.metrics.IncPricesNotReady()
		return nil, ErrPricesNotReady
	}

	return offers.Rooms, nil
}
