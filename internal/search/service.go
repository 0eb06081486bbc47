package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/tripweave/hotel-search-api/internal/obs"
	"github.com/tripweave/hotel-search-api/internal/provider"
)

const (
	roomCacheSize = 512
	roomCacheTTL  = 10 * time.Minute
)

// Upstream is the provider fetch contract the service depends on.
type Upstream interface {
	Fetch(ctx context.Context, q provider.PriceQuery) ([]provider.Hotel, provider.QuoteSet, error)
	FetchRooms(ctx context.Context, hotelID string, q provider.PriceQuery) ([]provider.RoomOffer, error)
}

// BaseCache stores merged, unfiltered result sets keyed by SearchKey.
// Get returns nil, nil on a miss; expired entries count as misses.
type BaseCache interface {
	Get(ctx context.Context, key string) ([]Record, error)
	Set(ctx context.Context, key string, records []Record) error
}

// Service runs the search pipeline: cache lookup, upstream fetch with
// completion poll, merge, cache write, then filter/sort/paginate over the
// base set. Concurrent misses for the same key share a single fetch.
type Service struct {
	upstream Upstream
	cache    BaseCache
	metrics  *obs.Metrics
	log      *slog.Logger

	flight singleflight.Group
	rooms  *expirable.LRU[string, []provider.RoomOffer]
}

// NewService constructs a Service. The room-offers cache is in-process and
// bounded; the base-result cache is injected.
func NewService(upstream Upstream, cache BaseCache, m *obs.Metrics, log *slog.Logger) *Service {
	return &Service{
		upstream: upstream,
		cache:    cache,
		metrics:  m,
		log:      log,
		rooms:    expirable.NewLRU[string, []provider.RoomOffer](roomCacheSize, nil, roomCacheTTL),
	}
}

// Search serves one page of results for the query. A cache hit never
// issues an upstream call; a failed fetch never writes the cache.
func (s *Service) Search(ctx context.Context, q Query) (Page, error) {
	key := q.Key()

	base, err := s.cache.Get(ctx, key)
	if err != nil {
		// Degrade to a miss; the cache is an optimization, not a dependency.
		s.log.Error("cache get failed", "key", key, "err", err)
		base = nil
	}
	if base != nil {
		s.metrics.IncCacheHits()
		s.metrics.IncSearches("ok")
		return view(base, q), nil
	}
	s.metrics.IncCacheMisses()

	v, err, _ := s.flight.Do(key, func() (any, error) {
		hotels, quotes, err := s.upstream.Fetch(ctx, q.PriceQuery())
		if err != nil {
			return nil, err
		}

		records := Merge(hotels, quotes)
		if err := s.cache.Set(ctx, key, records); err != nil {
			s.log.Warn("cache set failed", "key", key, "err", err)
		}
		return records, nil
	})
	if err != nil {
		s.metrics.IncSearches(outcome(err))
		return Page{}, err
	}

	s.metrics.IncSearches("ok")
	return view(v.([]Record), q), nil
}

func outcome(err error) string {
	var upstreamErr *provider.UpstreamError
	switch {
	case errors.Is(err, provider.ErrPricesNotReady):
		return "not_ready"
	case errors.As(err, &upstreamErr):
		return "upstream_error"
	default:
		return "error"
	}
}

// RoomOffers returns completed room rates for one hotel, cached in-process
// per hotel and stay parameters.
func (s *Service) RoomOffers(ctx context.Context, hotelID string, q Query) ([]provider.RoomOffer, error) {
	key := hotelID + "|" + q.Key()

	if offers, ok := s.rooms.Get(key); ok {
		return offers, nil
	}

	offers, err := s.upstream.FetchRooms(ctx, hotelID, q.PriceQuery())
	if err != nil {
		return nil, err
	}

	s.rooms.Add(key, offers)
	return offers, nil
}

func view(base []Record, q Query) Page {
	filtered := Filter(base, q)
	Sort(filtered, q.SortBy)
	return Paginate(filtered, q.Page, q.PageSize)
}
