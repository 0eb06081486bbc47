package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripweave/hotel-search-api/internal/search"
)

const defaultTTL = 10 * time.Minute

// Cache stores merged base result sets in Redis, keyed by SearchKey.
// Entries are written wholesale and expire after the TTL; Redis expiry
// gives the same miss semantics as TTL-on-read.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache. A non-positive TTL falls back to 10 minutes.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func key(searchKey string) string {
	return "search:" + searchKey
}

// Get retrieves the base result set for a SearchKey.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context, searchKey string) ([]search.Record, error) {
	val, err := c.client.Get(ctx, key(searchKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for key %s: %w", searchKey, err)
	}

	var records []search.Record
	if err := json.Unmarshal([]byte(val), &records); err != nil {
		return nil, fmt.Errorf("unmarshaling cached records for key %s: %w", searchKey, err)
	}
	if records == nil {
		records = []search.Record{}
	}

	return records, nil
}

// Set stores the base result set with the configured TTL, replacing any
// existing entry. An empty set is a valid entry and still counts as a hit.
func (c *Cache) Set(ctx context.Context, searchKey string, records []search.Record) error {
	if records == nil {
		records = []search.Record{}
	}

	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling records for key %s: %w", searchKey, err)
	}

	if err := c.client.Set(ctx, key(searchKey), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for key %s: %w", searchKey, err)
	}

	return nil
}
