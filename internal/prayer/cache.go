package prayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores one day's schedule per location in Redis. Entries expire at
// the location's local midnight, after which the next request refetches.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func cacheKey(city, country string, method int, date string) string {
	return fmt.Sprintf("prayer:%s:%s:%d:%s", city, country, method, date)
}

// Get returns the cached schedule for a location and date, or nil on a miss.
// Redis failures degrade to a miss so the provider path still works.
func (c *Cache) Get(ctx context.Context, city, country string, method int, date string) *Schedule {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, cacheKey(city, country, method, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		log.Printf("[prayer] cache read failed: %v", err)
		return nil
	}
	var s Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Printf("[prayer] cache entry corrupt, discarding: %v", err)
		return nil
	}
	return &s
}

// Set caches a schedule under the lookup date until the location's local
// midnight.
func (c *Cache) Set(ctx context.Context, city, country string, method int, date string, s *Schedule, now time.Time) {
	if c == nil || c.client == nil {
		return
	}
	ttl := untilLocalMidnight(now, s.Timezone)
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(city, country, method, date), raw, ttl).Err(); err != nil {
		log.Printf("[prayer] cache write failed: %v", err)
	}
}

// untilLocalMidnight computes the duration from now to the next midnight in
// the given IANA timezone. An unknown timezone falls back to UTC.
func untilLocalMidnight(now time.Time, timezone string) time.Duration {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return midnight.Sub(local)
}
