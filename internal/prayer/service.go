package prayer

import (
	"context"
	"log"
	"time"

	"github.com/noor-app/backend/internal/metrics"
)

// Service answers schedule lookups for a location, consulting the day cache
// before the upstream provider.
type Service struct {
	client *Client
	cache  *Cache
	now    func() time.Time
}

func NewService(client *Client, cache *Cache) *Service {
	return &Service{client: client, cache: cache, now: time.Now}
}

// TimesResult is a day's schedule plus the live countdown and interval
// progress derived from it.
type TimesResult struct {
	Schedule   *Schedule        `json:"schedule"`
	NextPrayer NextPrayerResult `json:"next_prayer"`
	Progress   float64          `json:"progress"`
}

// Times returns today's schedule for the location along with the next
// upcoming prayer and the progress through the current interval, both
// evaluated at the location's current wall-clock time.
func (s *Service) Times(ctx context.Context, city, country string, method int) (*TimesResult, error) {
	// The cache key date is a UTC guess made before the schedule's own
	// timezone is known. A wrong guess near midnight only costs one extra
	// provider fetch.
	now := s.now()
	date := now.UTC().Format("2006-01-02")

	schedule := s.cache.Get(ctx, city, country, method, date)
	if schedule != nil {
		metrics.PrayerCacheHits.Inc()
	} else {
		metrics.PrayerCacheMisses.Inc()
		fetched, err := s.client.FetchByCity(ctx, city, country, method)
		if err != nil {
			metrics.PrayerUpstreamErrors.Inc()
			return nil, err
		}
		schedule = fetched
		s.cache.Set(ctx, city, country, method, date, schedule, now)
	}

	nowSec := secondsSinceMidnight(now, schedule.Timezone)
	next, err := NextPrayer(schedule, nowSec)
	if err != nil {
		return nil, err
	}
	progress, err := Progress(schedule, nowSec)
	if err != nil {
		return nil, err
	}

	return &TimesResult{Schedule: schedule, NextPrayer: next, Progress: progress}, nil
}

func secondsSinceMidnight(now time.Time, timezone string) int {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("[prayer] unknown timezone %q, using UTC", timezone)
		loc = time.UTC
	}
	local := now.In(loc)
	return local.Hour()*3600 + local.Minute()*60 + local.Second()
}
