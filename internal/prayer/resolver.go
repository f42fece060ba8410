package prayer

import "fmt"

// NextPrayerResult names the nearest upcoming prayer and the non-negative
// number of seconds until it. Recomputed on every tick; never persisted.
type NextPrayerResult struct {
	Name             string `json:"name"`
	SecondsRemaining int    `json:"seconds_remaining"`
}

// NextPrayer returns the nearest prayer strictly after nowSeconds (seconds
// since local midnight), wrapping past midnight to tomorrow's Fajr.
//
// Each candidate's delta is (candidate - now) mod 86400 mapped into
// (0, 86400]: a prayer exactly at now counts as already passed, and the
// wrap after Isha needs no special case — tomorrow's Fajr simply has the
// smallest positive delta.
func NextPrayer(s *Schedule, nowSeconds int) (NextPrayerResult, error) {
	if err := s.Validate(); err != nil {
		return NextPrayerResult{}, err
	}
	if nowSeconds < 0 || nowSeconds >= SecondsPerDay {
		return NextPrayerResult{}, fmt.Errorf("now %d out of range [0, %d)", nowSeconds, SecondsPerDay)
	}

	candidates := []struct {
		name  string
		value string
	}{
		{Fajr, s.Fajr},
		{Dhuhr, s.Dhuhr},
		{Asr, s.Asr},
		{Maghrib, s.Maghrib},
		{Isha, s.Isha},
	}

	best := NextPrayerResult{SecondsRemaining: SecondsPerDay + 1}
	for _, c := range candidates {
		sec, err := ParseClock(c.value)
		if err != nil {
			return NextPrayerResult{}, err
		}
		delta := (sec - nowSeconds) % SecondsPerDay
		if delta <= 0 {
			delta += SecondsPerDay
		}
		if delta < best.SecondsRemaining {
			best = NextPrayerResult{Name: c.name, SecondsRemaining: delta}
		}
	}
	return best, nil
}

// Progress returns the elapsed fraction of the interval between the two
// canonical events bracketing nowSeconds, clamped to [0, 1]. The bracket
// events are Fajr, Sunrise, Dhuhr, Asr, Maghrib and Isha. A degenerate
// bracket (both ends equal) yields 0.
func Progress(s *Schedule, nowSeconds int) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if nowSeconds < 0 || nowSeconds >= SecondsPerDay {
		return 0, fmt.Errorf("now %d out of range [0, %d)", nowSeconds, SecondsPerDay)
	}

	events := []string{s.Fajr, s.Sunrise, s.Dhuhr, s.Asr, s.Maghrib, s.Isha}

	var prevSec, nextSec int
	elapsedBest := SecondsPerDay + 1
	remainBest := SecondsPerDay + 1
	for _, v := range events {
		sec, err := ParseClock(v)
		if err != nil {
			return 0, err
		}

		// Elapsed since this event; an event exactly at now has elapsed 0.
		elapsed := (nowSeconds - sec) % SecondsPerDay
		if elapsed < 0 {
			elapsed += SecondsPerDay
		}
		if elapsed < elapsedBest {
			elapsedBest = elapsed
			prevSec = sec
		}

		remain := (sec - nowSeconds) % SecondsPerDay
		if remain <= 0 {
			remain += SecondsPerDay
		}
		if remain < remainBest {
			remainBest = remain
			nextSec = sec
		}
	}

	span := (nextSec - prevSec) % SecondsPerDay
	if span < 0 {
		span += SecondsPerDay
	}
	if span == 0 {
		return 0, nil
	}

	frac := float64(elapsedBest) / float64(span)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac, nil
}
