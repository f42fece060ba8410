package prayer

import (
	"fmt"
	"strconv"
	"strings"
)

// SecondsPerDay is the wrap modulus for wall-clock arithmetic.
const SecondsPerDay = 24 * 60 * 60

// Canonical prayer names, in daily order.
const (
	Fajr    = "Fajr"
	Sunrise = "Sunrise"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Sunset  = "Sunset"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

// Schedule holds one day's prayer and solar event times for a location,
// as HH:MM wall-clock strings relative to Date in Timezone. A schedule is
// fetched once per location/day and discarded after local midnight.
type Schedule struct {
	Fajr       string `json:"fajr"`
	Sunrise    string `json:"sunrise"`
	Dhuhr      string `json:"dhuhr"`
	Asr        string `json:"asr"`
	Sunset     string `json:"sunset"`
	Maghrib    string `json:"maghrib"`
	Isha       string `json:"isha"`
	Imsak      string `json:"imsak,omitempty"`
	Midnight   string `json:"midnight,omitempty"`
	FirstThird string `json:"first_third,omitempty"`
	LastThird  string `json:"last_third,omitempty"`

	Date      string `json:"date"`     // YYYY-MM-DD
	Timezone  string `json:"timezone"` // IANA name, e.g. "Europe/London"
	HijriDate string `json:"hijri_date,omitempty"`
}

// Validate checks that every required event parses as a wall-clock time.
// A schedule missing any of the five prayers or the solar markers is
// rejected outright; the resolver never works from a defaulted field.
func (s *Schedule) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{Fajr, s.Fajr},
		{Sunrise, s.Sunrise},
		{Dhuhr, s.Dhuhr},
		{Asr, s.Asr},
		{Sunset, s.Sunset},
		{Maghrib, s.Maghrib},
		{Isha, s.Isha},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("schedule missing %s", f.name)
		}
		if _, err := ParseClock(f.value); err != nil {
			return fmt.Errorf("schedule field %s: %w", f.name, err)
		}
	}
	return nil
}

// ParseClock converts an "HH:MM" string to seconds since local midnight.
// The upstream API may append a timezone label like "05:30 (BST)"; anything
// after the first space is ignored.
func ParseClock(value string) (int, error) {
	clock := value
	if i := strings.IndexByte(clock, ' '); i >= 0 {
		clock = clock[:i]
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("malformed clock value %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("malformed clock value %q", value)
	}

	return hours*3600 + minutes*60, nil
}
