package prayer

import (
	"math"
	"testing"
)

func testSchedule() *Schedule {
	return &Schedule{
		Fajr:     "05:00",
		Sunrise:  "06:30",
		Dhuhr:    "12:15",
		Asr:      "15:45",
		Sunset:   "18:30",
		Maghrib:  "18:30",
		Isha:     "20:00",
		Date:     "2026-08-30",
		Timezone: "Europe/London",
	}
}

func clock(hours, minutes int) int {
	return hours*3600 + minutes*60
}

func TestNextPrayer(t *testing.T) {
	tests := []struct {
		name       string
		nowSeconds int
		wantName   string
		wantDelta  int
	}{
		{"early morning before Fajr", clock(3, 0), Fajr, 2 * 3600},
		{"afternoon before Asr", clock(14, 0), Asr, 6300},
		{"between Maghrib and Isha", clock(19, 0), Isha, 3600},
		{"late night wraps to next Fajr", clock(23, 30), Fajr, 19800},
		{"exactly at Dhuhr counts as passed", clock(12, 15), Asr, 12600},
		{"one second before Dhuhr", clock(12, 15) - 1, Dhuhr, 1},
		{"midnight", 0, Fajr, 5 * 3600},
	}

	s := testSchedule()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextPrayer(s, tt.nowSeconds)
			if err != nil {
				t.Fatalf("NextPrayer returned error: %v", err)
			}
			if got.Name != tt.wantName {
				t.Errorf("got prayer %q, want %q", got.Name, tt.wantName)
			}
			if got.SecondsRemaining != tt.wantDelta {
				t.Errorf("got %d seconds remaining, want %d", got.SecondsRemaining, tt.wantDelta)
			}
		})
	}
}

func TestNextPrayerAlwaysPositive(t *testing.T) {
	s := testSchedule()
	for nowSeconds := 0; nowSeconds < SecondsPerDay; nowSeconds += 61 {
		got, err := NextPrayer(s, nowSeconds)
		if err != nil {
			t.Fatalf("NextPrayer(%d) returned error: %v", nowSeconds, err)
		}
		if got.SecondsRemaining <= 0 || got.SecondsRemaining > SecondsPerDay {
			t.Fatalf("NextPrayer(%d) = %d seconds, outside (0, %d]", nowSeconds, got.SecondsRemaining, SecondsPerDay)
		}
	}
}

func TestNextPrayerRejectsBadInput(t *testing.T) {
	s := testSchedule()
	if _, err := NextPrayer(s, -1); err == nil {
		t.Error("expected error for negative now")
	}
	if _, err := NextPrayer(s, SecondsPerDay); err == nil {
		t.Error("expected error for now past end of day")
	}

	broken := testSchedule()
	broken.Maghrib = ""
	if _, err := NextPrayer(broken, clock(10, 0)); err == nil {
		t.Error("expected error for schedule missing Maghrib")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name       string
		nowSeconds int
		want       float64
	}{
		{"midpoint of Dhuhr to Asr", clock(14, 0), 0.5},
		{"at Dhuhr exactly", clock(12, 15), 0.0},
		{"late night inside Isha to Fajr", clock(23, 30), 12600.0 / 32400.0},
		{"just after midnight still Isha to Fajr", clock(1, 0), 18000.0 / 32400.0},
	}

	s := testSchedule()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Progress(s, tt.nowSeconds)
			if err != nil {
				t.Fatalf("Progress returned error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got progress %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressBoundsAndMonotonicity(t *testing.T) {
	s := testSchedule()
	prev := -1.0
	// Walk the Dhuhr-to-Asr bracket; progress must stay in [0, 1] and
	// never decrease.
	for nowSeconds := clock(12, 15); nowSeconds < clock(15, 45); nowSeconds += 60 {
		got, err := Progress(s, nowSeconds)
		if err != nil {
			t.Fatalf("Progress(%d) returned error: %v", nowSeconds, err)
		}
		if got < 0 || got > 1 {
			t.Fatalf("Progress(%d) = %v, outside [0, 1]", nowSeconds, got)
		}
		if got < prev {
			t.Fatalf("Progress(%d) = %v decreased from %v", nowSeconds, got, prev)
		}
		prev = got
	}
}

func TestProgressDegenerateBracket(t *testing.T) {
	s := &Schedule{
		Fajr: "12:00", Sunrise: "12:00", Dhuhr: "12:00", Asr: "12:00",
		Sunset: "12:00", Maghrib: "12:00", Isha: "12:00",
	}
	got, err := Progress(s, clock(12, 0))
	if err != nil {
		t.Fatalf("Progress returned error: %v", err)
	}
	if got != 0 {
		t.Errorf("got progress %v for degenerate bracket, want 0", got)
	}
}
