package stats

import "time"

// advanceStreak applies one day's activity to the streak fields, in place.
// Days are UTC-truncated: activity on the same UTC day is a no-op, the next
// day extends the streak, any gap resets it to 1. Returns false when
// nothing changed.
func advanceStreak(summary *streakState, now time.Time) bool {
	today := now.UTC().Truncate(24 * time.Hour)

	if summary.LastActiveDate != nil {
		lastActive := summary.LastActiveDate.UTC().Truncate(24 * time.Hour)
		if lastActive.Equal(today) {
			return false
		}

		daysSinceLast := int(today.Sub(lastActive).Hours() / 24)
		if daysSinceLast == 1 {
			summary.CurrentStreak++
		} else {
			summary.CurrentStreak = 1
		}
	} else {
		// First ever activity
		summary.CurrentStreak = 1
	}

	if summary.CurrentStreak > summary.LongestStreak {
		summary.LongestStreak = summary.CurrentStreak
	}
	summary.LastActiveDate = &today
	return true
}

// streakState is the slice of the summary row the streak logic touches.
type streakState struct {
	CurrentStreak  int
	LongestStreak  int
	LastActiveDate *time.Time
}
