package stats

import (
	"sort"

	"github.com/noor-app/backend/internal/models"
)

// TopFavoritesLimit caps the favorites list in the aggregate payload.
const TopFavoritesLimit = 10

// Reduce folds a user's fact rows into the aggregate stats payload. It is
// a pure function: the summary row and fact slices come in, nothing is
// written. A user with no activity reduces to a fully zeroed payload.
func Reduce(summary models.UserStatsSummary, verses []models.VerseState, sessions []models.StudySession) models.StatsResponse {
	var read, memorized, favorites int
	surahs := map[int]bool{}
	var readingSec, memorizationSec, pronunciationSec int64

	for _, v := range verses {
		if v.IsRead {
			read++
			surahs[v.Surah] = true
		}
		if v.IsMemorized {
			memorized++
		}
		if v.IsFavorite {
			favorites++
		}
		readingSec += v.ReadingSeconds
		memorizationSec += v.MemorizationSeconds
		pronunciationSec += v.PronunciationSeconds
	}

	for _, sess := range sessions {
		switch sess.ActivityType {
		case models.ActivityReading:
			readingSec += sess.DurationSeconds
		case models.ActivityMemorization:
			memorizationSec += sess.DurationSeconds
		case models.ActivityPronunciation:
			pronunciationSec += sess.DurationSeconds
		}
	}

	// Whole minutes, rounded down. Sub-minute remainders drop rather than
	// inflating the totals.
	breakdown := models.TimeBreakdown{
		ReadingMinutes:       readingSec / 60,
		MemorizationMinutes:  memorizationSec / 60,
		PronunciationMinutes: pronunciationSec / 60,
	}
	breakdown.TotalMinutes = breakdown.ReadingMinutes + breakdown.MemorizationMinutes + breakdown.PronunciationMinutes

	counters := Counters{
		VersesRead:      read,
		VersesMemorized: memorized,
		Favorites:       favorites,
		SurahsTouched:   len(surahs),
		StreakDays:      summary.CurrentStreak,
		StudyMinutes:    int(breakdown.TotalMinutes),
	}

	return models.StatsResponse{
		TotalVersesRead:      read,
		TotalVersesMemorized: memorized,
		TotalFavorites:       favorites,
		ReadProgressPercent:  progressPercent(read),
		MemorizedProgressPct: progressPercent(memorized),
		TimeBreakdown:        breakdown,
		TopFavorites:         topFavorites(verses),
		ReadingStreak:        summary.CurrentStreak,
		LongestStreak:        summary.LongestStreak,
		TotalQuizzes:         summary.TotalQuizzes,
		TotalPoints:          summary.TotalPoints,
		AverageScore:         summary.AverageScore(),
		RecentSessions:       sessions,
		Achievements:         EvaluateAchievements(counters),
	}
}

func progressPercent(count int) float64 {
	pct := float64(count) / float64(models.TotalVerses) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// topFavorites picks the user's favorited verses ordered by read_count
// descending, then most recently read, then (surah, verse) ascending so the
// same facts always produce the same list.
func topFavorites(verses []models.VerseState) []models.FavoriteVerse {
	favorites := []models.FavoriteVerse{}
	for _, v := range verses {
		if !v.IsFavorite {
			continue
		}
		favorites = append(favorites, models.FavoriteVerse{
			Surah:      v.Surah,
			Verse:      v.Verse,
			ReadCount:  v.ReadCount,
			LastReadAt: v.LastReadAt,
		})
	}

	sort.Slice(favorites, func(i, j int) bool {
		a, b := favorites[i], favorites[j]
		if a.ReadCount != b.ReadCount {
			return a.ReadCount > b.ReadCount
		}
		switch {
		case a.LastReadAt != nil && b.LastReadAt != nil && !a.LastReadAt.Equal(*b.LastReadAt):
			return a.LastReadAt.After(*b.LastReadAt)
		case (a.LastReadAt != nil) != (b.LastReadAt != nil):
			return a.LastReadAt != nil
		}
		if a.Surah != b.Surah {
			return a.Surah < b.Surah
		}
		return a.Verse < b.Verse
	})

	if len(favorites) > TopFavoritesLimit {
		favorites = favorites[:TopFavoritesLimit]
	}
	return favorites
}
