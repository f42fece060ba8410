package stats

import "github.com/noor-app/backend/internal/models"

// Counters are the activity totals achievements are judged against.
type Counters struct {
	VersesRead      int
	VersesMemorized int
	Favorites       int
	SurahsTouched   int
	StreakDays      int
	StudyMinutes    int
}

// achievementDef ties one achievement to the counter it watches. Adding an
// achievement means adding a row here; evaluation never special-cases an
// entry.
type achievementDef struct {
	ID          string
	Title       string
	Description string
	Threshold   int
	Counter     func(Counters) int
}

var achievementCatalogue = []achievementDef{
	{
		ID:          "first_verse",
		Title:       "First Verse",
		Description: "Read your first verse",
		Threshold:   1,
		Counter:     func(c Counters) int { return c.VersesRead },
	},
	{
		ID:          "dedicated_reader",
		Title:       "Dedicated Reader",
		Description: "Read 100 verses",
		Threshold:   100,
		Counter:     func(c Counters) int { return c.VersesRead },
	},
	{
		ID:          "quran_explorer",
		Title:       "Quran Explorer",
		Description: "Read verses from 10 different surahs",
		Threshold:   10,
		Counter:     func(c Counters) int { return c.SurahsTouched },
	},
	{
		ID:          "memory_master",
		Title:       "Memory Master",
		Description: "Memorize 10 verses",
		Threshold:   10,
		Counter:     func(c Counters) int { return c.VersesMemorized },
	},
	{
		ID:          "consistent_reader",
		Title:       "Consistent Reader",
		Description: "Keep a 7-day reading streak",
		Threshold:   7,
		Counter:     func(c Counters) int { return c.StreakDays },
	},
	{
		ID:          "study_enthusiast",
		Title:       "Study Enthusiast",
		Description: "Study for 10 hours in total",
		Threshold:   600,
		Counter:     func(c Counters) int { return c.StudyMinutes },
	},
	{
		ID:          "memorization_champion",
		Title:       "Memorization Champion",
		Description: "Memorize 100 verses",
		Threshold:   100,
		Counter:     func(c Counters) int { return c.VersesMemorized },
	},
	{
		ID:          "quran_lover",
		Title:       "Quran Lover",
		Description: "Favorite 25 verses",
		Threshold:   25,
		Counter:     func(c Counters) int { return c.Favorites },
	},
}

// EvaluateAchievements returns the status of every catalogue entry, in
// catalogue order. Every entry always yields a status, even at zero
// activity; entries never influence each other.
func EvaluateAchievements(c Counters) []models.AchievementStatus {
	statuses := make([]models.AchievementStatus, 0, len(achievementCatalogue))
	for _, def := range achievementCatalogue {
		counter := def.Counter(c)
		progress := counter
		if progress > def.Threshold {
			progress = def.Threshold
		}
		if progress < 0 {
			progress = 0
		}
		statuses = append(statuses, models.AchievementStatus{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Unlocked:    counter >= def.Threshold,
			Progress:    progress,
			Threshold:   def.Threshold,
		})
	}
	return statuses
}
