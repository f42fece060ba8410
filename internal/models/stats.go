package models

import "time"

// TotalVerses is the verse count of the canonical text; global progress
// percentages are computed against it.
const TotalVerses = 6236

// UserStatsSummary is the denormalized per-user rollup row. It is a cache:
// everything except the streak fields and quiz counters is recomputable
// from verse_states + study_sessions at any time.
type UserStatsSummary struct {
	UserID         int64      `json:"user_id"`
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	TotalQuizzes   int        `json:"total_quizzes"`
	TotalPoints    int        `json:"total_points"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AverageScore is totalPoints / totalQuizzes, or 0 with no quizzes taken.
func (s UserStatsSummary) AverageScore() float64 {
	if s.TotalQuizzes == 0 {
		return 0
	}
	return float64(s.TotalPoints) / float64(s.TotalQuizzes)
}

type StudySession struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ActivityType    string    `json:"activity_type"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds int64     `json:"duration_seconds"`
}

// Activity types accepted for study sessions.
const (
	ActivityReading       = "reading"
	ActivityMemorization  = "memorization"
	ActivityPronunciation = "pronunciation"
	ActivityQuiz          = "quiz"
)

type RecordSessionRequest struct {
	ActivityType    string  `json:"activity_type"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// TimeBreakdown reports accumulated study time in whole minutes per
// activity. Seconds are floor-divided; sub-minute remainders drop.
type TimeBreakdown struct {
	ReadingMinutes       int64 `json:"reading_minutes"`
	MemorizationMinutes  int64 `json:"memorization_minutes"`
	PronunciationMinutes int64 `json:"pronunciation_minutes"`
	TotalMinutes         int64 `json:"total_minutes"`
}

type FavoriteVerse struct {
	Surah      int        `json:"surah"`
	Verse      int        `json:"verse"`
	ReadCount  int        `json:"read_count"`
	LastReadAt *time.Time `json:"last_read_at,omitempty"`
}

type AchievementStatus struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	Threshold   int    `json:"threshold"`
}

type StatsResponse struct {
	TotalVersesRead       int                 `json:"total_verses_read"`
	TotalVersesMemorized  int                 `json:"total_verses_memorized"`
	TotalFavorites        int                 `json:"total_favorites"`
	ReadProgressPercent   float64             `json:"read_progress_percent"`
	MemorizedProgressPct  float64             `json:"memorized_progress_percent"`
	TimeBreakdown         TimeBreakdown       `json:"time_breakdown"`
	TopFavorites          []FavoriteVerse     `json:"top_favorites"`
	ReadingStreak         int                 `json:"reading_streak"`
	LongestStreak         int                 `json:"longest_streak"`
	TotalQuizzes          int                 `json:"total_quizzes"`
	TotalPoints           int                 `json:"total_points"`
	AverageScore          float64             `json:"average_score"`
	RecentSessions        []StudySession      `json:"recent_sessions"`
	Achievements          []AchievementStatus `json:"achievements"`
}
