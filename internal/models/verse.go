package models

import "time"

// VerseState is the per-user, per-verse fact row: read/memorize/favorite
// status plus accumulated study time. All aggregation derives from these
// rows; they are only ever updated through the discrete mutators, never
// summarized destructively.
type VerseState struct {
	ID                   int64      `json:"id"`
	UserID               int64      `json:"user_id"`
	Surah                int        `json:"surah"`
	Verse                int        `json:"verse"`
	IsRead               bool       `json:"is_read"`
	IsMemorized          bool       `json:"is_memorized"`
	IsFavorite           bool       `json:"is_favorite"`
	ReadCount            int        `json:"read_count"`
	MemorizationLevel    int        `json:"memorization_level"`
	ReadingSeconds       int64      `json:"reading_seconds"`
	MemorizationSeconds  int64      `json:"memorization_seconds"`
	PronunciationSeconds int64      `json:"pronunciation_seconds"`
	LastReadAt           *time.Time `json:"last_read_at,omitempty"`
	LastMemorizedAt      *time.Time `json:"last_memorized_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// MaxMemorizationLevel caps the per-verse memorization level.
const MaxMemorizationLevel = 5

type MarkReadRequest struct {
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type MarkMemorizedRequest struct {
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type VerseListResponse struct {
	Verses []VerseState `json:"verses"`
}
