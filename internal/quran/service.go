package quran

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/noor-app/backend/internal/models"
	"github.com/noor-app/backend/internal/stats"
)

// verseStore is the slice of Store the service uses.
type verseStore interface {
	MarkRead(userID int64, surah, verse int, elapsedSeconds int64) (*models.VerseState, error)
	MarkMemorized(userID int64, surah, verse int, elapsedSeconds int64) (*models.VerseState, error)
	ToggleFavorite(userID int64, surah, verse int) (*models.VerseState, error)
	ResetMemorization(userID int64, surah, verse int) (*models.VerseState, error)
	AddPronunciationTime(userID int64, surah, verse int, elapsedSeconds int64) (*models.VerseState, error)
	ListBySurah(userID int64, surah int) ([]models.VerseState, error)
}

// activityRecorder marks a user active for streak purposes.
type activityRecorder interface {
	RecordActivity(userID int64, now time.Time) error
}

// Service validates verse mutations and keeps the user's activity streak
// current alongside them. Every mutator counts as a streak-qualifying
// activity.
type Service struct {
	store   verseStore
	streaks activityRecorder
}

func NewService(store *Store, streaks *stats.Service) *Service {
	return &Service{store: store, streaks: streaks}
}

// validateElapsed rejects elapsed-time values that would corrupt the
// accumulated counters. Truncation to whole seconds matches how the
// counters are stored.
func validateElapsed(seconds float64) (int64, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%w: elapsed seconds must be finite", ErrInvalid)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: elapsed seconds must not be negative", ErrInvalid)
	}
	return int64(seconds), nil
}

func (s *Service) touchStreak(userID int64) {
	if err := s.streaks.RecordActivity(userID, time.Now()); err != nil {
		log.Printf("[quran] streak update failed for user %d: %v", userID, err)
	}
}

func (s *Service) MarkRead(userID int64, surah, verse int, elapsedSeconds float64) (*models.VerseState, error) {
	if err := ValidateRef(surah, verse); err != nil {
		return nil, err
	}
	elapsed, err := validateElapsed(elapsedSeconds)
	if err != nil {
		return nil, err
	}
	state, err := s.store.MarkRead(userID, surah, verse, elapsed)
	if err != nil {
		return nil, err
	}
	s.touchStreak(userID)
	return state, nil
}

func (s *Service) MarkMemorized(userID int64, surah, verse int, elapsedSeconds float64) (*models.VerseState, error) {
	if err := ValidateRef(surah, verse); err != nil {
		return nil, err
	}
	elapsed, err := validateElapsed(elapsedSeconds)
	if err != nil {
		return nil, err
	}
	state, err := s.store.MarkMemorized(userID, surah, verse, elapsed)
	if err != nil {
		return nil, err
	}
	s.touchStreak(userID)
	return state, nil
}

func (s *Service) ToggleFavorite(userID int64, surah, verse int) (*models.VerseState, error) {
	if err := ValidateRef(surah, verse); err != nil {
		return nil, err
	}
	state, err := s.store.ToggleFavorite(userID, surah, verse)
	if err != nil {
		return nil, err
	}
	s.touchStreak(userID)
	return state, nil
}

func (s *Service) ResetMemorization(userID int64, surah, verse int) (*models.VerseState, error) {
	if err := ValidateRef(surah, verse); err != nil {
		return nil, err
	}
	state, err := s.store.ResetMemorization(userID, surah, verse)
	if err != nil {
		return nil, err
	}
	s.touchStreak(userID)
	return state, nil
}

func (s *Service) AddPronunciationTime(userID int64, surah, verse int, elapsedSeconds float64) (*models.VerseState, error) {
	if err := ValidateRef(surah, verse); err != nil {
		return nil, err
	}
	elapsed, err := validateElapsed(elapsedSeconds)
	if err != nil {
		return nil, err
	}
	state, err := s.store.AddPronunciationTime(userID, surah, verse, elapsed)
	if err != nil {
		return nil, err
	}
	s.touchStreak(userID)
	return state, nil
}

func (s *Service) ListBySurah(userID int64, surah int) ([]models.VerseState, error) {
	if surah < 1 || surah > SurahCount {
		return nil, fmt.Errorf("%w: surah %d out of range [1, %d]", ErrInvalid, surah, SurahCount)
	}
	return s.store.ListBySurah(userID, surah)
}
