package stats

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/noor-app/backend/internal/models"
)

// RecentSessionsLimit caps the sessions slice in the aggregate payload.
const RecentSessionsLimit = 20

// ErrInvalid marks a rejected session payload. Handlers map it to a 400.
var ErrInvalid = errors.New("invalid input")

// VerseSource supplies a user's verse fact rows for aggregation.
type VerseSource interface {
	ListAll(userID int64) ([]models.VerseState, error)
}

type Service struct {
	store  *Store
	verses VerseSource
	now    func() time.Time
}

func NewService(store *Store, verses VerseSource) *Service {
	return &Service{store: store, verses: verses, now: time.Now}
}

// Aggregate builds the full stats payload for a user. Reads only; a brand
// new user gets a zeroed payload with every achievement locked.
func (s *Service) Aggregate(userID int64) (*models.StatsResponse, error) {
	summary, err := s.store.GetOrCreateSummary(userID)
	if err != nil {
		return nil, err
	}
	verses, err := s.verses.ListAll(userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.store.RecentSessions(userID, RecentSessionsLimit)
	if err != nil {
		return nil, err
	}

	response := Reduce(*summary, verses, sessions)
	return &response, nil
}

// RecordActivity marks the user active now, extending or resetting the
// daily streak as needed.
func (s *Service) RecordActivity(userID int64, now time.Time) error {
	summary, err := s.store.GetOrCreateSummary(userID)
	if err != nil {
		return err
	}

	state := streakState{
		CurrentStreak:  summary.CurrentStreak,
		LongestStreak:  summary.LongestStreak,
		LastActiveDate: summary.LastActiveDate,
	}
	if !advanceStreak(&state, now) {
		return nil
	}
	return s.store.UpdateStreak(userID, state.CurrentStreak, state.LongestStreak, *state.LastActiveDate)
}

// RecordSession stores a completed study session and counts it toward the
// streak.
func (s *Service) RecordSession(userID int64, req models.RecordSessionRequest) (*models.StudySession, error) {
	switch req.ActivityType {
	case models.ActivityReading, models.ActivityMemorization, models.ActivityPronunciation, models.ActivityQuiz:
	default:
		return nil, fmt.Errorf("%w: unknown activity type %q", ErrInvalid, req.ActivityType)
	}
	if math.IsNaN(req.DurationSeconds) || math.IsInf(req.DurationSeconds, 0) {
		return nil, fmt.Errorf("%w: duration must be finite", ErrInvalid)
	}
	if req.DurationSeconds < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", ErrInvalid)
	}

	now := s.now()
	duration := int64(req.DurationSeconds)
	session, err := s.store.InsertSession(userID, req.ActivityType, now.Add(-time.Duration(duration)*time.Second), now, duration)
	if err != nil {
		return nil, err
	}
	if err := s.RecordActivity(userID, now); err != nil {
		return nil, err
	}
	return session, nil
}

// Summary returns the user's rollup row, creating it on first touch.
func (s *Service) Summary(userID int64) (*models.UserStatsSummary, error) {
	return s.store.GetOrCreateSummary(userID)
}

// AddQuizResult records a finished quiz in the summary counters and counts
// it toward the streak.
func (s *Service) AddQuizResult(userID int64, score int) error {
	if _, err := s.store.GetOrCreateSummary(userID); err != nil {
		return err
	}
	if err := s.store.AddQuizResult(userID, score); err != nil {
		return err
	}
	return s.RecordActivity(userID, s.now())
}
