package quran

import (
	"errors"
	"testing"
	"time"

	"github.com/noor-app/backend/internal/models"
)

type fakeVerseStore struct {
	calls int
}

func (f *fakeVerseStore) touch() (*models.VerseState, error) {
	f.calls++
	return &models.VerseState{}, nil
}

func (f *fakeVerseStore) MarkRead(userID int64, surah, verse int, elapsedSeconds int64) (*models.VerseState, error) {
	return f.touch()
}
func (f *fakeVerseStore) MarkMemorized(userID int64, surah, verse int, elapsedSeconds int64) (*models.VerseState, error) {
	return f.touch()
}
func (f *fakeVerseStore) ToggleFavorite(userID int64, surah, verse int) (*models.VerseState, error) {
	return f.touch()
}
func (f *fakeVerseStore) ResetMemorization(userID int64, surah, verse int) (*models.VerseState, error) {
	return f.touch()
}
func (f *fakeVerseStore) AddPronunciationTime(userID int64, surah, verse int, elapsedSeconds int64) (*models.VerseState, error) {
	return f.touch()
}
func (f *fakeVerseStore) ListBySurah(userID int64, surah int) ([]models.VerseState, error) {
	return nil, nil
}

type fakeRecorder struct {
	calls int
}

func (f *fakeRecorder) RecordActivity(userID int64, now time.Time) error {
	f.calls++
	return nil
}

func TestEveryMutatorCountsTowardStreak(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Service) error
	}{
		{"mark read", func(s *Service) error {
			_, err := s.MarkRead(1, 2, 255, 10)
			return err
		}},
		{"mark memorized", func(s *Service) error {
			_, err := s.MarkMemorized(1, 2, 255, 10)
			return err
		}},
		{"toggle favorite", func(s *Service) error {
			_, err := s.ToggleFavorite(1, 2, 255)
			return err
		}},
		{"reset memorization", func(s *Service) error {
			_, err := s.ResetMemorization(1, 2, 255)
			return err
		}},
		{"pronunciation time", func(s *Service) error {
			_, err := s.AddPronunciationTime(1, 2, 255, 10)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{}
			service := &Service{store: &fakeVerseStore{}, streaks: recorder}

			if err := tt.mutate(service); err != nil {
				t.Fatalf("mutation failed: %v", err)
			}
			if recorder.calls != 1 {
				t.Errorf("RecordActivity called %d times, want 1", recorder.calls)
			}
		})
	}
}

func TestRejectedMutationDoesNotTouchStreak(t *testing.T) {
	recorder := &fakeRecorder{}
	store := &fakeVerseStore{}
	service := &Service{store: store, streaks: recorder}

	if _, err := service.MarkRead(1, 115, 1, 10); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad surah, got %v", err)
	}
	if _, err := service.MarkRead(1, 1, 1, -5); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative elapsed, got %v", err)
	}

	if store.calls != 0 {
		t.Errorf("store touched %d times by rejected mutations, want 0", store.calls)
	}
	if recorder.calls != 0 {
		t.Errorf("RecordActivity called %d times by rejected mutations, want 0", recorder.calls)
	}
}
