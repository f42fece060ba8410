package stats

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/noor-app/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetOrCreateSummary returns the user's summary row, creating a zeroed one
// on first touch. Two requests racing to create the same row both succeed:
// the loser's insert is a no-op (or a 23505 it retries past) and the
// re-read sees the winner's row.
func (s *Store) GetOrCreateSummary(userID int64) (*models.UserStatsSummary, error) {
	_, err := s.db.Exec(
		`INSERT INTO user_stats_summary (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); !ok || pqErr.Code != "23505" {
			return nil, fmt.Errorf("upsert summary: %w", err)
		}
	}

	var summary models.UserStatsSummary
	err = s.db.QueryRow(
		`SELECT user_id, current_streak, longest_streak, last_active_date,
		        total_quizzes, total_points, created_at, updated_at
		 FROM user_stats_summary WHERE user_id = $1`,
		userID,
	).Scan(&summary.UserID, &summary.CurrentStreak, &summary.LongestStreak,
		&summary.LastActiveDate, &summary.TotalQuizzes, &summary.TotalPoints,
		&summary.CreatedAt, &summary.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return &summary, nil
}

func (s *Store) UpdateStreak(userID int64, currentStreak, longestStreak int, lastActiveDate time.Time) error {
	_, err := s.db.Exec(
		`UPDATE user_stats_summary SET
		    current_streak = $2, longest_streak = $3, last_active_date = $4,
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, currentStreak, longestStreak, lastActiveDate,
	)
	return err
}

// AddQuizResult bumps the quiz counters with in-database increments so
// concurrent submissions never clobber each other.
func (s *Store) AddQuizResult(userID int64, score int) error {
	_, err := s.db.Exec(
		`UPDATE user_stats_summary SET
		    total_quizzes = total_quizzes + 1,
		    total_points = total_points + $2,
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, score,
	)
	return err
}

func (s *Store) InsertSession(userID int64, activityType string, startedAt, endedAt time.Time, durationSeconds int64) (*models.StudySession, error) {
	var sess models.StudySession
	err := s.db.QueryRow(
		`INSERT INTO study_sessions (user_id, activity_type, started_at, ended_at, duration_seconds)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, activity_type, started_at, ended_at, duration_seconds`,
		userID, activityType, startedAt, endedAt, durationSeconds,
	).Scan(&sess.ID, &sess.UserID, &sess.ActivityType, &sess.StartedAt, &sess.EndedAt, &sess.DurationSeconds)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &sess, nil
}

func (s *Store) RecentSessions(userID int64, limit int) ([]models.StudySession, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, activity_type, started_at, ended_at, duration_seconds
		 FROM study_sessions
		 WHERE user_id = $1
		 ORDER BY started_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.StudySession{}
	for rows.Next() {
		var sess models.StudySession
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.ActivityType,
			&sess.StartedAt, &sess.EndedAt, &sess.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
