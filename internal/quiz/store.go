package quiz

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/noor-app/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// InsertBatch stores a generated batch in one round trip.
func (s *Store) InsertBatch(category, difficulty, modelUsed string, batch *GeneratedBatch) (int, error) {
	txn, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin insert batch: %w", err)
	}
	defer txn.Rollback()

	stmt, err := txn.Prepare(pq.CopyIn("quiz_questions",
		"category", "difficulty", "prompt",
		"choice_a", "choice_b", "choice_c", "choice_d",
		"correct_choice", "explanation", "model_used"))
	if err != nil {
		return 0, fmt.Errorf("prepare insert batch: %w", err)
	}

	for _, q := range batch.Questions {
		if _, err := stmt.Exec(category, difficulty, q.Prompt,
			q.Choices[0], q.Choices[1], q.Choices[2], q.Choices[3],
			q.CorrectChoice, q.Explanation, modelUsed); err != nil {
			return 0, fmt.Errorf("insert question: %w", err)
		}
	}
	if _, err := stmt.Exec(); err != nil {
		return 0, fmt.Errorf("flush insert batch: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("close insert batch: %w", err)
	}
	if err := txn.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert batch: %w", err)
	}
	return len(batch.Questions), nil
}

// PickQuestions selects the least-served questions in a category, bumping
// their served counters so the pool rotates.
func (s *Store) PickQuestions(category string, limit int) ([]models.QuizQuestion, error) {
	rows, err := s.db.Query(
		`UPDATE quiz_questions SET times_served = times_served + 1
		 WHERE id IN (
		     SELECT id FROM quiz_questions
		     WHERE category = $1
		     ORDER BY times_served, RANDOM()
		     LIMIT $2
		 )
		 RETURNING id, category, difficulty, prompt,
		           choice_a, choice_b, choice_c, choice_d,
		           correct_choice, explanation, created_at`,
		category, limit)
	if err != nil {
		return nil, fmt.Errorf("pick questions: %w", err)
	}
	defer rows.Close()

	questions := []models.QuizQuestion{}
	for rows.Next() {
		var q models.QuizQuestion
		var a, b, c, d string
		if err := rows.Scan(&q.ID, &q.Category, &q.Difficulty, &q.Prompt,
			&a, &b, &c, &d, &q.CorrectChoice, &q.Explanation, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Choices = []string{a, b, c, d}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) InsertResult(userID int64, score, total int) (*models.QuizResult, error) {
	var result models.QuizResult
	err := s.db.QueryRow(
		`INSERT INTO quiz_results (user_id, score, total)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, score, total, taken_at`,
		userID, score, total,
	).Scan(&result.ID, &result.UserID, &result.Score, &result.Total, &result.TakenAt)
	if err != nil {
		return nil, fmt.Errorf("insert quiz result: %w", err)
	}
	return &result, nil
}
