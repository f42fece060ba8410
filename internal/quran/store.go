package quran

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

const verseColumns = `id, user_id, surah, verse, is_read, is_memorized, is_favorite,
	read_count, memorization_level, reading_seconds, memorization_seconds,
	pronunciation_seconds, last_read_at, last_memorized_at, created_at, updated_at`

func scanVerse(row *sql.Row) (*models.VerseState, error) {
	var v models.VerseState
	err := row.Scan(&v.ID, &v.UserID, &v.Surah, &v.Verse, &v.IsRead, &v.IsMemorized,
		&v.IsFavorite, &v.ReadCount, &v.MemorizationLevel, &v.ReadingSeconds,
		&v.MemorizationSeconds, &v.PronunciationSeconds, &v.LastReadAt,
		&v.LastMemorizedAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// MarkRead records one completed reading of a verse. The whole mutation is
// a single upsert so concurrent mutators on the same row cannot lose
// increments.
func (s *Store) MarkRead(userID int64, surah, verse int, elapsedSeconds int64) (*models.VerseState, error) {
	return s.upsert(`
		INSERT INTO verse_states (user_id, surah, verse, is_read, read_count, reading_seconds, last_read_at)
		VALUES ($1, $2, $3, TRUE, 1, $4, NOW())
		ON CONFLICT (user_id, surah, verse) DO UPDATE SET
		    is_read = TRUE,
		    read_count = verse_states.read_count + 1,
		    reading_seconds = verse_states.reading_seconds + $4,
		    last_read_at = NOW(),
		    updated_at = NOW()
		RETURNING `+verseColumns,
		userID, surah, verse, elapsedSeconds)
}

// MarkMemorized bumps the memorization level, capped at the maximum.
func (s *Store) MarkMemorized(userID int64, surah, verse int, elapsedSeconds int64) (*models.VerseState, error) {
	return s.upsert(`
		INSERT INTO verse_states (user_id, surah, verse, is_memorized, memorization_level, memorization_seconds, last_memorized_at)
		VALUES ($1, $2, $3, TRUE, 1, $4, NOW())
		ON CONFLICT (user_id, surah, verse) DO UPDATE SET
		    is_memorized = TRUE,
		    memorization_level = LEAST(verse_states.memorization_level + 1, $5),
		    memorization_seconds = verse_states.memorization_seconds + $4,
		    last_memorized_at = NOW(),
		    updated_at = NOW()
		RETURNING `+verseColumns,
		userID, surah, verse, elapsedSeconds, models.MaxMemorizationLevel)
}

// ToggleFavorite flips the favorite flag, leaving everything else alone.
// A first touch creates the row already favorited.
func (s *Store) ToggleFavorite(userID int64, surah, verse int) (*models.VerseState, error) {
	return s.upsert(`
		INSERT INTO verse_states (user_id, surah, verse, is_favorite)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (user_id, surah, verse) DO UPDATE SET
		    is_favorite = NOT verse_states.is_favorite,
		    updated_at = NOW()
		RETURNING `+verseColumns,
		userID, surah, verse)
}

// ResetMemorization steps the level back down, floored at zero.
func (s *Store) ResetMemorization(userID int64, surah, verse int) (*models.VerseState, error) {
	return s.upsert(`
		INSERT INTO verse_states (user_id, surah, verse)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, surah, verse) DO UPDATE SET
		    is_memorized = FALSE,
		    memorization_level = GREATEST(verse_states.memorization_level - 1, 0),
		    updated_at = NOW()
		RETURNING `+verseColumns,
		userID, surah, verse)
}

// AddPronunciationTime accumulates pronunciation practice seconds on a verse.
func (s *Store) AddPronunciationTime(userID int64, surah, verse int, elapsedSeconds int64) (*models.VerseState, error) {
	return s.upsert(`
		INSERT INTO verse_states (user_id, surah, verse, pronunciation_seconds)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, surah, verse) DO UPDATE SET
		    pronunciation_seconds = verse_states.pronunciation_seconds + $4,
		    updated_at = NOW()
		RETURNING `+verseColumns,
		userID, surah, verse, elapsedSeconds)
}

// upsert runs one of the mutator statements, retrying once on a unique
// violation. Two first-touch inserts can race past each other's conflict
// check; the loser re-issues and takes the update arm.
func (s *Store) upsert(query string, args ...interface{}) (*models.VerseState, error) {
	v, err := scanVerse(s.db.QueryRow(query, args...))
	if err == nil {
		return v, nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return scanVerse(s.db.QueryRow(query, args...))
	}
	return nil, fmt.Errorf("verse upsert: %w", err)
}

// ListBySurah returns the user's verse states for one surah, in verse order.
// Untouched verses have no row and are simply absent.
func (s *Store) ListBySurah(userID int64, surah int) ([]models.VerseState, error) {
	rows, err := s.db.Query(
		`SELECT `+verseColumns+`
		 FROM verse_states
		 WHERE user_id = $1 AND surah = $2
		 ORDER BY verse`,
		userID, surah)
	if err != nil {
		return nil, fmt.Errorf("list verse states: %w", err)
	}
	defer rows.Close()

	verses := []models.VerseState{}
	for rows.Next() {
		var v models.VerseState
		if err := rows.Scan(&v.ID, &v.UserID, &v.Surah, &v.Verse, &v.IsRead, &v.IsMemorized,
			&v.IsFavorite, &v.ReadCount, &v.MemorizationLevel, &v.ReadingSeconds,
			&v.MemorizationSeconds, &v.PronunciationSeconds, &v.LastReadAt,
			&v.LastMemorizedAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan verse state: %w", err)
		}
		verses = append(verses, v)
	}
	return verses, rows.Err()
}

// ListAll returns every touched verse for a user.
func (s *Store) ListAll(userID int64) ([]models.VerseState, error) {
	rows, err := s.db.Query(
		`SELECT `+verseColumns+`
		 FROM verse_states
		 WHERE user_id = $1
		 ORDER BY surah, verse`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list verse states: %w", err)
	}
	defer rows.Close()

	verses := []models.VerseState{}
	for rows.Next() {
		var v models.VerseState
		if err := rows.Scan(&v.ID, &v.UserID, &v.Surah, &v.Verse, &v.IsRead, &v.IsMemorized,
			&v.IsFavorite, &v.ReadCount, &v.MemorizationLevel, &v.ReadingSeconds,
			&v.MemorizationSeconds, &v.PronunciationSeconds, &v.LastReadAt,
			&v.LastMemorizedAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan verse state: %w", err)
		}
		verses = append(verses, v)
	}
	return verses, rows.Err()
}
