package quran

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/noor-app/backend/internal/database"
	"github.com/noor-app/backend/internal/models"
	"github.com/noor-app/backend/internal/stats"
)

// openTestDB connects to the database named by TEST_DATABASE_URL, applying
// migrations first. Tests that need it are skipped when the variable is
// unset so the pure-function suites still run everywhere.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", url)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a throwaway user and removes it (and, via cascade,
// its verse states) when the test finishes.
func createTestUser(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	suffix := time.Now().UnixNano()
	var userID int64
	err := db.QueryRow(
		`INSERT INTO users (email, name, username, password)
		 VALUES ($1, 'Store Test', $2, 'x')
		 RETURNING id`,
		fmt.Sprintf("store-test-%d@example.com", suffix),
		fmt.Sprintf("storetest%d", suffix),
	).Scan(&userID)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	})
	return userID
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	userID := createTestUser(t, db)

	first, err := store.ToggleFavorite(userID, 1, 1)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first.IsFavorite {
		t.Error("first toggle should favorite the verse")
	}

	second, err := store.ToggleFavorite(userID, 1, 1)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.IsFavorite {
		t.Error("second toggle should return to unfavorited")
	}
	if second.ReadCount != 0 || second.IsRead || second.IsMemorized {
		t.Errorf("toggle changed unrelated fields: %+v", second)
	}
}

func TestReadCountSurvivesInterleavedActions(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	userID := createTestUser(t, db)

	// Three reads interleaved with every other action type on the same
	// row; none of the others may eat a read increment.
	if _, err := store.MarkRead(userID, 2, 255, 10); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if _, err := store.ToggleFavorite(userID, 2, 255); err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}
	if _, err := store.MarkRead(userID, 2, 255, 10); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if _, err := store.MarkMemorized(userID, 2, 255, 20); err != nil {
		t.Fatalf("mark memorized: %v", err)
	}
	if _, err := store.ResetMemorization(userID, 2, 255); err != nil {
		t.Fatalf("reset memorization: %v", err)
	}
	state, err := store.MarkRead(userID, 2, 255, 10)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}

	if state.ReadCount != 3 {
		t.Errorf("read count = %d after 3 reads, want 3", state.ReadCount)
	}
	if !state.IsRead || !state.IsFavorite {
		t.Errorf("flags lost under interleaving: %+v", state)
	}
	if state.IsMemorized || state.MemorizationLevel != 0 {
		t.Errorf("memorization not reset: level=%d", state.MemorizationLevel)
	}
	if state.ReadingSeconds != 30 {
		t.Errorf("reading seconds = %d, want 30", state.ReadingSeconds)
	}
}

func TestMemorizationLevelCaps(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	userID := createTestUser(t, db)

	var state *models.VerseState
	var err error
	for i := 0; i < models.MaxMemorizationLevel+2; i++ {
		state, err = store.MarkMemorized(userID, 36, 1, 5)
		if err != nil {
			t.Fatalf("mark memorized %d: %v", i, err)
		}
	}
	if state.MemorizationLevel != models.MaxMemorizationLevel {
		t.Errorf("level = %d, want capped at %d", state.MemorizationLevel, models.MaxMemorizationLevel)
	}

	for i := 0; i < models.MaxMemorizationLevel+2; i++ {
		state, err = store.ResetMemorization(userID, 36, 1)
		if err != nil {
			t.Fatalf("reset memorization %d: %v", i, err)
		}
	}
	if state.MemorizationLevel != 0 || state.IsMemorized {
		t.Errorf("level = %d memorized=%v after resets, want 0/false", state.MemorizationLevel, state.IsMemorized)
	}
}

func TestMutateThenAggregateConsistency(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	userID := createTestUser(t, db)

	// 1:1 read twice and favorited, 1:2 read once, 2:255 memorized only.
	if _, err := store.MarkRead(userID, 1, 1, 60); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if _, err := store.MarkRead(userID, 1, 1, 60); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if _, err := store.ToggleFavorite(userID, 1, 1); err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}
	if _, err := store.MarkRead(userID, 1, 2, 30); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if _, err := store.MarkMemorized(userID, 2, 255, 90); err != nil {
		t.Fatalf("mark memorized: %v", err)
	}

	rows, err := store.ListAll(userID)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	got := stats.Reduce(models.UserStatsSummary{}, rows, nil)

	if got.TotalVersesRead != 2 {
		t.Errorf("verses read = %d, want 2", got.TotalVersesRead)
	}
	if got.TotalVersesMemorized != 1 {
		t.Errorf("verses memorized = %d, want 1", got.TotalVersesMemorized)
	}
	if got.TotalFavorites != 1 {
		t.Errorf("favorites = %d, want 1", got.TotalFavorites)
	}
	// 60+60+30 reading seconds floors to 2 minutes, 90 memorization to 1.
	if got.TimeBreakdown.ReadingMinutes != 2 || got.TimeBreakdown.MemorizationMinutes != 1 {
		t.Errorf("time breakdown = %+v", got.TimeBreakdown)
	}
	if len(got.TopFavorites) != 1 || got.TopFavorites[0].Surah != 1 || got.TopFavorites[0].Verse != 1 {
		t.Errorf("top favorites = %v", got.TopFavorites)
	}
}
