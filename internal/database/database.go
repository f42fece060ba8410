package database

import (
	"database/sql"
	"embed"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/noor-app/backend/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func Connect(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// Migrate applies all pending schema migrations embedded in the binary.
func Migrate(db *sql.DB) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migration setup: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// generateUsernameBase creates a lowercase alphanumeric base from a user's name.
func generateUsernameBase(name string) string {
	var result []byte
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			result = append(result, byte(c))
		}
	}
	if len(result) == 0 {
		return "user"
	}
	if len(result) > 12 {
		result = result[:12]
	}
	return string(result)
}

// rng is a seeded random source for username generation.
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateUsername creates a username from a name by appending random digits.
// Caller should retry on a unique constraint collision.
func GenerateUsername(name string) string {
	return fmt.Sprintf("%s%04d", generateUsernameBase(name), rng.Intn(10000))
}
