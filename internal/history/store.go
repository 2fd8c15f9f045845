// Package history persists archive metadata to MySQL so runs can be
// compared over time. The aggregator core never touches it; the CLI
// opts in with a flag.
package history

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"sra/internal/config"
	"sra/internal/domain"
)

// Store writes one row per archived replay batch.
type Store struct {
	config *config.Config
}

// NewStore creates a new Store
func NewStore(cfg *config.Config) *Store {
	return &Store{config: cfg}
}

// Entry is one run history row.
type Entry struct {
	ID              int64
	Timestamp       string
	TotalStreams    int
	TotalSpecs      int
	FailingSpecs    int
	PassingSpecs    int
	PendingSpecs    int
	TodoSpecs       int
	DurationSeconds float64
	Workers         int
}

var validTableName = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// open connects using environment settings, loading the project .env
// first. A missing .env is fine; plain environment variables still
// apply.
func (s *Store) open() (*sql.DB, string, error) {
	_ = godotenv.Load(s.config.GetEnvPath())

	table := s.config.GetHistoryTable()
	if !validTableName.MatchString(table) {
		return nil, "", fmt.Errorf("invalid history table name: %s", table)
	}

	db, err := sql.Open("mysql", s.config.GetHistoryDSN())
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to ping database server: %w", err)
	}
	return db, table, nil
}

func (s *Store) ensureTable(db *sql.DB, table string) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS `+"`%s`"+` (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		timestamp VARCHAR(64) NOT NULL,
		total_streams INT NOT NULL,
		total_specs INT NOT NULL,
		failing_specs INT NOT NULL,
		passing_specs INT NOT NULL,
		pending_specs INT NOT NULL,
		todo_specs INT NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		workers INT NOT NULL
	)`, table)
	_, err := db.Exec(query)
	return err
}

// Save records the archive's meta block as one history row.
func (s *Store) Save(archive *domain.RunArchive) error {
	db, table, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.ensureTable(db, table); err != nil {
		return fmt.Errorf("failed to ensure history table: %w", err)
	}

	meta := archive.Meta
	query := fmt.Sprintf(`INSERT INTO `+"`%s`"+` (
		timestamp, total_streams, total_specs, failing_specs,
		passing_specs, pending_specs, todo_specs, duration_seconds, workers
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, table)
	_, err = db.Exec(query,
		meta.Timestamp, meta.TotalStreams, meta.TotalSpecs, meta.FailingSpecs,
		meta.PassingSpecs, meta.PendingSpecs, meta.TodoSpecs, meta.DurationSeconds, meta.Workers,
	)
	if err != nil {
		return fmt.Errorf("failed to save run history: %w", err)
	}
	return nil
}

// Recent returns the latest n history rows, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}
	db, table, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := s.ensureTable(db, table); err != nil {
		return nil, fmt.Errorf("failed to ensure history table: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, timestamp, total_streams, total_specs,
		failing_specs, passing_specs, pending_specs, todo_specs,
		duration_seconds, workers
	FROM `+"`%s`"+` ORDER BY id DESC LIMIT ?`, table)
	rows, err := db.Query(query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.TotalStreams, &e.TotalSpecs,
			&e.FailingSpecs, &e.PassingSpecs, &e.PendingSpecs, &e.TodoSpecs,
			&e.DurationSeconds, &e.Workers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
