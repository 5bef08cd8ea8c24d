package proc

import (
	"database/sql"
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"
	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite store keeps values in a single kv table
type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens sqlite database at path and creates kv table if needed.
// ":memory:" gives an in-memory database shared within the process.
func NewSQLite(path string) (*SQLite, error) {
	connStr := path
	if path == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// in-memory database lives only as long as its single connection
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SQLite{DB: db}, nil
}

// Get value by key
func (s *SQLite) Get(key string) (value string, ok bool, err error) {
	err = s.DB.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// Set value by key, replacing previous one
func (s *SQLite) Set(key, value string) error {
	log.Printf("[DEBUG] save %s, %d bytes", key, len(value))
	_, err := s.DB.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Close database
func (s *SQLite) Close() error {
	return s.DB.Close()
}
