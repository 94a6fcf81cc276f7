// Package store persists configuration (API keys, service endpoints)
// and a move log for auditability. Nothing in the core pipeline
// depends on it; a run without a store still works.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS configuration (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			session TEXT,
			source TEXT,
			dest TEXT,
			moved_at DATETIME
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Configuration

func (s *SQLiteStore) SetConfig(key, value string) error {
	query := `INSERT INTO configuration (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := s.db.Exec(query, key, value)
	return err
}

func (s *SQLiteStore) GetConfig(key string) (string, error) {
	row := s.db.QueryRow(`SELECT value FROM configuration WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Move log

// Move is one audited file move.
type Move struct {
	RunID   string
	Session string
	Source  string
	Dest    string
	MovedAt time.Time
}

// LogMove records a completed move. Failures here are reported but
// never block the organization run.
func (s *SQLiteStore) LogMove(runID, session, source, dest string) error {
	query := `INSERT INTO moves (run_id, session, source, dest, moved_at) VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, runID, session, source, dest, time.Now().UTC())
	return err
}

// ListMoves returns the moves recorded for one run, oldest first.
func (s *SQLiteStore) ListMoves(runID string) ([]Move, error) {
	rows, err := s.db.Query(
		`SELECT run_id, session, source, dest, moved_at FROM moves WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var m Move
		if err := rows.Scan(&m.RunID, &m.Session, &m.Source, &m.Dest, &m.MovedAt); err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}
