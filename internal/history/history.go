// Package history keeps a local audit log of script executions. It is
// append-only: nothing recorded here is ever read back to answer an API
// call.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Store struct {
	conn *sql.DB
}

// Entry is one recorded ExecuteScript invocation.
type Entry struct {
	ID           int64
	InvocationID string
	ScriptTitle  string
	Query        string
	ActivityID   int
	Summary      string
	ActivityType string
	CreatedAt    time.Time
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	store := &Store{conn: conn}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("migrate history database: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS executions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invocation_id TEXT NOT NULL UNIQUE,
		script_title TEXT NOT NULL,
		query TEXT NOT NULL,
		activity_id INTEGER NOT NULL,
		summary TEXT,
		activity_type TEXT,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_executions_created_at ON executions(created_at);
	CREATE INDEX IF NOT EXISTS idx_executions_script_title ON executions(script_title);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Record appends one execution and returns its invocation id.
func (s *Store) Record(scriptTitle, query string, activityID int, summary, activityType string) (string, error) {
	invocationID := uuid.NewString()

	insert := `INSERT INTO executions (invocation_id, script_title, query, activity_id, summary, activity_type, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.conn.Exec(insert, invocationID, scriptTitle, query, activityID, summary, activityType, time.Now())
	if err != nil {
		return "", fmt.Errorf("record execution: %w", err)
	}

	return invocationID, nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	query := `SELECT id, invocation_id, script_title, query, activity_id, summary, activity_type, created_at
	          FROM executions ORDER BY id DESC LIMIT ?`

	rows, err := s.conn.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(&e.ID, &e.InvocationID, &e.ScriptTitle, &e.Query,
			&e.ActivityID, &e.Summary, &e.ActivityType, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.conn.Close()
}
