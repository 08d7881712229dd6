package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createRuns = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  created_at INTEGER NOT NULL,
  strategy TEXT NOT NULL DEFAULT '',
  rooms INTEGER NOT NULL DEFAULT 0,
  data TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// SQLite stores runs in a local database file. The run itself is kept as a
// JSON document; the other columns exist for listing.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(createRuns); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Save(ctx context.Context, run *Run) error {
	if err := prepare(run); err != nil {
		return err
	}
	data, err := jsonRun(run)
	if err != nil {
		return err
	}
	rooms := 0
	if run.Result != nil {
		rooms = len(run.Result.Rooms)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO runs (id, created_at, strategy, rooms, data)
VALUES (?, ?, ?, ?, ?)
`, run.ID, run.CreatedAt.UnixNano(), run.Strategy(), rooms, data)
	return err
}

func (s *SQLite) Get(ctx context.Context, id string) (*Run, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM runs WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeRun([]byte(data))
}

func (s *SQLite) List(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT data FROM runs
ORDER BY created_at DESC, id
LIMIT ?
`, listLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		run, err := decodeRun([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error { return s.db.Close() }

func jsonRun(run *Run) (string, error) {
	data, err := json.Marshal(run)
	if err != nil {
		return "", fmt.Errorf("encode run: %w", err)
	}
	return string(data), nil
}

func decodeRun(data []byte) (*Run, error) {
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	run.CreatedAt = run.CreatedAt.In(time.UTC)
	return &run, nil
}
