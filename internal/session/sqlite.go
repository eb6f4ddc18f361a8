// File: sqlite.go
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"shapeWordAuth/internal/captcha"
)

const schema = `
CREATE TABLE IF NOT EXISTS challenges (
	session_key TEXT PRIMARY KEY,
	payload     TEXT NOT NULL,
	created_at  INTEGER NOT NULL
)`

// SQLiteStore persists challenges as JSON rows, one per session key.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and
// prepares the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// one connection keeps ":memory:" databases shared and writes serialized
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init session schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Put(ctx context.Context, key string, c *captcha.Challenge) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode challenge: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO challenges (session_key, payload, created_at) VALUES (?, ?, ?)
		ON CONFLICT(session_key) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at
	`, key, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save challenge %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*captcha.Challenge, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM challenges WHERE session_key = ?", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load challenge %s: %w", key, err)
	}
	var c captcha.Challenge
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, false, fmt.Errorf("decode challenge %s: %w", key, err)
	}
	return &c, true, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM challenges WHERE session_key = ?", key); err != nil {
		return fmt.Errorf("delete challenge %s: %w", key, err)
	}
	return nil
}

// Prune removes challenges created before cutoff and reports how many.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM challenges WHERE created_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune challenges: %w", err)
	}
	return res.RowsAffected()
}
