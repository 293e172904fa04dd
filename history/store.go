// Package history records protocol sessions to SQLite so they can be listed
// and replayed later.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrSessionNotFound = errors.New("session not found")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	ended_at INTEGER,
	strategy TEXT NOT NULL,
	bot_id TEXT NOT NULL DEFAULT '',
	width INTEGER NOT NULL DEFAULT 0,
	height INTEGER NOT NULL DEFAULT 0,
	decisions INTEGER NOT NULL DEFAULT 0,
	last_round INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS lines (
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	dir TEXT NOT NULL,
	text TEXT NOT NULL,
	at INTEGER NOT NULL,
	PRIMARY KEY (session_id, seq)
);
`

// Direction tells whether a line came from the engine or was sent by the bot.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// Line is one recorded protocol line.
type Line struct {
	Seq  int
	Dir  Direction
	Text string
	At   time.Time
}

// SessionInfo summarizes a recorded session.
type SessionInfo struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time // zero while the session is still open
	Strategy  string
	BotID     string
	Width     int
	Height    int
	Decisions int
	LastRound int
}

// Finished reports whether the session was closed cleanly.
func (s SessionInfo) Finished() bool {
	return !s.EndedAt.IsZero()
}

// Store is a session history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		schema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init history db: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewSession starts recording a new session played with the named strategy.
func (s *Store) NewSession(strategy string) (*Session, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, started_at, strategy) VALUES (?, ?, ?)`,
		id, time.Now().UnixMilli(), strategy,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Session{ID: id, store: s}, nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions() ([]SessionInfo, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, ended_at, strategy, bot_id, width, height, decisions, last_round
		FROM sessions
		ORDER BY started_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var started int64
		var ended sql.NullInt64
		err := rows.Scan(&info.ID, &started, &ended, &info.Strategy, &info.BotID,
			&info.Width, &info.Height, &info.Decisions, &info.LastRound)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		info.StartedAt = time.UnixMilli(started)
		if ended.Valid {
			info.EndedAt = time.UnixMilli(ended.Int64)
		}
		sessions = append(sessions, info)
	}
	return sessions, rows.Err()
}

// Lines returns the recorded lines of a session in order.
func (s *Store) Lines(id string) ([]Line, error) {
	if err := s.exists(id); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT seq, dir, text, at FROM lines WHERE session_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		var at int64
		if err := rows.Scan(&l.Seq, &l.Dir, &l.Text, &at); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		l.At = time.UnixMilli(at)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Replay loads a session and rebuilds its frames.
func (s *Store) Replay(id string) ([]Frame, error) {
	lines, err := s.Lines(id)
	if err != nil {
		return nil, err
	}
	return Replay(lines), nil
}

// Delete removes a session and its lines.
func (s *Store) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM lines WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return tx.Commit()
}

func (s *Store) exists(id string) error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE id = ?`, id).Scan(&n); err != nil {
		return fmt.Errorf("look up session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}
