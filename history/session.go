package history

import (
	"fmt"
	"time"

	"hackman-bot/logging"
	"hackman-bot/protocol"
	"hackman-bot/types"
)

// Session records the traffic of one running bot. It implements
// protocol.Observer and protocol.Sender. Lines are buffered and written once
// the response has gone out, so the database is touched at most once per
// round and never before the engine has its move.
type Session struct {
	ID    string
	store *Store

	seq     int
	pending []Line

	botID     string
	width     int
	height    int
	decisions int
	lastRound int
}

// Received buffers an input line and picks up the settings shown in listings.
func (s *Session) Received(line string) {
	s.add(In, line)

	cmd, err := protocol.Parse(line)
	if err != nil || cmd.Kind != protocol.KindSettings {
		return
	}
	switch cmd.Key {
	case types.KeyYourBotID:
		s.botID = cmd.Value
	case types.KeyFieldWidth:
		if n, err := types.ParseInt(cmd.Key, cmd.Value); err == nil {
			s.width = n
		}
	case types.KeyFieldHeight:
		if n, err := types.ParseInt(cmd.Key, cmd.Value); err == nil {
			s.height = n
		}
	}
}

// Decided buffers the response line.
func (s *Session) Decided(d protocol.Decision) {
	s.add(Out, d.Move.String())
	s.decisions++
	s.lastRound = d.Round
}

// Sent flushes the round to the database.
func (s *Session) Sent(string) {
	if err := s.Flush(); err != nil {
		logging.Log.Warningf("history: %v", err)
	}
}

// Flush writes buffered lines and the session summary.
func (s *Session) Flush() error {
	tx, err := s.store.db.Begin()
	if err != nil {
		return fmt.Errorf("begin flush: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO lines (session_id, seq, dir, text, at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare line insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range s.pending {
		if _, err := stmt.Exec(s.ID, l.Seq, string(l.Dir), l.Text, l.At.UnixMilli()); err != nil {
			return fmt.Errorf("insert line %d: %w", l.Seq, err)
		}
	}
	_, err = tx.Exec(
		`UPDATE sessions SET bot_id = ?, width = ?, height = ?, decisions = ?, last_round = ? WHERE id = ?`,
		s.botID, s.width, s.height, s.decisions, s.lastRound, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit flush: %w", err)
	}
	s.pending = s.pending[:0]
	return nil
}

// Close flushes remaining lines and marks the session finished.
func (s *Session) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	_, err := s.store.db.Exec(`UPDATE sessions SET ended_at = ? WHERE id = ?`, time.Now().UnixMilli(), s.ID)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

func (s *Session) add(dir Direction, text string) {
	s.seq++
	s.pending = append(s.pending, Line{Seq: s.seq, Dir: dir, Text: text, At: time.Now()})
}
