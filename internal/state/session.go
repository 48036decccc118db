package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/loomhq/loom/internal/changeset"
)

// SessionStatus represents the status of a workstream session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// Session represents one unit of in-progress work: a bead being worked in
// its own worktree by a codex agent session.
type Session struct {
	ID           string        `json:"id"`
	BeadID       string        `json:"bead_id"`
	Title        string        `json:"title"`
	Branch       string        `json:"branch"`
	RootBranch   string        `json:"root_branch"`
	Worktree     string        `json:"worktree"`
	CodexSession string        `json:"codex_session"`
	PRURL        string        `json:"pr_url"`
	ReviewState  string        `json:"review_state"`
	Status       SessionStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

const sessionColumns = `id, bead_id, title, branch, root_branch, worktree,
	codex_session, pr_url, review_state, status, created_at, updated_at`

// CreateSession creates a new session record.
func (db *DB) CreateSession(s *Session) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	_, err := db.conn.Exec(`
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.BeadID, s.Title, s.Branch, s.RootBranch, s.Worktree,
		s.CodexSession, s.PRURL, s.ReviewState, string(s.Status),
		formatTime(s.CreatedAt), formatTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID. Returns nil when not found.
func (db *DB) GetSession(id string) (*Session, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row := db.conn.QueryRow(`
		SELECT `+sessionColumns+` FROM sessions WHERE id = ?
	`, id)
	return scanSession(row)
}

// GetSessionByBead retrieves the most recent session for a bead.
// Returns nil when the bead has no sessions.
func (db *DB) GetSessionByBead(beadID string) (*Session, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row := db.conn.QueryRow(`
		SELECT `+sessionColumns+` FROM sessions
		WHERE bead_id = ? ORDER BY created_at DESC LIMIT 1
	`, beadID)
	return scanSession(row)
}

// ListSessions lists all sessions, optionally filtered by status.
func (db *DB) ListSessions(status *SessionStatus) ([]Session, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var rows *sql.Rows
	var err error
	if status != nil {
		rows, err = db.conn.Query(`
			SELECT `+sessionColumns+` FROM sessions
			WHERE status = ? ORDER BY created_at DESC
		`, string(*status))
	} else {
		rows, err = db.conn.Query(`
			SELECT ` + sessionColumns + ` FROM sessions ORDER BY created_at DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSessionRows(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// UpdateStatus transitions a session to a new status.
func (db *DB) UpdateStatus(id string, status SessionStatus) error {
	return db.update(id, "status", string(status))
}

// SetCodexSession records the codex session id recovered from terminal
// output, so the session can be reattached later.
func (db *DB) SetCodexSession(id, codexSession string) error {
	return db.update(id, "codex_session", codexSession)
}

// ApplyChangesetFields reconciles fields extracted from a bead description
// into the session record. Absent fields (empty strings) leave the stored
// value untouched: the description may simply not mention them yet.
func (db *DB) ApplyChangesetFields(id string, f changeset.Fields) error {
	updates := map[string]string{
		"branch":       f.WorkBranch,
		"root_branch":  f.RootBranch,
		"pr_url":       f.PRURL,
		"review_state": f.ReviewState,
	}
	for column, value := range updates {
		if value == "" {
			continue
		}
		if err := db.update(id, column, value); err != nil {
			return err
		}
	}
	return nil
}

// update sets one column on a session and bumps updated_at.
func (db *DB) update(id, column, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.Exec(
		"UPDATE sessions SET "+column+" = ?, updated_at = ? WHERE id = ?",
		value, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update session %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("update session %s: no session %q", column, id)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanSession.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row *sql.Row) (*Session, error) {
	s, err := scanSessionRows(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func scanSessionRows(sc scanner) (*Session, error) {
	var s Session
	var createdAt, updatedAt string
	err := sc.Scan(&s.ID, &s.BeadID, &s.Title, &s.Branch, &s.RootBranch,
		&s.Worktree, &s.CodexSession, &s.PRURL, &s.ReviewState, &s.Status,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	s.CreatedAt, _ = parseTime(createdAt)
	s.UpdatedAt, _ = parseTime(updatedAt)
	return &s, nil
}
