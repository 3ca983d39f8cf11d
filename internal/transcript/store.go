// Package transcript persists conversations: sessions and their turns,
// SQLite-backed with a full-text index over turn text.
package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Turn roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Session is one conversation.
type Session struct {
	ID        string     `json:"id"`
	Script    string     `json:"script"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	TurnCount int        `json:"turns,omitempty"`
}

// Turn is one utterance or reply within a session.
type Turn struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Keyword   string    `json:"keyword,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store records conversations in a SQLite database.
type Store struct {
	db      *sql.DB
	entropy *rand.Rand
}

// Open opens or creates the transcript database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		script     TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at   TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

	CREATE TABLE IF NOT EXISTS turns (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		seq        INTEGER NOT NULL,
		role       TEXT NOT NULL,
		text       TEXT NOT NULL,
		keyword    TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, seq);

	CREATE VIRTUAL TABLE IF NOT EXISTS turns_fts USING fts5(
		text,
		content=turns,
		content_rowid=rowid
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 triggers for automatic sync
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS turns_ai AFTER INSERT ON turns BEGIN
		INSERT INTO turns_fts(rowid, text) VALUES (new.rowid, new.text);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS turns_ad AFTER DELETE ON turns BEGIN
		INSERT INTO turns_fts(turns_fts, rowid, text) VALUES('delete', old.rowid, old.text);
	END`)

	// Backfill FTS for any turns not yet indexed
	s.db.Exec(`INSERT OR IGNORE INTO turns_fts(rowid, text) SELECT rowid, text FROM turns`)

	return nil
}

// StartSession creates a session record and returns it.
func (s *Store) StartSession(ctx context.Context, scriptName string) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:        s.newID(),
		Script:    scriptName,
		StartedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, script, started_at) VALUES (?, ?, ?)`,
		sess.ID, sess.Script, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// EndSession marks a session as finished.
func (s *Store) EndSession(ctx context.Context, sessionID string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`, now, sessionID)
	return err
}

// Append records one turn at the end of a session.
func (s *Store) Append(ctx context.Context, sessionID, role, text, keyword string) (*Turn, error) {
	now := time.Now().UTC()
	id := s.newID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var seq int
	tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM turns WHERE session_id = ?`, sessionID).Scan(&seq)
	seq++

	var kw *string
	if keyword != "" {
		kw = &keyword
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO turns (id, session_id, seq, role, text, keyword, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, sessionID, seq, role, text, kw, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert turn: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Turn{
		ID:        id,
		SessionID: sessionID,
		Seq:       seq,
		Role:      role,
		Text:      text,
		Keyword:   keyword,
		CreatedAt: now,
	}, nil
}

// Turns returns a session's turns in order. A positive limit returns only
// the most recent turns.
func (s *Store) Turns(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	query := `SELECT id, session_id, seq, role, text, keyword, created_at
	          FROM turns WHERE session_id = ? ORDER BY seq`
	args := []interface{}{sessionID}
	if limit > 0 {
		query = `SELECT * FROM (
		           SELECT id, session_id, seq, role, text, keyword, created_at
		           FROM turns WHERE session_id = ? ORDER BY seq DESC LIMIT ?
		         ) ORDER BY seq`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// SessionByID fetches a single session.
func (s *Store) SessionByID(ctx context.Context, id string) (*Session, error) {
	var sess Session
	var startedAt string
	var endedAt sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT s.id, s.script, s.started_at, s.ended_at,
		       (SELECT COUNT(*) FROM turns t WHERE t.session_id = s.id)
		FROM sessions s WHERE s.id = ?`, id).
		Scan(&sess.ID, &sess.Script, &startedAt, &endedAt, &sess.TurnCount)
	if err != nil {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if endedAt.Valid {
		t, _ := time.Parse(time.RFC3339, endedAt.String)
		sess.EndedAt = &t
	}
	return &sess, nil
}

// Sessions lists sessions, newest first.
func (s *Store) Sessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.script, s.started_at, s.ended_at, COUNT(t.id)
		FROM sessions s
		LEFT JOIN turns t ON t.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var startedAt string
		var endedAt sql.NullString
		if err := rows.Scan(&sess.ID, &sess.Script, &startedAt, &endedAt, &sess.TurnCount); err != nil {
			return nil, err
		}
		sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if endedAt.Valid {
			t, _ := time.Parse(time.RFC3339, endedAt.String)
			sess.EndedAt = &t
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTurn(row scanner) (Turn, error) {
	var t Turn
	var keyword sql.NullString
	var createdAt string

	err := row.Scan(&t.ID, &t.SessionID, &t.Seq, &t.Role, &t.Text, &keyword, &createdAt)
	if err != nil {
		return t, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if keyword.Valid {
		t.Keyword = keyword.String
	}
	return t, nil
}
