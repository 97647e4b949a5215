// Package storage provides SQLite-based persistence for puzzle progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// Session is one play-through of a game, from its first level to quitting
// or finishing.
type Session struct {
	ID         string
	GameID     string
	Player     string
	StartLevel int
	Furthest   int // highest level completed, 0 if none
	Completed  bool
	StartedAt  time.Time
	FinishedAt time.Time // zero until the last level is solved
}

// Progress summarises every session of one game.
type Progress struct {
	GameID        string
	Furthest      int // highest level ever completed
	LevelsCleared int // total level completions
	Sessions      int
	Completions   int // sessions that solved the final level
	LastPlayed    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS play_sessions (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			start_level INTEGER NOT NULL DEFAULT 1,
			completed INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_play_sessions_game_id ON play_sessions(game_id);

		CREATE TABLE IF NOT EXISTS level_completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES play_sessions(id),
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(session_id, level)
		);
		CREATE INDEX IF NOT EXISTS idx_level_completions_game ON level_completions(game_id, level DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession records the start of a play-through and returns its ID.
func (s *Store) StartSession(gameID, player string, startLevel int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO play_sessions (id, game_id, player, start_level) VALUES (?, ?, ?, ?)",
		id, gameID, player, startLevel,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start session: %w", err)
	}
	return id, nil
}

// RecordLevel stores the completion of level in a session.
// Recording the same level twice for a session is a no-op.
func (s *Store) RecordLevel(sessionID, gameID string, level int) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO level_completions (session_id, game_id, level) VALUES (?, ?, ?)",
		sessionID, gameID, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record level %d: %w", level, err)
	}
	return nil
}

// CompleteSession marks a session as having solved its final level.
func (s *Store) CompleteSession(sessionID string) error {
	result, err := s.db.Exec(
		"UPDATE play_sessions SET completed = 1, finished_at = CURRENT_TIMESTAMP WHERE id = ? AND completed = 0",
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot complete session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot complete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: session %s not found or already complete", sessionID)
	}
	return nil
}

// Furthest returns the highest level ever completed for the game, or 0.
func (s *Store) Furthest(gameID string) (int, error) {
	var level sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(level) FROM level_completions WHERE game_id = ?",
		gameID,
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query furthest level: %w", err)
	}

	if !level.Valid {
		return 0, nil
	}
	return int(level.Int64), nil
}

// Progress retrieves the aggregated progress for one game.
func (s *Store) Progress(gameID string) (*Progress, error) {
	p := &Progress{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0)
		 FROM play_sessions WHERE game_id = ?`,
		gameID,
	).Scan(&p.Sessions, &p.Completions)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count sessions: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), 0), MAX(created_at)
		 FROM level_completions WHERE game_id = ?`,
		gameID,
	).Scan(&p.LevelsCleared, &p.Furthest, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	p.LastPlayed = parseTime(lastPlayed)

	return p, nil
}

// AllProgress retrieves progress for every game that has been played.
func (s *Store) AllProgress() (map[string]*Progress, error) {
	rows, err := s.db.Query(`SELECT DISTINCT game_id FROM play_sessions`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list games: %w", err)
	}

	var games []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan game row: %w", err)
		}
		games = append(games, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	all := make(map[string]*Progress, len(games))
	for _, id := range games {
		p, err := s.Progress(id)
		if err != nil {
			return nil, err
		}
		all[id] = p
	}
	return all, nil
}

// RecentSessions returns the latest sessions of a game, newest first.
// An empty gameID lists every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT ps.id, ps.game_id, ps.player, ps.start_level, ps.completed,
		        ps.started_at, ps.finished_at, COALESCE(MAX(lc.level), 0)
		 FROM play_sessions ps
		 LEFT JOIN level_completions lc ON lc.session_id = ps.id
		 WHERE ? = '' OR ps.game_id = ?
		 GROUP BY ps.id
		 ORDER BY ps.started_at DESC, ps.rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess              Session
			completed         int
			started, finished any
		)
		if err := rows.Scan(&sess.ID, &sess.GameID, &sess.Player, &sess.StartLevel,
			&completed, &started, &finished, &sess.Furthest); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.Completed = completed != 0
		sess.StartedAt = parseTime(started)
		sess.FinishedAt = parseTime(finished)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Session returns one session by ID.
func (s *Store) Session(id string) (*Session, error) {
	var (
		sess              Session
		completed         int
		started, finished any
	)
	err := s.db.QueryRow(
		`SELECT ps.id, ps.game_id, ps.player, ps.start_level, ps.completed,
		        ps.started_at, ps.finished_at,
		        (SELECT COALESCE(MAX(level), 0) FROM level_completions WHERE session_id = ps.id)
		 FROM play_sessions ps WHERE ps.id = ?`,
		id,
	).Scan(&sess.ID, &sess.GameID, &sess.Player, &sess.StartLevel,
		&completed, &started, &finished, &sess.Furthest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	sess.Completed = completed != 0
	sess.StartedAt = parseTime(started)
	sess.FinishedAt = parseTime(finished)
	return &sess, nil
}

// ClearProgress deletes every session and completion of a game.
func (s *Store) ClearProgress(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM level_completions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM play_sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
