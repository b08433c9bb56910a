// Package storage provides SQLite-based persistence for session summaries.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/neuroplay/arena/internal/telemetry"
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sql.DB
}

// SessionRecord is one persisted session row, without the payload blobs.
type SessionRecord struct {
	ID         int64
	SessionID  string
	GameID     string
	Score      int
	Partial    bool
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMS int
	CreatedAt  time.Time
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			partial INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL,
			summary TEXT NOT NULL,
			events TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(game_id, score DESC);
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

// SaveSession persists a finished session. The event log is stored beside
// the scalar summary so a session can be re-aggregated later.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sum telemetry.SessionSummary) (int64, error) {
	events, err := json.Marshal(sum.Events)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode events: %w", err)
	}

	scalar := sum
	scalar.Events = nil
	summary, err := json.Marshal(scalar)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode summary: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, game_id, score, partial, started_at, ended_at, duration_ms, summary, events)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.SessionID,
		sum.GameID,
		sum.Score,
		sum.Partial,
		sum.StartedAt,
		sum.EndedAt,
		sum.DurationMS,
		string(summary),
		string(events),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Submit implements Sink.
func (s *Store) Submit(sum telemetry.SessionSummary) error {
	_, err := s.SaveSession(sum)
	return err
}

// RecentSessions retrieves the most recent sessions for the given game.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, game_id, score, partial, started_at, ended_at, duration_ms, created_at
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

func scanSession(rows *sql.Rows) (SessionRecord, error) {
	var r SessionRecord
	var startedAt, endedAt, createdAt any

	if err := rows.Scan(
		&r.ID, &r.SessionID, &r.GameID, &r.Score, &r.Partial,
		&startedAt, &endedAt, &r.DurationMS, &createdAt,
	); err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	r.StartedAt = parseDBTime(startedAt)
	r.EndedAt = parseDBTime(endedAt)
	r.CreatedAt = parseDBTime(createdAt)
	return r, nil
}

// parseDBTime handles the driver returning either time.Time or a string.
func parseDBTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// RecentSummaries loads the most recent scalar summaries for a game,
// newest first. Event logs are not loaded; use SummaryBySessionID for
// the full payload.
func (s *Store) RecentSummaries(gameID string, limit int) ([]telemetry.SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT summary FROM sessions
		 WHERE game_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query summaries: %w", err)
	}
	defer rows.Close()

	var sums []telemetry.SessionSummary
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary: %w", err)
		}
		var sum telemetry.SessionSummary
		if err := json.Unmarshal([]byte(raw), &sum); err != nil {
			return nil, fmt.Errorf("storage: cannot decode summary: %w", err)
		}
		sums = append(sums, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sums, nil
}

// SummaryBySessionID loads a full summary, event log included.
// Returns nil if the session is unknown.
func (s *Store) SummaryBySessionID(sessionID string) (*telemetry.SessionSummary, error) {
	var summaryJSON, eventsJSON string

	err := s.db.QueryRow(
		"SELECT summary, events FROM sessions WHERE session_id = ?",
		sessionID,
	).Scan(&summaryJSON, &eventsJSON)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	var sum telemetry.SessionSummary
	if err := json.Unmarshal([]byte(summaryJSON), &sum); err != nil {
		return nil, fmt.Errorf("storage: cannot decode summary: %w", err)
	}
	if err := json.Unmarshal([]byte(eventsJSON), &sum.Events); err != nil {
		return nil, fmt.Errorf("storage: cannot decode events: %w", err)
	}

	return &sum, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no sessions exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM sessions WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// GameStats contains aggregated statistics for one arena.
type GameStats struct {
	GameID       string
	SessionCount int
	HighScore    int
	AvgScore     float64
	LastPlayed   time.Time
}

// GetGameStats retrieves aggregated statistics for a specific arena.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.SessionCount, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseDBTime(lastPlayed)
	}

	return stats, nil
}
