// Package storage provides SQLite-based persistence for match results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/hexfront/internal/core"
)

// Store manages the SQLite database connection for match results.
type Store struct {
	db *sqlx.DB
}

// Match is one finished (or turn-limited) match.
type Match struct {
	ID          int64  `db:"id"`
	MatchID     string `db:"match_id"`
	Mode        string `db:"mode"`
	Seed        int64  `db:"seed"`
	Winner      string `db:"winner"`
	EndReason   string `db:"end_reason"`
	BlueScore   int    `db:"blue_score"`
	RedScore    int    `db:"red_score"`
	Turns       int    `db:"turns"`
	CreatedUnix int64  `db:"created_at"`
}

// CreatedAt returns when the match was recorded.
func (m Match) CreatedAt() time.Time {
	return time.Unix(m.CreatedUnix, 0)
}

// MatchFromResult converts a game result into a storable record.
func MatchFromResult(r core.MatchResult) Match {
	return Match{
		MatchID:   r.MatchID,
		Mode:      r.Mode,
		Seed:      r.Seed,
		Winner:    r.Winner,
		EndReason: r.Reason,
		BlueScore: r.BlueScore,
		RedScore:  r.RedScore,
		Turns:     r.Turns,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			winner TEXT NOT NULL,
			end_reason TEXT NOT NULL,
			blue_score INTEGER NOT NULL DEFAULT 0,
			red_score INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_mode ON matches(mode);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
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

// SaveMatch records a match. CreatedUnix defaults to now.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m Match) (int64, error) {
	if m.CreatedUnix == 0 {
		m.CreatedUnix = time.Now().Unix()
	}

	res, err := s.db.NamedExec(
		`INSERT INTO matches
		 (match_id, mode, seed, winner, end_reason, blue_score, red_score, turns, created_at)
		 VALUES (:match_id, :mode, :seed, :winner, :end_reason, :blue_score, :red_score, :turns, :created_at)`,
		m,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*Match, error) {
	var m Match
	err := s.db.Get(&m, `SELECT * FROM matches WHERE match_id = ?`, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
// An empty mode returns matches of every mode.
func (s *Store) RecentMatches(mode string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}

	var matches []Match
	err := s.db.Select(&matches,
		`SELECT * FROM matches
		 WHERE (? = '' OR mode = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return matches, nil
}

// Stats contains aggregated results for one mode (or all modes).
type Stats struct {
	Mode       string
	Matches    int
	BlueWins   int
	RedWins    int
	Unfinished int // turn-limited matches with no winner
	AvgTurns   float64
	LastPlayed time.Time
}

// Stats aggregates win totals per side. An empty mode covers every mode.
func (s *Store) Stats(mode string) (*Stats, error) {
	row := struct {
		Matches  int     `db:"matches"`
		BlueWins int     `db:"blue_wins"`
		RedWins  int     `db:"red_wins"`
		AvgTurns float64 `db:"avg_turns"`
		Last     int64   `db:"last_played"`
	}{}

	err := s.db.Get(&row,
		`SELECT COUNT(*) AS matches,
		        COALESCE(SUM(winner = 'BLUE'), 0) AS blue_wins,
		        COALESCE(SUM(winner = 'RED'), 0) AS red_wins,
		        COALESCE(AVG(turns), 0) AS avg_turns,
		        COALESCE(MAX(created_at), 0) AS last_played
		 FROM matches
		 WHERE (? = '' OR mode = ?)`,
		mode, mode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats := &Stats{
		Mode:       mode,
		Matches:    row.Matches,
		BlueWins:   row.BlueWins,
		RedWins:    row.RedWins,
		Unfinished: row.Matches - row.BlueWins - row.RedWins,
		AvgTurns:   row.AvgTurns,
	}
	if row.Last > 0 {
		stats.LastPlayed = time.Unix(row.Last, 0)
	}
	return stats, nil
}

// ClearMatches deletes recorded matches. An empty mode clears everything.
func (s *Store) ClearMatches(mode string) error {
	_, err := s.db.Exec(`DELETE FROM matches WHERE (? = '' OR mode = ?)`, mode, mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}
