package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseMu guards goose's package-level configuration.
var gooseMu sync.Mutex

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions share one store; a single connection serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) conn() (*sql.DB, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	return s.db, nil
}

func (s *Store) stat(key string) (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	var v int
	err = db.QueryRow("SELECT value FROM stats WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return v, nil
}

func setStat(ex interface {
	Exec(string, ...any) (sql.Result, error)
}, key string, v int) error {
	_, err := ex.Exec(
		`INSERT INTO stats (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, v,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// HighScore returns the stored high score, 0 if none.
func (s *Store) HighScore() (int, error) {
	return s.stat("high_score")
}

// SetHighScore overwrites the stored high score.
func (s *Store) SetHighScore(score int) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return setStat(db, "high_score", score)
}

// IncrementGamesPlayed adds one to the games-played counter and returns the
// new value.
func (s *Store) IncrementGamesPlayed() (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	if _, err := db.Exec("UPDATE stats SET value = value + 1 WHERE key = 'games_played'"); err != nil {
		return 0, fmt.Errorf("storage: cannot increment games played: %w", err)
	}
	return s.stat("games_played")
}

// RecordStreak applies a finished game's score to the streak counters.
func (s *Store) RecordStreak(score int) (Summary, error) {
	sum, err := s.Summary()
	if err != nil {
		return Summary{}, err
	}
	sum = nextStreak(sum, score)

	db, err := s.conn()
	if err != nil {
		return Summary{}, err
	}
	tx, err := db.Begin()
	if err != nil {
		return Summary{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := setStat(tx, "current_streak", sum.CurrentStreak); err != nil {
		return Summary{}, err
	}
	if err := setStat(tx, "best_streak", sum.BestStreak); err != nil {
		return Summary{}, err
	}
	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("storage: cannot commit streak: %w", err)
	}
	return sum, nil
}

// Summary returns all counters.
func (s *Store) Summary() (Summary, error) {
	db, err := s.conn()
	if err != nil {
		return Summary{}, err
	}
	rows, err := db.Query("SELECT key, value FROM stats")
	if err != nil {
		return Summary{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var sum Summary
	for rows.Next() {
		var key string
		var v int
		if err := rows.Scan(&key, &v); err != nil {
			return Summary{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		switch key {
		case "high_score":
			sum.HighScore = v
		case "games_played":
			sum.GamesPlayed = v
		case "best_streak":
			sum.BestStreak = v
		case "current_streak":
			sum.CurrentStreak = v
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sum, nil
}

// AppendEntry records a finished game on the leaderboard and trims it back
// to LeaderboardSize rows. The returned rank is 1-based, or 0 when the score
// did not make the board.
func (s *Store) AppendEntry(name string, score int, at time.Time) (Entry, int, error) {
	db, err := s.conn()
	if err != nil {
		return Entry{}, 0, err
	}
	if at.IsZero() {
		at = s.now()
	}
	e := Entry{
		ID:        uuid.New().String(),
		Name:      NormalizeName(name),
		Score:     score,
		CreatedAt: at.UTC(),
	}

	tx, err := db.Begin()
	if err != nil {
		return Entry{}, 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO leaderboard (id, name, score, created_at) VALUES (?, ?, ?, ?)",
		e.ID, e.Name, e.Score, e.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return Entry{}, 0, fmt.Errorf("storage: cannot save entry: %w", err)
	}
	if _, err := tx.Exec(
		`DELETE FROM leaderboard WHERE seq NOT IN (
		   SELECT seq FROM leaderboard ORDER BY score DESC, seq ASC LIMIT ?
		 )`,
		LeaderboardSize,
	); err != nil {
		return Entry{}, 0, fmt.Errorf("storage: cannot trim leaderboard: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, 0, fmt.Errorf("storage: cannot commit entry: %w", err)
	}

	board, err := s.Leaderboard()
	if err != nil {
		return e, 0, err
	}
	return e, Rank(board, e.ID), nil
}

// RenameEntry changes the name on an existing entry. Renaming an entry that
// has dropped off the board is a no-op.
func (s *Store) RenameEntry(id, name string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.Exec("UPDATE leaderboard SET name = ? WHERE id = ?", NormalizeName(name), id); err != nil {
		return fmt.Errorf("storage: cannot rename entry: %w", err)
	}
	return nil
}

// Leaderboard returns the board, best first.
func (s *Store) Leaderboard() ([]Entry, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(
		`SELECT id, name, score, created_at
		 FROM leaderboard
		 ORDER BY score DESC, seq ASC
		 LIMIT ?`,
		LeaderboardSize,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = parsed
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Clear deletes the leaderboard and zeroes every counter.
func (s *Store) Clear() error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM leaderboard"); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	if _, err := db.Exec("UPDATE stats SET value = 0"); err != nil {
		return fmt.Errorf("storage: cannot clear stats: %w", err)
	}
	return nil
}
