// internal/store/sqlite.go
//
// SQLite implementation of Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Stats row upkeep and game history queries.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/game"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var _ Store = (*SQLite)(nil)

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and
// applies the embedded migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// openDB ensures the parent directory exists and opens the file with a busy
// timeout and WAL journaling.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies *.sql files from migrations in lexical order, skipping any
// already recorded in _migrations. Each file runs in its own transaction.
func migrate(ctx context.Context, db *sql.DB, migrations fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(migrations, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

func (s *SQLite) LoadStats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT games_played, wins, losses, total_score FROM stats WHERE id = 1`,
	).Scan(&st.GamesPlayed, &st.Wins, &st.Losses, &st.TotalScore)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return st, nil
}

func (s *SQLite) SaveStats(ctx context.Context, st Stats) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO stats (id, games_played, wins, losses, total_score, updated_at)
        VALUES (1, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            games_played = excluded.games_played,
            wins         = excluded.wins,
            losses       = excluded.losses,
            total_score  = excluded.total_score,
            updated_at   = excluded.updated_at`,
		st.GamesPlayed, st.Wins, st.Losses, st.TotalScore, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

func (s *SQLite) ResetStats(ctx context.Context) error {
	return s.SaveStats(ctx, Stats{})
}

func (s *SQLite) SaveGame(ctx context.Context, r GameRecord) error {
	guesses, err := json.Marshal(r.Guesses)
	if err != nil {
		return fmt.Errorf("encode guesses: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO games
            (id, number, category, word, status, wrong_count, score, forfeited, guesses, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Number, r.Category, r.Word, string(r.Status), r.WrongCount, r.Score, r.Forfeited,
		string(guesses), r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", r.ID, err)
	}
	return nil
}

const gameColumns = `id, number, category, word, status, wrong_count, score, forfeited, guesses, started_at, finished_at`

func (s *SQLite) GetGame(ctx context.Context, id string) (GameRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	r, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GameRecord{}, ErrNotFound
	}
	return r, err
}

func (s *SQLite) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+gameColumns+`
        FROM games
        ORDER BY finished_at DESC, number DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GameRecord, 0, limit)
	for rows.Next() {
		r, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLite) NextGameNumber(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next game number: %w", err)
	}
	return n + 1, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanGame converts one games row into a GameRecord.
func scanGame(row rowScanner) (GameRecord, error) {
	var (
		r                 GameRecord
		status, guesses   string
		started, finished string
	)
	if err := row.Scan(&r.ID, &r.Number, &r.Category, &r.Word, &status, &r.WrongCount, &r.Score,
		&r.Forfeited, &guesses, &started, &finished); err != nil {
		return GameRecord{}, err
	}
	r.Status = game.Status(status)
	if err := json.Unmarshal([]byte(guesses), &r.Guesses); err != nil {
		return GameRecord{}, fmt.Errorf("decode guesses for %s: %w", r.ID, err)
	}
	var err error
	if r.StartedAt, err = parseTime(started); err != nil {
		return GameRecord{}, fmt.Errorf("game %s started_at: %w", r.ID, err)
	}
	if r.FinishedAt, err = parseTime(finished); err != nil {
		return GameRecord{}, fmt.Errorf("game %s finished_at: %w", r.ID, err)
	}
	return r, nil
}

// parseTime reads a timestamp written with timeLayout.
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
