// Package store handles SQLite persistence of test results.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"keydrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for test results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			finished_at TEXT NOT NULL,
			wpm REAL NOT NULL,
			raw_accuracy REAL NOT NULL,
			raw_valid INTEGER NOT NULL,
			raw_mistakes INTEGER NOT NULL,
			raw_typed INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			valid_chars INTEGER NOT NULL,
			mistakes INTEGER NOT NULL,
			typed_chars INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL,
			numbers INTEGER NOT NULL,
			numbers_ratio REAL NOT NULL,
			uppercase INTEGER NOT NULL,
			uppercase_ratio REAL NOT NULL,
			symbols INTEGER NOT NULL,
			symbols_ratio REAL NOT NULL,
			dictionary_path TEXT NOT NULL,
			completed INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_finished_at ON results(finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertResult stores a finished test.
func (s *Store) InsertResult(ctx context.Context, r model.Results) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (finished_at, wpm, raw_accuracy, raw_valid, raw_mistakes, raw_typed,
			accuracy, valid_chars, mistakes, typed_chars,
			duration_secs, numbers, numbers_ratio, uppercase, uppercase_ratio, symbols, symbols_ratio,
			dictionary_path, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.FinishedAt.Format(time.RFC3339Nano),
		r.Stats.WPM,
		r.Stats.RawAccuracy,
		r.Stats.RawValidCharacters,
		r.Stats.RawMistakes,
		r.Stats.RawTypedCharacters,
		r.Stats.Accuracy,
		r.Stats.ValidCharacters,
		r.Stats.Mistakes,
		r.Stats.TypedCharacters,
		r.DurationSecs,
		r.Numbers,
		r.NumbersRatio,
		r.Uppercase,
		r.UppercaseRatio,
		r.Symbols,
		r.SymbolsRatio,
		r.DictionaryPath,
		r.Completed,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListResults returns past results ordered from oldest to newest,
// optionally limited to the most recent N.
func (s *Store) ListResults(ctx context.Context, filter model.HistoryFilter) ([]model.Results, error) {
	query := `SELECT finished_at, wpm, raw_accuracy, raw_valid, raw_mistakes, raw_typed,
			accuracy, valid_chars, mistakes, typed_chars,
			duration_secs, numbers, numbers_ratio, uppercase, uppercase_ratio, symbols, symbols_ratio,
			dictionary_path, completed
		FROM results`
	args := []any{}
	if filter.Last > 0 {
		query += ` WHERE id IN (SELECT id FROM results ORDER BY finished_at DESC LIMIT ?)`
		args = append(args, filter.Last)
	}
	query += ` ORDER BY finished_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.Results
	for rows.Next() {
		var r model.Results
		var finishedAt string
		if err := rows.Scan(
			&finishedAt,
			&r.Stats.WPM,
			&r.Stats.RawAccuracy,
			&r.Stats.RawValidCharacters,
			&r.Stats.RawMistakes,
			&r.Stats.RawTypedCharacters,
			&r.Stats.Accuracy,
			&r.Stats.ValidCharacters,
			&r.Stats.Mistakes,
			&r.Stats.TypedCharacters,
			&r.DurationSecs,
			&r.Numbers,
			&r.NumbersRatio,
			&r.Uppercase,
			&r.UppercaseRatio,
			&r.Symbols,
			&r.SymbolsRatio,
			&r.DictionaryPath,
			&r.Completed,
		); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		r.FinishedAt = parsed
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
