// Package store handles SQLite persistence of the session history log.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/verte-zerg/rootdrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session data.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
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
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			courses TEXT NOT NULL,
			study INTEGER NOT NULL,
			fast INTEGER NOT NULL,
			pressed INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_item_stats (
			session_id INTEGER NOT NULL,
			problem TEXT NOT NULL,
			answer TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (session_id, problem, answer)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_item_stats_problem ON session_item_stats(problem);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and its per-problem stats.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, items []model.ItemStats) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, courses, study, fast, pressed, correct, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Courses,
		stats.Study,
		stats.Fast,
		stats.Pressed,
		stats.Correct,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(items) > 0 {
		var stmt *sqlx.Stmt
		stmt, err = tx.PreparexContext(ctx,
			`INSERT INTO session_item_stats (session_id, problem, answer, correct, incorrect, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, it := range items {
			if _, err = stmt.ExecContext(ctx, id, it.Problem, it.Answer, it.Correct, it.Incorrect, it.LatencySumMs, it.LatencyCount); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

type sessionRow struct {
	ID         int64  `db:"id"`
	EndedAt    string `db:"ended_at"`
	Courses    string `db:"courses"`
	Pressed    int    `db:"pressed"`
	Correct    int    `db:"correct"`
	DurationMs int64  `db:"duration_ms"`
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Course != "" {
		clauses = append(clauses, "(',' || courses || ',') LIKE ?")
		args = append(args, "%,"+cfg.Course+",%")
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, courses, pressed, correct, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))

	var rows []sessionRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	sessions := make([]model.SessionAggregate, 0, len(rows))
	for _, row := range rows {
		endedAt, err := time.Parse(time.RFC3339Nano, row.EndedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, model.SessionAggregate{
			SessionID:  row.ID,
			EndedAt:    endedAt,
			Courses:    row.Courses,
			Pressed:    row.Pressed,
			Correct:    row.Correct,
			DurationMs: row.DurationMs,
		})
	}
	return sessions, nil
}

// ListItemAggregatesForSessions aggregates per-problem stats across sessions.
func (s *Store) ListItemAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.ItemAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT problem, answer, SUM(correct) AS correct, SUM(incorrect) AS incorrect,
		SUM(latency_sum_ms) AS latency_sum_ms, SUM(latency_count) AS latency_count
		FROM session_item_stats
		WHERE session_id IN (?)
		GROUP BY problem, answer
		ORDER BY problem, answer`, sessionIDs)
	if err != nil {
		return nil, err
	}
	var result []model.ItemAggregate
	if err := s.db.SelectContext(ctx, &result, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return result, nil
}
