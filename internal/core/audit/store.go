package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/charleschow/loteca-pipeline/internal/telemetry"

	_ "modernc.org/sqlite"
)

// Observation is a raw name that fell through to the fallback formatter.
type Observation struct {
	Key       string
	Raw       string
	Display   string
	Source    string
	RunID     string
	SeenCount int
	FirstSeen time.Time
	LastSeen  time.Time
}

// LearnedAlias is a mapping discovered at runtime, e.g. from the provider.
type LearnedAlias struct {
	Key       string
	Raw       string
	Canonical string
	Source    string
	LearnedAt time.Time
}

// Store persists unresolved names and learned aliases in SQLite. Each Store
// tags its writes with a fresh run ID.
type Store struct {
	db    *sql.DB
	mu    sync.Mutex
	runID string
}

func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS name_observations (
			key        TEXT    PRIMARY KEY,
			raw        TEXT    NOT NULL,
			display    TEXT    NOT NULL,
			source     TEXT    NOT NULL,
			run_id     TEXT    NOT NULL,
			seen_count INTEGER NOT NULL DEFAULT 1,
			first_seen TEXT    NOT NULL,
			last_seen  TEXT    NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_obs_seen ON name_observations(seen_count DESC)`,
		`CREATE TABLE IF NOT EXISTS learned_aliases (
			key        TEXT PRIMARY KEY,
			raw        TEXT NOT NULL,
			canonical  TEXT NOT NULL,
			source     TEXT NOT NULL,
			learned_at TEXT NOT NULL
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema (%s): %w", stmt, err)
		}
	}

	s := &Store{db: db, runID: uuid.NewString()}
	telemetry.Infof("audit store: opened %s  run=%s", path, s.runID)
	return s, nil
}

func (s *Store) RunID() string { return s.runID }

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

func parseTime(v string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, v)
	return t
}

// RecordUnresolved upserts a fallback resolution, bumping its seen count.
// The latest raw spelling and run ID win.
func (s *Store) RecordUnresolved(ctx context.Context, key, raw, display, source string) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO name_observations (key, raw, display, source, run_id, seen_count, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			raw        = excluded.raw,
			display    = excluded.display,
			source     = excluded.source,
			run_id     = excluded.run_id,
			seen_count = name_observations.seen_count + 1,
			last_seen  = excluded.last_seen`,
		key, raw, display, source, s.runID, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("record unresolved %q: %w", key, err)
	}
	return nil
}

// Learn stores a runtime alias and clears the key from the unresolved list.
func (s *Store) Learn(ctx context.Context, key, raw, canonical, source string) error {
	if key == "" || canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO learned_aliases (key, raw, canonical, source, learned_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			raw = excluded.raw, canonical = excluded.canonical,
			source = excluded.source, learned_at = excluded.learned_at`,
		key, raw, canonical, source, now(),
	); err != nil {
		return fmt.Errorf("learn %q: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM name_observations WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear observation %q: %w", key, err)
	}
	return tx.Commit()
}

// LearnedAliases returns every learned alias, oldest first.
func (s *Store) LearnedAliases(ctx context.Context) ([]LearnedAlias, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, raw, canonical, source, learned_at FROM learned_aliases ORDER BY learned_at, key`)
	if err != nil {
		return nil, fmt.Errorf("query learned aliases: %w", err)
	}
	defer rows.Close()

	var out []LearnedAlias
	for rows.Next() {
		var la LearnedAlias
		var ts string
		if err := rows.Scan(&la.Key, &la.Raw, &la.Canonical, &la.Source, &ts); err != nil {
			return nil, fmt.Errorf("scan learned alias: %w", err)
		}
		la.LearnedAt = parseTime(ts)
		out = append(out, la)
	}
	return out, rows.Err()
}

// Unresolved lists observations, most frequently seen first. limit <= 0
// returns all.
func (s *Store) Unresolved(ctx context.Context, limit int) ([]Observation, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, raw, display, source, run_id, seen_count, first_seen, last_seen
		FROM name_observations ORDER BY seen_count DESC, key LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var out []Observation
	for rows.Next() {
		var o Observation
		var first, last string
		if err := rows.Scan(&o.Key, &o.Raw, &o.Display, &o.Source, &o.RunID, &o.SeenCount, &first, &last); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		o.FirstSeen = parseTime(first)
		o.LastSeen = parseTime(last)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
