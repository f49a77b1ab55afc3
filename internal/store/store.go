// Package store provides SQLite persistence for confirmed player mappings.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"league-recon/internal/resolve/model"
)

// Store writes confirmed match decisions as player links. Safe for
// concurrent use via an internal mutex; the engine itself is single-threaded
// but HTTP handlers are not.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Link is one persisted external-identifier attachment on a target record.
type Link struct {
	TargetOrigin string
	TargetID     string
	System       string
	ExternalID   string
	Score        float64
	Basis        string
	DecidedAt    time.Time
}

// Open creates a Store at the given database path, creating tables as
// needed. ":memory:" is supported for tests.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// shared cache so every pooled connection sees the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS player_links (
		target_origin TEXT NOT NULL,
		target_id     TEXT NOT NULL,
		system        TEXT NOT NULL,
		external_id   TEXT NOT NULL,
		score         REAL NOT NULL,
		basis         TEXT NOT NULL,
		decided_at    DATETIME NOT NULL,
		UNIQUE(target_origin, target_id, system)
	);

	CREATE INDEX IF NOT EXISTS idx_links_target ON player_links(target_origin, target_id);
	CREATE INDEX IF NOT EXISTS idx_links_system ON player_links(system, external_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Apply upserts the source record's identifiers onto the decision's target:
// the source system's own id plus every external id the source carries.
// Idempotent via the UNIQUE constraint; re-applying the same confirmed
// mapping updates the row in place instead of creating a duplicate link.
// Implements the resolution workflow's Sink.
func (s *Store) Apply(ctx context.Context, d model.MatchDecision) error {
	if d.Target == nil {
		return fmt.Errorf("apply %q: decision has no target", d.Source.SourceID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
	INSERT INTO player_links (target_origin, target_id, system, external_id, score, basis, decided_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(target_origin, target_id, system) DO UPDATE SET
		external_id = excluded.external_id,
		score       = excluded.score,
		basis       = excluded.basis,
		decided_at  = excluded.decided_at`

	now := time.Now().UTC()
	write := func(system, id string) error {
		if system == "" || id == "" {
			return nil
		}
		_, err := tx.ExecContext(ctx, upsert,
			d.Target.Origin, d.Target.SourceID, system, id,
			d.Similarity.Score, string(d.Similarity.Basis), now)
		return err
	}

	if err := write(d.Source.Origin, d.Source.SourceID); err != nil {
		return fmt.Errorf("link %s/%s: %w", d.Source.Origin, d.Source.SourceID, err)
	}
	for sys, id := range d.Source.ExternalIDs {
		if err := write(sys, id); err != nil {
			return fmt.Errorf("link %s/%s: %w", sys, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Links returns every identifier recorded for one target record, ordered by
// system name.
func (s *Store) Links(ctx context.Context, targetOrigin, targetID string) ([]Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT target_origin, target_id, system, external_id, score, basis, decided_at
		FROM player_links
		WHERE target_origin = ? AND target_id = ?
		ORDER BY system`, targetOrigin, targetID)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var out []Link
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.TargetOrigin, &l.TargetID, &l.System, &l.ExternalID, &l.Score, &l.Basis, &l.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
