// Package analytics records privacy-conscious visitor and copy-chip metrics
// in a local sqlite database.
package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("analytics: not found")

// Visit is one tracked page view. The client IP is never stored, only its
// salted hash.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalVisitors    int64        `json:"total_visitors"`
	UniqueVisitors   int64        `json:"unique_visitors"`
	VisitorsToday    int64        `json:"visitors_today"`
	VisitorsThisWeek int64        `json:"visitors_this_week"`
	TotalCopies      int64        `json:"total_copies"`
	Copies           []LabelCount `json:"copies"`
	RecentVisitors   []Visit      `json:"recent_visitors"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

type StoreOption func(*Store)

// WithNow overrides the clock used for timestamps and time windows.
func WithNow(now func() time.Time) StoreOption { return func(s *Store) { s.now = now } }

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string, opts ...StoreOption) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// one writer; also keeps a :memory: database alive across calls
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA busy_timeout = 5000`,
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT NOT NULL DEFAULT '',
			path TEXT NOT NULL DEFAULT '',
			ts INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_ts ON visitors (ts)`,
		`CREATE TABLE IF NOT EXISTS copy_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			hashed_ip TEXT NOT NULL,
			ts INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS copy_events_ts ON copy_events (ts)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// RecordVisit stores v; a zero Timestamp means now.
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	ts := v.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, ts.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

func (s *Store) RecordCopy(ctx context.Context, label, hashedIP string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO copy_events (label, hashed_ip, ts) VALUES (?, ?, ?)`,
		label, hashedIP, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record copy: %w", err)
	}
	return nil
}

// Visit returns a single visit by id.
func (s *Store) Visit(ctx context.Context, id int64) (Visit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, hashed_ip, user_agent, path, ts FROM visitors WHERE id = ?`, id)
	v, err := scanVisit(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Visit{}, ErrNotFound
	}
	return v, err
}

// RecentVisitors returns up to limit visits, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hashed_ip, user_agent, path, ts FROM visitors ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		v, err := scanVisit(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVisit(scan func(dest ...any) error) (Visit, error) {
	var (
		v  Visit
		ts int64
	)
	if err := scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
		return Visit{}, err
	}
	v.Timestamp = time.Unix(ts, 0).UTC()
	return v, nil
}

// Stats aggregates everything the admin dashboard shows.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{dayStart.Unix()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{weekStart.Unix()}},
		{&stats.TotalCopies, `SELECT COUNT(*) FROM copy_events`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, COUNT(*) AS n FROM copy_events GROUP BY label ORDER BY n DESC, label`)
	if err != nil {
		return nil, fmt.Errorf("stats copies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("stats copies: %w", err)
		}
		stats.Copies = append(stats.Copies, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats copies: %w", err)
	}

	stats.RecentVisitors, err = s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Cleanup deletes every record older than before and reports how many rows
// went away.
func (s *Store) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for _, table := range []string{"visitors", "copy_events"} {
		res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE ts < ?`, before.Unix())
		if err != nil {
			return 0, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}
	return total, nil
}
