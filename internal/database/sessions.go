package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateSession is returned when a session ID is recorded twice.
var ErrDuplicateSession = errors.New("session already recorded")

// SessionRecord is one finished playthrough.
type SessionRecord struct {
	ID         string
	Transport  string
	RemoteAddr string
	Outcome    string
	Turns      int
	FinalRoom  string
	Inventory  string
	Statistics string // JSON
	StartedAt  time.Time
	EndedAt    time.Time
}

// Duration returns how long the session lasted.
func (r SessionRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// OutcomeCount is the number of sessions that ended a given way.
type OutcomeCount struct {
	Outcome string
	Count   int
}

// RecordSession stores a finished session.
func (d *Database) RecordSession(ctx context.Context, rec SessionRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if rec.Statistics == "" {
		rec.Statistics = "{}"
	}

	query := d.qb.Build(`INSERT INTO sessions
		(id, transport, remote_addr, outcome, turns, final_room, inventory, statistics, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := d.db.ExecContext(ctx, query,
		rec.ID, rec.Transport, rec.RemoteAddr, rec.Outcome, rec.Turns,
		rec.FinalRoom, rec.Inventory, rec.Statistics,
		rec.StartedAt.UnixMilli(), rec.EndedAt.UnixMilli())
	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return ErrDuplicateSession
		}
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// GetSession loads one session by ID. Returns sql.ErrNoRows if absent.
func (d *Database) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	query := d.qb.Build(`SELECT id, transport, remote_addr, outcome, turns, final_room,
		inventory, statistics, started_at, ended_at FROM sessions WHERE id = ?`)

	rec, err := scanSession(d.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return rec, nil
}

// RecentSessions returns up to limit sessions, most recently ended first.
func (d *Database) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := d.qb.Build(`SELECT id, transport, remote_addr, outcome, turns, final_room,
		inventory, statistics, started_at, ended_at FROM sessions
		ORDER BY ended_at DESC, id LIMIT ?`)

	rows, err := d.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// OutcomeCounts tallies sessions by outcome, ordered by outcome name.
func (d *Database) OutcomeCounts(ctx context.Context) ([]OutcomeCount, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT outcome, COUNT(*) FROM sessions GROUP BY outcome ORDER BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("failed to count outcomes: %w", err)
	}
	defer rows.Close()

	var counts []OutcomeCount
	for rows.Next() {
		var c OutcomeCount
		if err := rows.Scan(&c.Outcome, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var rec SessionRecord
	var started, ended int64
	err := row.Scan(&rec.ID, &rec.Transport, &rec.RemoteAddr, &rec.Outcome, &rec.Turns,
		&rec.FinalRoom, &rec.Inventory, &rec.Statistics, &started, &ended)
	if err != nil {
		return nil, err
	}
	rec.StartedAt = time.UnixMilli(started)
	rec.EndedAt = time.UnixMilli(ended)
	return &rec, nil
}
