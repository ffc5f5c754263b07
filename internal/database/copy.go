package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CopyResult counts what CopySessions did.
type CopyResult struct {
	Copied  int
	Skipped int // Already present in the destination
}

// EachSession calls fn for every recorded session in start order and stops
// at the first error.
func (d *Database) EachSession(ctx context.Context, fn func(SessionRecord) error) error {
	rows, err := d.db.QueryContext(ctx, `SELECT id, transport, remote_addr, outcome, turns, final_room,
		inventory, statistics, started_at, ended_at FROM sessions ORDER BY started_at, id`)
	if err != nil {
		return fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return fmt.Errorf("failed to scan session: %w", err)
		}
		if err := fn(*rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CopySessions copies every session from src into dst. Sessions dst already
// holds are skipped, so an interrupted copy can be rerun. With dryRun
// nothing is written.
func CopySessions(ctx context.Context, src, dst *Database, dryRun bool) (CopyResult, error) {
	var result CopyResult

	err := src.EachSession(ctx, func(rec SessionRecord) error {
		if dryRun {
			_, err := dst.GetSession(ctx, rec.ID)
			switch {
			case err == nil:
				result.Skipped++
			case errors.Is(err, sql.ErrNoRows):
				result.Copied++
			default:
				return err
			}
			return nil
		}

		err := dst.RecordSession(ctx, rec)
		switch {
		case err == nil:
			result.Copied++
		case errors.Is(err, ErrDuplicateSession):
			result.Skipped++
		default:
			return fmt.Errorf("session %s: %w", rec.ID, err)
		}
		return nil
	})
	return result, err
}
