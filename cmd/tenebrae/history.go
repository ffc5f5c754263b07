package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/lawnchairsociety/tenebrae/internal/database"
)

func printHistory(ctx context.Context, w io.Writer, db *database.Database, limit int) error {
	sessions, err := db.RecentSessions(ctx, limit)
	if err != nil {
		return err
	}
	counts, err := db.OutcomeCounts(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, formatHistory(sessions, counts, time.Now()))
	return err
}

// formatHistory renders recorded sessions as a table followed by a tally of
// outcomes. Times are shown relative to now.
func formatHistory(sessions []database.SessionRecord, counts []database.OutcomeCount, now time.Time) string {
	if len(sessions) == 0 {
		return "No sessions recorded yet.\n"
	}

	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		Headers("ENDED", "OUTCOME", "TURNS", "ROOM", "TRANSPORT", "DURATION")
	for _, s := range sessions {
		t.Row(
			humanize.RelTime(s.EndedAt, now, "ago", "from now"),
			s.Outcome,
			strconv.Itoa(s.Turns),
			s.FinalRoom,
			s.Transport,
			s.Duration().Round(time.Second).String(),
		)
	}

	out := t.Render() + "\n"
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	for _, c := range counts {
		out += fmt.Sprintf("%-12s %s\n", c.Outcome, humanize.Comma(int64(c.Count)))
	}
	out += fmt.Sprintf("%-12s %s\n", "total", humanize.Comma(int64(total)))
	return out
}
