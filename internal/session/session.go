// Package session runs the main menu and game loop over a Client.
package session

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/lawnchairsociety/tenebrae/internal/command"
	"github.com/lawnchairsociety/tenebrae/internal/content"
	"github.com/lawnchairsociety/tenebrae/internal/database"
	"github.com/lawnchairsociety/tenebrae/internal/game"
	"github.com/lawnchairsociety/tenebrae/internal/logger"
	"github.com/lawnchairsociety/tenebrae/internal/render"
)

const recordTimeout = 5 * time.Second

// Recorder stores finished sessions. *database.Database satisfies it.
type Recorder interface {
	RecordSession(ctx context.Context, rec database.SessionRecord) error
}

// Options configures the sessions run over one client.
type Options struct {
	Content    *content.Bundle
	Renderer   *render.Renderer
	Recorder   Recorder // nil disables recording
	Transport  string   // "console", "telnet" or "websocket"
	RemoteAddr string
}

// RunMenu shows the main menu until the player quits or input ends.
// End of input is a clean exit; other read errors are returned.
func RunMenu(ctx context.Context, client Client, opts Options) error {
	txt := opts.Content.Text
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		banner := opts.Renderer.Banner(txt.GetMenuLines(), txt.GetTitle())
		if err := client.WriteLine("\n\n" + banner + "\n" + txt.GetMenuPrompt()); err != nil {
			return err
		}

		line, err := client.ReadLine()
		if err != nil {
			if isEndOfInput(err) {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		choice := 0
		if len(fields) > 0 {
			choice, err = strconv.Atoi(fields[0])
		}
		if len(fields) == 0 || err != nil {
			if err := client.WriteLine(txt.GetInvalidInput() + "\n"); err != nil {
				return err
			}
			continue
		}

		switch choice {
		case 1:
			if _, err := Play(ctx, client, opts); err != nil {
				return err
			}
		case 2:
			return client.WriteLine("\n" + txt.GetQuitting() + "\n")
		default:
			if err := client.WriteLine(txt.GetInvalidChoice() + "\n"); err != nil {
				return err
			}
		}
	}
}

// Play runs one game to completion and returns how it ended. A closed input
// ends the game as disconnected and is not an error.
func Play(ctx context.Context, client Client, opts Options) (game.Status, error) {
	g, err := game.New(opts.Content)
	if err != nil {
		return game.Disconnected, err
	}
	log := g.Log().With("transport", opts.Transport)
	log.Info("Session started", "remote_addr", opts.RemoteAddr)

	r := opts.Renderer
	intro := r.Wrap(g.Text.GetIntro()) + "\n\n" + r.Wrap(g.Start()) + "\n"
	writeErr := client.WriteLine("\n" + intro)

	var readErr error
	for writeErr == nil {
		if ctx.Err() != nil {
			g.Disconnect()
			break
		}
		if g.Evaluate() != game.Playing {
			break
		}

		if writeErr = client.WriteLine("\n" + g.Text.GetGamePrompt()); writeErr != nil {
			break
		}
		line, err := client.ReadLine()
		if err != nil {
			g.Disconnect()
			if !isEndOfInput(err) {
				readErr = err
			}
			break
		}

		cmd := command.ParseCommand(line)
		if cmd.IsEmpty() {
			continue
		}
		if out := cmd.Execute(g); out != "" {
			writeErr = client.WriteLine("\n" + r.Wrap(out) + "\n")
		}
	}
	if writeErr != nil {
		g.Disconnect()
	}

	if ending := g.Ending(); ending != "" && writeErr == nil {
		switch g.Status() {
		case game.Won:
			ending = r.Victory(ending)
		case game.Lost:
			ending = r.Death(ending)
		default:
			ending = r.Wrap(ending)
		}
		writeErr = client.WriteLine("\n" + ending + "\n")
	}

	log.Log(ctx, logger.LevelAlways, "Session ended",
		"outcome", g.Status().String(),
		"turns", g.Player.Statistics.Turns,
		"room", g.CurrentRoomID(),
		"duration", time.Since(g.StartedAt).Round(time.Millisecond))
	record(ctx, g, opts)

	if readErr != nil {
		return g.Status(), readErr
	}
	if writeErr != nil && !isEndOfInput(writeErr) {
		return g.Status(), writeErr
	}
	return g.Status(), nil
}

// record stores the finished game. Failures are logged, never returned.
func record(ctx context.Context, g *game.Game, opts Options) {
	if opts.Recorder == nil {
		return
	}

	stats, err := g.Player.Statistics.ToJSON()
	if err != nil {
		g.Log().Warn("Failed to encode session statistics", "error", err)
		stats = "{}"
	}

	rec := database.SessionRecord{
		ID:         g.ID,
		Transport:  opts.Transport,
		RemoteAddr: opts.RemoteAddr,
		Outcome:    g.Status().String(),
		Turns:      g.Player.Statistics.Turns,
		FinalRoom:  g.CurrentRoomID(),
		Inventory:  strings.Join(g.Player.ItemNames(), ", "),
		Statistics: stats,
		StartedAt:  g.StartedAt,
		EndedAt:    time.Now(),
	}

	// Record even when the session was cut short by shutdown.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := opts.Recorder.RecordSession(rctx, rec); err != nil {
		logger.Warning("Failed to record session", "session_id", g.ID, "error", err)
	}
}

func isEndOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
