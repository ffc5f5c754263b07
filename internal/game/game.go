// Package game holds the state of one playthrough: the world built for it,
// the player, the room the player stands in and how the session ended.
package game

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lawnchairsociety/tenebrae/internal/content"
	"github.com/lawnchairsociety/tenebrae/internal/help"
	"github.com/lawnchairsociety/tenebrae/internal/logger"
	"github.com/lawnchairsociety/tenebrae/internal/player"
	"github.com/lawnchairsociety/tenebrae/internal/text"
	"github.com/lawnchairsociety/tenebrae/internal/world"
)

// Status is where a game stands.
type Status int

const (
	Playing Status = iota
	Won
	Lost
	Quit
	Disconnected
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Quit:
		return "quit"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Game is a single session's state. It is not safe for concurrent use;
// every session owns its own Game.
type Game struct {
	ID        string
	World     *world.World
	Player    *player.Player
	Rules     *content.Rules
	Text      *text.Text
	Help      *help.Help
	StartedAt time.Time

	currentRoomID string
	status        Status
	log           *slog.Logger
}

// New builds a fresh world from the bundle and places the player at the start.
func New(b *content.Bundle) (*Game, error) {
	w, err := b.NewWorld()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	return &Game{
		ID:            id,
		World:         w,
		Player:        player.NewPlayer(),
		Rules:         b.Rules,
		Text:          b.Text,
		Help:          b.Help,
		StartedAt:     time.Now(),
		currentRoomID: w.StartingRoomID,
		status:        Playing,
		log:           logger.With("session_id", id),
	}, nil
}

// Log returns the session-scoped logger.
func (g *Game) Log() *slog.Logger {
	return g.log
}

// CurrentRoom returns the room the player is in.
func (g *Game) CurrentRoom() *world.Room {
	return g.World.GetRoom(g.currentRoomID)
}

// Start enters the starting room and returns its description.
func (g *Game) Start() string {
	room := g.CurrentRoom()
	return g.describe(room, room.Visit())
}

// MoveTo puts the player in room and returns what they see there.
func (g *Game) MoveTo(room *world.Room) string {
	g.currentRoomID = room.ID
	first := room.Visit()
	g.Player.Statistics.RecordMove(first)
	g.log.Debug("Player moved", "room", room.ID, "first_visit", first)
	return g.describe(room, first)
}

func (g *Game) describe(room *world.Room, firstVisit bool) string {
	if firstVisit && room.Art != "" {
		return room.Art + "\n\n" + room.GetDescription()
	}
	return room.GetDescription()
}

// KillPlayer ends the game in death. The ending is reported by Evaluate.
func (g *Game) KillPlayer(cause string) {
	if !g.Player.IsAlive() {
		return
	}
	g.Player.Die()
	g.log.Info("Player died", "cause", cause, "room", g.currentRoomID)
}

// CheckVictory marks the game won if the player holds the victory item.
func (g *Game) CheckVictory() bool {
	if g.status == Playing && g.Player.HasItem(g.Rules.VictoryItem.Name) {
		g.status = Won
		g.log.Info("Victory item obtained", "room", g.currentRoomID)
	}
	return g.status == Won
}

// Evaluate settles the status before the next command is read.
// Death takes precedence over victory.
func (g *Game) Evaluate() Status {
	if g.status != Playing {
		return g.status
	}
	if !g.Player.IsAlive() {
		g.status = Lost
		return g.status
	}
	g.CheckVictory()
	return g.status
}

// Quit ends the game at the player's request.
func (g *Game) Quit() {
	if g.status == Playing {
		g.status = Quit
	}
}

// Disconnect ends the game because input stopped.
func (g *Game) Disconnect() {
	if g.status == Playing {
		g.status = Disconnected
	}
}

// Status returns the current status without re-evaluating it.
func (g *Game) Status() Status {
	return g.status
}

// IsOver reports whether the game has ended.
func (g *Game) IsOver() bool {
	return g.status != Playing
}

// Ending returns the closing text for the final status.
func (g *Game) Ending() string {
	switch g.status {
	case Won:
		return strings.TrimRight(g.Text.GetVictory(), "\n")
	case Lost:
		return strings.TrimRight(g.Text.GetDeath(), "\n")
	case Quit:
		return strings.TrimRight(g.Text.GetQuit(), "\n")
	default:
		return ""
	}
}

// CurrentRoomID returns the ID of the player's room.
func (g *Game) CurrentRoomID() string {
	return g.currentRoomID
}
