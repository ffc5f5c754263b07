// Package command interprets one line of player input against a game.
package command

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lawnchairsociety/tenebrae/internal/game"
)

// Command is one line of player input, lower-cased and trimmed.
type Command struct {
	Input string
}

// ParseCommand normalizes raw input.
func ParseCommand(input string) *Command {
	return &Command{
		Input: cases.Lower(language.Und).String(strings.TrimSpace(input)),
	}
}

// IsEmpty reports whether the line had nothing on it.
func (c *Command) IsEmpty() bool {
	return c.Input == ""
}

// Contains reports whether any of the phrases appears anywhere in the input.
func (c *Command) Contains(phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(c.Input, p) {
			return true
		}
	}
	return false
}

// Is reports whether the whole input equals one of the phrases.
func (c *Command) Is(phrases ...string) bool {
	for _, p := range phrases {
		if c.Input == p {
			return true
		}
	}
	return false
}

// Remainder returns everything after the first space.
func (c *Command) Remainder() (string, bool) {
	_, rest, found := strings.Cut(c.Input, " ")
	return rest, found
}

// route pairs a predicate with its handler. Routes are tried in order and
// the first match wins, so an earlier route shadows any later one whose
// keyword it also contains ("look north" searches, it does not move).
type route struct {
	name    string
	matches func(c *Command, g *game.Game) bool
	execute func(c *Command, g *game.Game) string
}

var routes = []route{
	{"search", contains("search", "find", "look"), executeSearch},
	{"take", contains("take"), executeTake},
	{"inventory", contains("inventory"), executeInventory},
	{"open", contains("open", "use key"), executeOpen},
	{"move", hasDirection, executeMove},
	{"talk", contains("talk", "ask"), executeTalk},
	{"give", contains("give"), executeGive},
	{"self-harm", contains("kill self", "kill myself", "suicide"), executeSelfHarm},
	{"attack", contains("attack", "kill"), executeAttack},
	{"drink", drinksPoison, executeDrink},
	{"quit", equals("quit", "exit", "quit game"), executeQuit},
	{"help", contains("help"), executeHelp},
}

func contains(phrases ...string) func(*Command, *game.Game) bool {
	return func(c *Command, _ *game.Game) bool {
		return c.Contains(phrases...)
	}
}

func equals(phrases ...string) func(*Command, *game.Game) bool {
	return func(c *Command, _ *game.Game) bool {
		return c.Is(phrases...)
	}
}

// Route returns the name of the handler the input dispatches to, or
// "fallback" when nothing matches.
func (c *Command) Route(g *game.Game) string {
	if r := c.match(g); r != nil {
		return r.name
	}
	return "fallback"
}

func (c *Command) match(g *game.Game) *route {
	for i := range routes {
		if routes[i].matches(c, g) {
			return &routes[i]
		}
	}
	return nil
}

// Execute runs the command against g and returns the feedback text.
func (c *Command) Execute(g *game.Game) string {
	g.Player.Statistics.RecordTurn()

	r := c.match(g)
	if r == nil {
		return g.Text.GetFallback()
	}
	g.Log().Debug("Command dispatched", "route", r.name, "input", c.Input, "room", g.CurrentRoomID())
	return r.execute(c, g)
}

func executeQuit(c *Command, g *game.Game) string {
	g.Quit()
	return ""
}

func executeHelp(c *Command, g *game.Game) string {
	topic := ""
	if strings.HasPrefix(c.Input, "help ") {
		topic = strings.TrimSpace(strings.TrimPrefix(c.Input, "help "))
	}
	return g.Help.GetHelpText(topic)
}
