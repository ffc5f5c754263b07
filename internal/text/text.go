// Package text provides loading and lookup for externalized text blocks.
package text

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TextData represents the structure of the text.yaml file.
type TextData struct {
	Menu    MenuText    `yaml:"menu"`
	Game    GameText    `yaml:"game"`
	Endings EndingsText `yaml:"endings"`
}

// MenuText contains the main menu screen.
type MenuText struct {
	Border        string   `yaml:"border"`
	Title         string   `yaml:"title"`
	Subtitle      string   `yaml:"subtitle"`
	Options       []string `yaml:"options"`
	Instructions  string   `yaml:"instructions"`
	Prompt        string   `yaml:"prompt"`
	InvalidInput  string   `yaml:"invalid_input"`
	InvalidChoice string   `yaml:"invalid_choice"`
	Quitting      string   `yaml:"quitting"`
}

// GameText contains in-session narration.
type GameText struct {
	Intro       string `yaml:"intro"`
	Prompt      string `yaml:"prompt"`
	Retaliation string `yaml:"retaliation"` // %s is the NPC name
	Fallback    string `yaml:"fallback"`
}

// EndingsText contains the text shown when a session ends.
type EndingsText struct {
	Victory string `yaml:"victory"`
	Death   string `yaml:"death"`
	Quit    string `yaml:"quit"`
}

// Text provides text lookup functionality.
type Text struct {
	data *TextData
}

// Load loads text data from a YAML file.
func Load(path string) (*Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return Parse(data)
}

// LoadFS loads text data from a file inside fsys.
func LoadFS(fsys fs.FS, name string) (*Text, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return Parse(data)
}

// Parse parses text data.
func Parse(data []byte) (*Text, error) {
	var textData TextData
	if err := yaml.Unmarshal(data, &textData); err != nil {
		return nil, fmt.Errorf("failed to parse text file: %w", err)
	}
	return &Text{data: &textData}, nil
}

// GetMenuLines returns the menu screen, one entry per line, for centering.
func (t *Text) GetMenuLines() []string {
	m := t.data.Menu
	lines := []string{m.Border, m.Title, m.Subtitle, ""}
	lines = append(lines, m.Options...)
	return append(lines, "", m.Instructions, m.Border)
}

// GetTitle returns the game title shown on the menu.
func (t *Text) GetTitle() string {
	return t.data.Menu.Title
}

// GetMenuPrompt returns the prompt shown on the menu.
func (t *Text) GetMenuPrompt() string {
	return withDefault(t.data.Menu.Prompt, "ACTION: ")
}

// GetInvalidInput returns the message for non-numeric menu input.
func (t *Text) GetInvalidInput() string {
	return withDefault(strings.TrimSpace(t.data.Menu.InvalidInput), "Invalid input. Please enter 1 OR 2.")
}

// GetInvalidChoice returns the message for an unknown menu number.
func (t *Text) GetInvalidChoice() string {
	return withDefault(strings.TrimSpace(t.data.Menu.InvalidChoice), "Invalid choice")
}

// GetQuitting returns the farewell printed when leaving the program.
func (t *Text) GetQuitting() string {
	return withDefault(strings.TrimSpace(t.data.Menu.Quitting), "Quitting...")
}

// GetIntro returns the text printed when a new game starts.
func (t *Text) GetIntro() string {
	return strings.TrimSpace(t.data.Game.Intro)
}

// GetGamePrompt returns the per-turn prompt.
func (t *Text) GetGamePrompt() string {
	return withDefault(t.data.Game.Prompt, "ACTION: ")
}

// GetRetaliation returns the text for an NPC striking back.
func (t *Text) GetRetaliation(npcName string) string {
	tmpl := strings.TrimSpace(t.data.Game.Retaliation)
	if tmpl == "" {
		tmpl = "The %s stands, and without hesitation...\nslices your throat."
	}
	return fmt.Sprintf(tmpl, npcName)
}

// GetFallback returns the response to an unrecognized command.
func (t *Text) GetFallback() string {
	return withDefault(strings.TrimSpace(t.data.Game.Fallback),
		"You can't do that right now. \nTry search, inventory, north, south, east, west, or quit")
}

// GetVictory returns the winning ending.
func (t *Text) GetVictory() string {
	return strings.TrimSpace(t.data.Endings.Victory)
}

// GetDeath returns the text shown when the player dies.
func (t *Text) GetDeath() string {
	return withDefault(strings.TrimSpace(t.data.Endings.Death), "You died...")
}

// GetQuit returns the text for leaving a game early.
func (t *Text) GetQuit() string {
	return withDefault(strings.TrimSpace(t.data.Endings.Quit), "You decide it's time to stop. Returning to the Main Menu.")
}

func withDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
