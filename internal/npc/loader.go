package npc

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/lawnchairsociety/tenebrae/internal/items"
	"github.com/lawnchairsociety/tenebrae/internal/logger"
	"gopkg.in/yaml.v3"
)

// NPCDefinition represents an NPC definition from the YAML file.
// Item fields hold item IDs from items.yaml.
type NPCDefinition struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Health      int      `yaml:"health"`
	Hostile     bool     `yaml:"hostile"`
	Dialogue    string   `yaml:"dialogue"`
	PostReceive string   `yaml:"post_receive"` // Spoken after accepting the wanted item
	Wants       string   `yaml:"wants"`
	DeathItem   string   `yaml:"death_item"`
	Drops       string   `yaml:"drops"`
	Gives       string   `yaml:"gives"`
	Locations   []string `yaml:"locations"` // Room IDs where this NPC is placed
}

// NPCsConfig represents the structure of the npcs.yaml file
type NPCsConfig struct {
	NPCs map[string]NPCDefinition `yaml:"npcs"`
}

// LoadNPCsFromYAML loads NPC definitions from a YAML file
func LoadNPCsFromYAML(filename string) (*NPCsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read NPCs file: %w", err)
	}
	return ParseNPCs(data)
}

// LoadNPCsFS loads NPC definitions from a file inside fsys
func LoadNPCsFS(fsys fs.FS, name string) (*NPCsConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read NPCs file: %w", err)
	}
	return ParseNPCs(data)
}

// ParseNPCs parses NPC definitions
func ParseNPCs(data []byte) (*NPCsConfig, error) {
	var config NPCsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse NPCs YAML: %w", err)
	}

	for npcID, def := range config.NPCs {
		if def.Name == "" {
			return nil, fmt.Errorf("NPC %q has no name", npcID)
		}
		if def.Health <= 0 {
			logger.Warning("NPC auto-correction applied",
				"npc_id", npcID,
				"issue", "non-positive health",
				"action", "set health=1")
			def.Health = 1
			config.NPCs[npcID] = def
		}
	}

	return &config, nil
}

// IDs returns every NPC ID in sorted order
func (config *NPCsConfig) IDs() []string {
	ids := make([]string, 0, len(config.NPCs))
	for id := range config.NPCs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CreateNPCFromDefinition creates an NPC placed in roomID, resolving its item
// references through the registry.
func CreateNPCFromDefinition(id string, def NPCDefinition, roomID string, registry *items.ItemsConfig) (*NPC, error) {
	n := NewNPC(def.Name, def.Description, def.Health, def.Hostile, roomID)
	n.ID = id
	n.Dialogue = def.Dialogue
	n.PostReceiveDialogue = def.PostReceive

	if def.Wants != "" {
		item, err := registry.MustItem(def.Wants)
		if err != nil {
			return nil, fmt.Errorf("NPC %q wants: %w", id, err)
		}
		n.RequiredItem = item.Name
	}
	if def.DeathItem != "" {
		item, err := registry.MustItem(def.DeathItem)
		if err != nil {
			return nil, fmt.Errorf("NPC %q death_item: %w", id, err)
		}
		n.DeathItem = item.Name
	}
	if def.Drops != "" {
		item, err := registry.MustItem(def.Drops)
		if err != nil {
			return nil, fmt.Errorf("NPC %q drops: %w", id, err)
		}
		n.DropItem = &item
	}
	if def.Gives != "" {
		item, err := registry.MustItem(def.Gives)
		if err != nil {
			return nil, fmt.Errorf("NPC %q gives: %w", id, err)
		}
		n.GiveItem = &item
	}

	return n, nil
}
