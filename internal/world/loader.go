package world

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/lawnchairsociety/tenebrae/internal/items"
	"github.com/lawnchairsociety/tenebrae/internal/logger"
	"github.com/lawnchairsociety/tenebrae/internal/npc"
	"gopkg.in/yaml.v3"
)

// DoorDefinition is a locked door on one side of a room
type DoorDefinition struct {
	Direction string `yaml:"direction"`
	Key       string `yaml:"key"` // Item ID
}

// ChestDefinition is a chest and the item IDs needed to unlock it
type ChestDefinition struct {
	Item string   `yaml:"item"`
	Keys []string `yaml:"keys"`
}

// RoomDefinition represents a room from the YAML file. Item fields hold item IDs.
type RoomDefinition struct {
	Description string            `yaml:"description"`
	Search      string            `yaml:"search"`
	Art         string            `yaml:"art"` // Key into RoomsConfig.Art
	Exits       map[string]string `yaml:"exits"`
	Doors       []DoorDefinition  `yaml:"doors"`
	Items       []string          `yaml:"items"`
	Revealed    string            `yaml:"revealed"` // Placed on the floor and found by searching
	Chest       *ChestDefinition  `yaml:"chest"`
}

// RoomsConfig represents the structure of the rooms.yaml file
type RoomsConfig struct {
	Start string                    `yaml:"start"`
	Art   map[string]string         `yaml:"art"`
	Rooms map[string]RoomDefinition `yaml:"rooms"`
}

// LoadRoomsFromYAML loads room definitions from a YAML file
func LoadRoomsFromYAML(filename string) (*RoomsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms file: %w", err)
	}
	return ParseRooms(data)
}

// LoadRoomsFS loads room definitions from a file inside fsys
func LoadRoomsFS(fsys fs.FS, name string) (*RoomsConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms file: %w", err)
	}
	return ParseRooms(data)
}

// ParseRooms parses room definitions
func ParseRooms(data []byte) (*RoomsConfig, error) {
	var config RoomsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse rooms YAML: %w", err)
	}
	if config.Start == "" {
		return nil, fmt.Errorf("rooms file has no start room")
	}
	if len(config.Rooms) == 0 {
		return nil, fmt.Errorf("rooms file defines no rooms")
	}
	return &config, nil
}

// Build creates a fresh world from the room and NPC definitions. Every call
// returns independent rooms, NPCs and item copies.
func Build(rooms *RoomsConfig, registry *items.ItemsConfig, npcs *npc.NPCsConfig) (*World, error) {
	w := NewWorld()
	w.StartingRoomID = rooms.Start

	ids := make([]string, 0, len(rooms.Rooms))
	for id := range rooms.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		room, err := buildRoom(id, rooms.Rooms[id], rooms.Art, registry)
		if err != nil {
			return nil, err
		}
		w.AddRoom(room)
	}

	if npcs != nil {
		for _, npcID := range npcs.IDs() {
			def := npcs.NPCs[npcID]
			if len(def.Locations) == 0 {
				logger.Warning("NPC has no locations", "npc_id", npcID)
			}
			for _, roomID := range def.Locations {
				room := w.GetRoom(roomID)
				if room == nil {
					return nil, fmt.Errorf("NPC %q placed in unknown room %q", npcID, roomID)
				}
				n, err := npc.CreateNPCFromDefinition(npcID, def, roomID, registry)
				if err != nil {
					return nil, err
				}
				room.AddNPC(n)
			}
		}
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("World built", "rooms", w.GetRoomCount(), "start", w.StartingRoomID)
	return w, nil
}

func buildRoom(id string, def RoomDefinition, art map[string]string, registry *items.ItemsConfig) (*Room, error) {
	room := NewRoom(id, def.Description, def.Search)

	if def.Art != "" {
		text, ok := art[def.Art]
		if !ok {
			return nil, fmt.Errorf("room %q: unknown art %q", id, def.Art)
		}
		room.Art = text
	}

	for name, target := range def.Exits {
		dir, ok := ParseDirection(name)
		if !ok {
			return nil, fmt.Errorf("room %q: invalid exit direction %q", id, name)
		}
		room.AddExit(dir, target)
	}

	for _, d := range def.Doors {
		dir, ok := ParseDirection(d.Direction)
		if !ok {
			return nil, fmt.Errorf("room %q: invalid door direction %q", id, d.Direction)
		}
		keyName := ""
		if d.Key != "" {
			key, err := registry.MustItem(d.Key)
			if err != nil {
				return nil, fmt.Errorf("room %q door: %w", id, err)
			}
			keyName = key.Name
		}
		room.AddDoor(NewDoor(dir, keyName))
	}

	for _, itemID := range def.Items {
		item, err := registry.MustItem(itemID)
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", id, err)
		}
		room.AddItem(item)
	}

	if def.Revealed != "" {
		item, err := registry.MustItem(def.Revealed)
		if err != nil {
			return nil, fmt.Errorf("room %q revealed: %w", id, err)
		}
		room.Reveal(item)
	}

	if def.Chest != nil {
		contents, err := registry.MustItem(def.Chest.Item)
		if err != nil {
			return nil, fmt.Errorf("room %q chest: %w", id, err)
		}
		keys := make([]string, 0, len(def.Chest.Keys))
		for _, keyID := range def.Chest.Keys {
			key, err := registry.MustItem(keyID)
			if err != nil {
				return nil, fmt.Errorf("room %q chest key: %w", id, err)
			}
			keys = append(keys, key.Name)
		}
		room.Chest = NewChest(contents, keys...)
	}

	return room, nil
}
