// Package content loads the static game data: items, NPCs, rooms, text, help
// and rules. The default data is embedded in the binary; a directory with the
// same file names can replace it.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/lawnchairsociety/tenebrae/internal/help"
	"github.com/lawnchairsociety/tenebrae/internal/items"
	"github.com/lawnchairsociety/tenebrae/internal/logger"
	"github.com/lawnchairsociety/tenebrae/internal/npc"
	"github.com/lawnchairsociety/tenebrae/internal/text"
	"github.com/lawnchairsociety/tenebrae/internal/world"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	itemsFile = "items.yaml"
	npcsFile  = "npcs.yaml"
	roomsFile = "rooms.yaml"
	textFile  = "text.yaml"
	helpFile  = "help.yaml"
	rulesFile = "rules.yaml"
)

// Bundle is the parsed, validated content shared read-only by every session.
type Bundle struct {
	Items *items.ItemsConfig
	NPCs  *npc.NPCsConfig
	Rooms *world.RoomsConfig
	Text  *text.Text
	Help  *help.Help
	Rules *Rules
}

// Default returns the embedded content.
func Default() (*Bundle, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// Load reads content from dir, or the embedded data when dir is empty.
func Load(dir string) (*Bundle, error) {
	if dir == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %q is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS parses every content file in fsys and validates that a world can
// be built from them.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	registry, err := items.LoadItemsFS(fsys, itemsFile)
	if err != nil {
		return nil, err
	}
	npcs, err := npc.LoadNPCsFS(fsys, npcsFile)
	if err != nil {
		return nil, err
	}
	rooms, err := world.LoadRoomsFS(fsys, roomsFile)
	if err != nil {
		return nil, err
	}
	txt, err := text.LoadFS(fsys, textFile)
	if err != nil {
		return nil, err
	}
	hlp, err := help.LoadFS(fsys, helpFile)
	if err != nil {
		return nil, err
	}
	rules, err := LoadRulesFS(fsys, rulesFile, registry)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		Items: registry,
		NPCs:  npcs,
		Rooms: rooms,
		Text:  txt,
		Help:  hlp,
		Rules: rules,
	}

	// A trial build catches broken references before any session starts.
	w, err := b.NewWorld()
	if err != nil {
		return nil, err
	}

	logger.Info("Content loaded",
		"items", len(registry.Items),
		"npcs", len(npcs.NPCs),
		"rooms", w.GetRoomCount())
	return b, nil
}

// NewWorld builds a fresh world for one session.
func (b *Bundle) NewWorld() (*world.World, error) {
	w, err := world.Build(b.Rooms, b.Items, b.NPCs)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}
	return w, nil
}
