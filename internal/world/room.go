package world

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/tenebrae/internal/items"
	"github.com/lawnchairsociety/tenebrae/internal/npc"
)

// Room is a node in the world graph. Exits hold room IDs, resolved through
// the World that owns the room.
type Room struct {
	ID                string
	Description       string
	SearchDescription string
	Art               string // Shown the first time the room is entered
	Exits             map[Direction]string
	Doors             []*Door // Content order; checked first to last when unlocking
	Items             []items.Item
	Chest             *Chest
	NPCs              []*npc.NPC
	RevealedItem      string // Name of the floor item a search turns up
	searched          bool
	visited           bool
}

func NewRoom(id, description, search string) *Room {
	return &Room{
		ID:                id,
		Description:       description,
		SearchDescription: search,
		Exits:             make(map[Direction]string),
		Items:             make([]items.Item, 0),
		NPCs:              make([]*npc.NPC, 0),
	}
}

func (r *Room) AddExit(direction Direction, roomID string) {
	r.Exits[direction] = roomID
}

// GetExit returns the ID of the room in the given direction
func (r *Room) GetExit(direction Direction) (string, bool) {
	id, ok := r.Exits[direction]
	return id, ok
}

// AddDoor adds a door, replacing any door already on that side
func (r *Room) AddDoor(door *Door) {
	for i, d := range r.Doors {
		if d.Direction == door.Direction {
			r.Doors[i] = door
			return
		}
	}
	r.Doors = append(r.Doors, door)
}

func (r *Room) GetDoor(direction Direction) *Door {
	for _, d := range r.Doors {
		if d.Direction == direction {
			return d
		}
	}
	return nil
}

// IsExitLocked reports whether a locked door blocks the given direction
func (r *Room) IsExitLocked(direction Direction) bool {
	d := r.GetDoor(direction)
	return d != nil && d.IsLocked()
}

// FirstLockedDoor returns the first locked door in content order
func (r *Room) FirstLockedDoor() *Door {
	for _, d := range r.Doors {
		if d.IsLocked() {
			return d
		}
	}
	return nil
}

func (r *Room) AddItem(item items.Item) {
	items.AddItem(&r.Items, item)
}

func (r *Room) RemoveItem(itemName string) (items.Item, bool) {
	return items.RemoveItem(&r.Items, itemName)
}

func (r *Room) HasItem(itemName string) bool {
	return items.HasItem(r.Items, itemName)
}

// Reveal places item on the floor as the room's searchable item and marks
// the room unsearched so the next search announces it.
func (r *Room) Reveal(item items.Item) {
	r.AddItem(item)
	r.RevealedItem = item.Name
	r.searched = false
}

func (r *Room) IsSearched() bool {
	return r.searched
}

// Search marks the room searched and returns what the player finds
func (r *Room) Search() string {
	r.searched = true

	var sb strings.Builder
	if r.SearchDescription != "" {
		sb.WriteString(r.SearchDescription)
		sb.WriteString("\n")
	}
	switch {
	case r.RevealedItem != "":
		sb.WriteString(fmt.Sprintf("You found a %s.\n\nType 'take' to pick it up.", r.RevealedItem))
	case r.SearchDescription == "":
		sb.WriteString("You find nothing of interest.")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// TakeRevealed removes the revealed item from the floor once the room has
// been searched. ok is false when there was nothing to take; present is
// false when the item was revealed but is no longer on the floor.
func (r *Room) TakeRevealed() (item items.Item, ok bool, present bool) {
	if !r.searched || r.RevealedItem == "" {
		return items.Item{}, false, false
	}
	item, present = r.RemoveItem(r.RevealedItem)
	if present {
		r.RevealedItem = ""
	}
	return item, true, present
}

func (r *Room) AddNPC(n *npc.NPC) {
	n.RoomID = r.ID
	r.NPCs = append(r.NPCs, n)
}

func (r *Room) RemoveNPC(n *npc.NPC) {
	for i, existing := range r.NPCs {
		if existing == n {
			r.NPCs = append(r.NPCs[:i], r.NPCs[i+1:]...)
			return
		}
	}
}

// FirstNPC returns the occupant every interaction command targets
func (r *Room) FirstNPC() *npc.NPC {
	if len(r.NPCs) == 0 {
		return nil
	}
	return r.NPCs[0]
}

// Visit marks the room entered and reports whether this is the first time
func (r *Room) Visit() bool {
	first := !r.visited
	r.visited = true
	return first
}

// GetDescription returns the room text followed by each occupant
func (r *Room) GetDescription() string {
	var sb strings.Builder
	sb.WriteString(r.Description)
	for _, n := range r.NPCs {
		if n.Description == "" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(n.Description)
	}
	return sb.String()
}
