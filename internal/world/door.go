package world

import (
	"github.com/lawnchairsociety/tenebrae/internal/items"
)

// Door guards an exit. A door with no key is never locked, and an unlocked
// door never re-locks.
type Door struct {
	Direction   Direction
	RequiredKey string // Normalized item name
	locked      bool
}

// NewDoor creates a door that is locked whenever a key is required
func NewDoor(direction Direction, key string) *Door {
	key = items.Normalize(key)
	return &Door{
		Direction:   direction,
		RequiredKey: key,
		locked:      key != "",
	}
}

// IsLocked reports whether the door still blocks its exit
func (d *Door) IsLocked() bool {
	return d.locked
}

// CanUnlock reports whether the inventory holds the required key
func (d *Door) CanUnlock(inventory []items.Item) bool {
	return d.RequiredKey != "" && items.HasItem(inventory, d.RequiredKey)
}

// Unlock opens the door for good
func (d *Door) Unlock() {
	d.locked = false
}
