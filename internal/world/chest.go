package world

import (
	"strings"

	"github.com/lawnchairsociety/tenebrae/internal/items"
)

// Chest holds a single item. It yields its contents at most once.
type Chest struct {
	RequiredKeys []string // Normalized item names, all needed together
	Contents     items.Item
	locked       bool
	opened       bool
}

// NewChest creates a chest that is locked when any keys are required
func NewChest(contents items.Item, keys ...string) *Chest {
	c := &Chest{Contents: contents}
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		key = items.Normalize(key)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		c.RequiredKeys = append(c.RequiredKeys, key)
	}
	c.locked = len(c.RequiredKeys) > 0
	return c
}

// IsLocked reports whether the chest is still locked
func (c *Chest) IsLocked() bool {
	return c.locked
}

// IsOpened reports whether the contents have been taken
func (c *Chest) IsOpened() bool {
	return c.opened
}

// CanUnlock reports whether every required key is in the inventory
func (c *Chest) CanUnlock(inventory []items.Item) bool {
	return items.HasAll(inventory, c.RequiredKeys)
}

// Unlock removes the lock; keys are not consumed
func (c *Chest) Unlock() {
	c.locked = false
}

// Open returns the contents the first time an unlocked chest is opened
func (c *Chest) Open() (items.Item, bool) {
	if c.locked || c.opened {
		return items.Item{}, false
	}
	c.opened = true
	return c.Contents, true
}

// KeyList joins the required keys for display
func (c *Chest) KeyList() string {
	return strings.Join(c.RequiredKeys, ", ")
}
