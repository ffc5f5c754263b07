package items

import (
	"strings"

	"golang.org/x/text/cases"
)

// Item is an immutable piece of game content. Containers hold their own copies,
// so an Item is always passed and stored by value.
type Item struct {
	ID          string // YAML key (e.g., "rusted_knife")
	Name        string
	Description string
	Type        ItemType
	Damage      int // Attack rating when held; zero for non-weapons
	// Flavor used by the self-harm and drink commands
	SelfHarmText string
	ConsumeText  string
}

// NewItem creates a new item
func NewItem(name, description string, itemType ItemType) Item {
	return Item{
		Name:        name,
		Description: description,
		Type:        itemType,
	}
}

// NewWeapon creates a new weapon item with an attack rating
func NewWeapon(name, description string, damage int) Item {
	item := NewItem(name, description, Weapon)
	item.Damage = damage
	return item
}

// Is reports whether the item carries the given name, ignoring case.
func (i Item) Is(name string) bool {
	return SameName(i.Name, name)
}

// Normalize folds a name for case-insensitive comparison.
// A Caser is stateful, so each call gets its own.
func Normalize(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether two item names refer to the same item
func SameName(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
