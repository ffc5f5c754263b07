package npc

import (
	"fmt"

	"github.com/lawnchairsociety/tenebrae/internal/items"
)

// NPC represents a non-player character
type NPC struct {
	ID                  string // YAML key (e.g., "masked_priest")
	Name                string
	Description         string // Shown with the room description
	Health              int
	Hostile             bool
	Dialogue            string
	RequiredItem        string // Name of the item this NPC accepts; empty accepts nothing
	DeathItem           string // Name of the item that kills this NPC when given
	PostReceiveDialogue string
	DropItem            *items.Item // Placed on the floor when the NPC dies
	GiveItem            *items.Item // Granted once when the required item is received
	Inventory           []items.Item
	RoomID              string
}

// NewNPC creates a new NPC with the given properties
func NewNPC(name, description string, health int, hostile bool, roomID string) *NPC {
	return &NPC{
		Name:        name,
		Description: description,
		Health:      health,
		Hostile:     hostile,
		RoomID:      roomID,
	}
}

// GetName returns the NPC's name
func (n *NPC) GetName() string {
	return n.Name
}

// GetHealth returns the NPC's current health
func (n *NPC) GetHealth() int {
	return n.Health
}

// IsAlive returns true if the NPC has health remaining
func (n *NPC) IsAlive() bool {
	return n.Health > 0
}

// Talk returns the line printed when the player talks to this NPC
func (n *NPC) Talk() string {
	return fmt.Sprintf("%s: %s", n.Name, n.Dialogue)
}

// TakeDamage reduces health and returns the attack message
func (n *NPC) TakeDamage(damage int) string {
	n.Health -= damage
	if n.Health <= 0 {
		return fmt.Sprintf("%s was murdered...", n.Name)
	}
	return fmt.Sprintf("You attacked %s.", n.Name)
}

// Kill sets health to zero
func (n *NPC) Kill() {
	n.Health = 0
}

// Wants reports whether the NPC accepts anything at all
func (n *NPC) Wants() bool {
	return n.RequiredItem != ""
}

// Accepts reports whether item is the one this NPC is waiting for
func (n *NPC) Accepts(item items.Item) bool {
	return n.Wants() && item.Is(n.RequiredItem)
}

// IsDeathItem reports whether receiving item kills this NPC
func (n *NPC) IsDeathItem(item items.Item) bool {
	return n.DeathItem != "" && item.Is(n.DeathItem)
}

// ReceiveItem stores a given item in the NPC's inventory
func (n *NPC) ReceiveItem(item items.Item) {
	items.AddItem(&n.Inventory, item)
}

// TakeGift returns the one-time gift and clears it.
func (n *NPC) TakeGift() (items.Item, bool) {
	if n.GiveItem == nil {
		return items.Item{}, false
	}
	gift := *n.GiveItem
	n.GiveItem = nil
	return gift, true
}

// TakeDrop returns the item left behind on death, if any, and clears it
func (n *NPC) TakeDrop() (items.Item, bool) {
	if n.DropItem == nil {
		return items.Item{}, false
	}
	drop := *n.DropItem
	n.DropItem = nil
	return drop, true
}
