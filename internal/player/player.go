package player

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/tenebrae/internal/items"
)

// Player is the single adventurer of a session
type Player struct {
	Inventory  []items.Item
	Statistics *PlayerStatistics
	alive      bool
}

func NewPlayer() *Player {
	return &Player{
		Inventory:  make([]items.Item, 0),
		Statistics: NewPlayerStatistics(),
		alive:      true,
	}
}

// AddItem stores a copy of item and returns the pickup message
func (p *Player) AddItem(item items.Item) string {
	items.AddItem(&p.Inventory, item)
	p.Statistics.RecordItemCollected()
	return fmt.Sprintf("%s has been added to your inventory.", item.Name)
}

func (p *Player) RemoveItem(itemName string) (items.Item, bool) {
	return items.RemoveItem(&p.Inventory, itemName)
}

func (p *Player) HasItem(itemName string) bool {
	return items.HasItem(p.Inventory, itemName)
}

func (p *Player) FindItem(itemName string) (items.Item, bool) {
	return items.FindItem(p.Inventory, itemName)
}

func (p *Player) GetInventory() []items.Item {
	return p.Inventory
}

// DamageRating is the strongest held weapon, never below base
func (p *Player) DamageRating(base int) int {
	return max(base, items.BestDamage(p.Inventory))
}

func (p *Player) IsAlive() bool {
	return p.alive
}

// Die marks the player dead. Only the first call has any effect.
func (p *Player) Die() {
	if !p.alive {
		return
	}
	p.alive = false
	p.Statistics.RecordDeath()
}

// InventoryString renders the inventory listing
func (p *Player) InventoryString() string {
	if len(p.Inventory) == 0 {
		return "Your inventory is empty."
	}

	var sb strings.Builder
	sb.WriteString("Inventory:")
	for _, item := range p.Inventory {
		sb.WriteString(fmt.Sprintf("\n- %s: %s", item.Name, item.Description))
	}
	return sb.String()
}

// ItemNames lists held item names in pickup order
func (p *Player) ItemNames() []string {
	names := make([]string, len(p.Inventory))
	for i, item := range p.Inventory {
		names[i] = item.Name
	}
	return names
}
