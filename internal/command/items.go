package command

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/tenebrae/internal/game"
	"github.com/lawnchairsociety/tenebrae/internal/items"
)

func executeSearch(c *Command, g *game.Game) string {
	return g.CurrentRoom().Search()
}

func executeTake(c *Command, g *game.Game) string {
	item, ok, present := g.CurrentRoom().TakeRevealed()
	if !ok {
		return "You see nothing to take.\nTry searching first..."
	}
	if !present {
		return "The item is no longer here."
	}
	return g.Player.AddItem(item)
}

func executeInventory(c *Command, g *game.Game) string {
	return g.Player.InventoryString()
}

// executeOpen opens the room's chest, falling back to the doors when there
// is no chest left to open.
func executeOpen(c *Command, g *game.Game) string {
	room := g.CurrentRoom()
	chest := room.Chest
	if chest == nil || chest.IsOpened() {
		return unlockDoor(g)
	}

	var out []string
	if chest.IsLocked() {
		if !chest.CanUnlock(g.Player.GetInventory()) {
			return "The chest is locked."
		}
		chest.Unlock()
		out = append(out, fmt.Sprintf("You unlock the chest using the %s.", chest.KeyList()))
	}

	found, ok := chest.Open()
	if !ok {
		return unlockDoor(g)
	}
	g.Player.AddItem(found)
	g.Log().Info("Chest opened", "room", room.ID, "item", found.Name)
	out = append(out, fmt.Sprintf("You open the chest and found... %s!", found.Name))

	g.CheckVictory()
	return strings.Join(out, "\n\n")
}

func drinksPoison(c *Command, g *game.Game) bool {
	return c.Contains("drink " + items.Normalize(g.Rules.PoisonItem.Name))
}

func executeDrink(c *Command, g *game.Game) string {
	poison := g.Rules.PoisonItem
	if !g.Player.HasItem(poison.Name) {
		return fmt.Sprintf("You don't have a %s in your inventory.", poison.Name)
	}
	g.KillPlayer("drank " + poison.Name)
	return strings.TrimRight(poison.ConsumeText, "\n")
}
