package command

import (
	"github.com/lawnchairsociety/tenebrae/internal/game"
	"github.com/lawnchairsociety/tenebrae/internal/world"
)

func hasDirection(c *Command, _ *game.Game) bool {
	_, ok := world.ExtractDirection(c.Input)
	return ok
}

func executeMove(c *Command, g *game.Game) string {
	direction, _ := world.ExtractDirection(c.Input)
	room := g.CurrentRoom()

	next := g.World.Neighbor(room, direction)
	if next == nil {
		return "You can't go that way."
	}
	if room.IsExitLocked(direction) {
		return "The door is locked. Maybe there's a key nearby..."
	}

	return g.MoveTo(next)
}

// unlockDoor acts on the first locked door in the room and nothing else.
func unlockDoor(g *game.Game) string {
	room := g.CurrentRoom()
	door := room.FirstLockedDoor()
	if door == nil {
		return "There is no locked door here that you can open."
	}
	if !door.CanUnlock(g.Player.GetInventory()) {
		return "The door is locked."
	}

	door.Unlock()
	g.Log().Info("Door unlocked", "room", room.ID, "direction", door.Direction.String())
	return "You use the " + door.RequiredKey + " to unlock the door."
}
