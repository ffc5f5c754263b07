package command

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/tenebrae/internal/game"
	"github.com/lawnchairsociety/tenebrae/internal/npc"
)

func executeTalk(c *Command, g *game.Game) string {
	n := g.CurrentRoom().FirstNPC()
	if n == nil {
		return "There is no one to talk to..."
	}
	return strings.TrimRight(n.Talk(), "\n")
}

func executeGive(c *Command, g *game.Game) string {
	itemName, ok := c.Remainder()
	if !ok {
		return "Give what?"
	}

	room := g.CurrentRoom()
	n := room.FirstNPC()
	if n == nil {
		return "There is no one to give the item to..."
	}
	if !n.Wants() {
		return fmt.Sprintf("%s doesn't seem interested in anything you have.", n.Name)
	}

	item, held := g.Player.FindItem(itemName)
	if !held {
		return "You don't have that item..."
	}
	if !n.Accepts(item) {
		return fmt.Sprintf("%s doesn't want that item.", n.Name)
	}

	g.Player.RemoveItem(item.Name)
	n.ReceiveItem(item)
	g.Player.Statistics.RecordItemGiven()

	out := []string{fmt.Sprintf("You gave the %s to %s.", item.Name, n.Name)}
	if n.PostReceiveDialogue != "" {
		out = append(out, strings.TrimRight(n.PostReceiveDialogue, "\n"))
	}
	if gift, ok := n.TakeGift(); ok {
		g.Player.AddItem(gift)
		out = append(out, fmt.Sprintf("%s gives you a %s.", n.Name, gift.Name))
	}

	if n.IsDeathItem(item) {
		n.Kill()
		out = append(out, fmt.Sprintf("%s falls to the ground and dies...", n.Name))
		killNPC(g, n, "given "+item.Name)
	}
	return strings.Join(out, "\n\n")
}

// killNPC removes a dead NPC from the room and leaves its drop behind as the
// room's next search find.
func killNPC(g *game.Game, n *npc.NPC, cause string) {
	room := g.CurrentRoom()
	room.RemoveNPC(n)
	if drop, ok := n.TakeDrop(); ok {
		room.Reveal(drop)
	}
	g.Player.Statistics.RecordKill(n.ID)
	g.Log().Info("NPC died", "npc", n.ID, "room", room.ID, "cause", cause)
}
