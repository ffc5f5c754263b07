package command

import (
	"strings"

	"github.com/lawnchairsociety/tenebrae/internal/game"
)

// executeAttack strikes the first NPC in the room with the best weapon held.
// Anything short of a lethal-grade weapon provokes a fatal counterattack.
func executeAttack(c *Command, g *game.Game) string {
	n := g.CurrentRoom().FirstNPC()
	if n == nil {
		return "There is no one to attack..."
	}

	damage := g.Player.DamageRating(g.Rules.BaseDamage)
	out := []string{n.TakeDamage(damage)}

	if !n.IsAlive() {
		killNPC(g, n, "attacked")
	}

	if damage < g.Rules.LethalDamage {
		out = append(out, strings.TrimRight(g.Text.GetRetaliation(n.Name), "\n"))
		g.KillPlayer("killed by " + n.ID)
	}
	return strings.Join(out, "\n")
}

// executeSelfHarm uses the first self-harm weapon held, in rules order.
func executeSelfHarm(c *Command, g *game.Game) string {
	for _, weapon := range g.Rules.SelfHarmItems {
		if g.Player.HasItem(weapon.Name) {
			g.KillPlayer("self-harm with " + weapon.Name)
			return strings.TrimRight(weapon.SelfHarmText, "\n")
		}
	}
	return "You have nothing to kill yourself with..."
}
