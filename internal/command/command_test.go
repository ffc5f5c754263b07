package command

import (
	"strings"
	"testing"

	"github.com/lawnchairsociety/tenebrae/internal/content"
	"github.com/lawnchairsociety/tenebrae/internal/game"
	"github.com/lawnchairsociety/tenebrae/internal/items"
)

type fixture struct {
	bundle *content.Bundle
	game   *game.Game
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error = %v", err)
	}
	g, err := game.New(b)
	if err != nil {
		t.Fatalf("game.New() error = %v", err)
	}
	g.Start()
	return &fixture{bundle: b, game: g}
}

// run executes input and returns the output.
func (f *fixture) run(input string) string {
	return ParseCommand(input).Execute(f.game)
}

// give puts a registry item straight into the inventory.
func (f *fixture) give(t *testing.T, id string) items.Item {
	t.Helper()
	item, err := f.bundle.Items.MustItem(id)
	if err != nil {
		t.Fatal(err)
	}
	f.game.Player.AddItem(item)
	return item
}

func (f *fixture) teleport(id string) {
	f.game.MoveTo(f.game.World.GetRoom(id))
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  NORTH  ", "north"},
		{"Give Blood Bottle", "give blood bottle"},
		{"", ""},
		{"QUIT GAME", "quit game"},
	}
	for _, tt := range tests {
		if got := ParseCommand(tt.input).Input; got != tt.want {
			t.Errorf("ParseCommand(%q).Input = %q, want %q", tt.input, got, tt.want)
		}
	}
	if !ParseCommand("   ").IsEmpty() {
		t.Error("blank input should be empty")
	}
}

func TestRemainder(t *testing.T) {
	rest, ok := ParseCommand("give blood bottle").Remainder()
	if !ok || rest != "blood bottle" {
		t.Errorf("Remainder() = %q, %v", rest, ok)
	}
	if _, ok := ParseCommand("give").Remainder(); ok {
		t.Error("Remainder() of a single word should report no space")
	}
}

func TestRouteOrdering(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		input string
		want  string
	}{
		{"search", "search"},
		{"look north", "search"},
		{"find the key", "search"},
		{"take it", "take"},
		{"take a look", "search"},
		{"inventory", "inventory"},
		{"open", "open"},
		{"use key", "open"},
		{"open the north door", "open"},
		{"north", "move"},
		{"go west", "move"},
		{"northwest", "move"},
		{"talk", "talk"},
		{"ask about the north", "move"},
		{"give", "give"},
		{"kill self", "self-harm"},
		{"kill myself", "self-harm"},
		{"suicide", "self-harm"},
		{"kill", "attack"},
		{"attack the priest", "attack"},
		{"drink blood bottle", "drink"},
		{"drink water", "fallback"},
		{"quit", "quit"},
		{"exit", "quit"},
		{"quit game", "quit"},
		{"quit now", "fallback"},
		{"help", "help"},
		{"help combat", "help"},
		{"dance", "fallback"},
		{"", "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseCommand(tt.input).Route(f.game); got != tt.want {
				t.Errorf("Route(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	f := newFixture(t)
	want := "You can't do that right now. \nTry search, inventory, north, south, east, west, or quit"
	if got := f.run("dance"); got != want {
		t.Errorf("fallback = %q, want %q", got, want)
	}
	if f.game.Player.Statistics.Turns != 1 {
		t.Errorf("Turns = %d, want 1", f.game.Player.Statistics.Turns)
	}
}

// Scenario A: walking into the locked cell door.
func TestScenarioLockedCellDoor(t *testing.T) {
	f := newFixture(t)

	if got := f.run("north"); got != "You face the cell door..." {
		t.Errorf("north = %q", got)
	}
	if got := f.run("north"); got != "The door is locked. Maybe there's a key nearby..." {
		t.Errorf("north again = %q", got)
	}
	if f.game.CurrentRoomID() != "start_north" {
		t.Errorf("room = %q, want start_north", f.game.CurrentRoomID())
	}
}

// Scenario B: find the cell key and leave the cell.
func TestScenarioEscapeCell(t *testing.T) {
	f := newFixture(t)

	f.run("south")
	got := f.run("search")
	if !strings.HasSuffix(got, "You found a cell key.\n\nType 'take' to pick it up.") {
		t.Errorf("search = %q", got)
	}
	if got := f.run("take"); got != "cell key has been added to your inventory." {
		t.Errorf("take = %q", got)
	}
	f.run("north")
	f.run("north")
	if got := f.run("open"); got != "You use the cell key to unlock the door." {
		t.Errorf("open = %q", got)
	}
	got = f.run("north")
	if f.game.CurrentRoomID() != "prison_hallway_1" {
		t.Fatalf("room = %q, want prison_hallway_1 (output %q)", f.game.CurrentRoomID(), got)
	}

	// The key is kept.
	if !f.game.Player.HasItem("cell key") {
		t.Error("cell key was consumed")
	}
}

func TestSearchTake(t *testing.T) {
	f := newFixture(t)
	f.run("south")

	if got := f.run("take"); got != "You see nothing to take.\nTry searching first..." {
		t.Errorf("take before search = %q", got)
	}

	first := f.run("search")
	second := f.run("search")
	if first != second {
		t.Errorf("search not idempotent: %q vs %q", first, second)
	}

	f.run("take")
	if got := f.run("take"); got != "You see nothing to take.\nTry searching first..." {
		t.Errorf("second take = %q", got)
	}
	if got := f.run("search"); strings.Contains(got, "You found") {
		t.Errorf("search after take = %q", got)
	}
}

func TestSearch_NothingOfInterest(t *testing.T) {
	f := newFixture(t)
	f.teleport("start_northwest")
	if got := f.run("search"); got != "You find nothing of interest." {
		t.Errorf("search = %q", got)
	}
}

func TestTake_ItemGone(t *testing.T) {
	f := newFixture(t)
	f.run("south")
	f.run("search")
	f.game.CurrentRoom().RemoveItem("cell key")

	if got := f.run("take"); got != "The item is no longer here." {
		t.Errorf("take = %q", got)
	}
}

func TestInventory(t *testing.T) {
	f := newFixture(t)
	if got := f.run("inventory"); got != "Your inventory is empty." {
		t.Errorf("inventory = %q", got)
	}
	f.give(t, "cell_key")
	if got := f.run("inventory"); !strings.HasPrefix(got, "Inventory:\n- cell key: ") {
		t.Errorf("inventory = %q", got)
	}
}

func TestMove_NoExit(t *testing.T) {
	f := newFixture(t)
	f.teleport("start_northwest")
	if got := f.run("west"); got != "You can't go that way." {
		t.Errorf("west = %q", got)
	}
}

func TestOpen_NoDoor(t *testing.T) {
	f := newFixture(t)
	if got := f.run("open"); got != "There is no locked door here that you can open." {
		t.Errorf("open = %q", got)
	}
}

func TestOpen_DoorWithoutKey(t *testing.T) {
	f := newFixture(t)
	f.run("north")
	if got := f.run("use key"); got != "The door is locked." {
		t.Errorf("use key = %q", got)
	}
}

func TestOpen_UnlockedChest(t *testing.T) {
	f := newFixture(t)
	f.teleport("prison_1_southeast")

	if got := f.run("open"); got != "You open the chest and found... room key!" {
		t.Errorf("open = %q", got)
	}
	if !f.game.Player.HasItem("room key") {
		t.Error("room key not added")
	}
	// A second open falls through to the doors.
	if got := f.run("open"); got != "There is no locked door here that you can open." {
		t.Errorf("second open = %q", got)
	}
	if n := len(f.game.Player.GetInventory()); n != 1 {
		t.Errorf("inventory size = %d, want 1", n)
	}
}

func TestOpen_LockedChest(t *testing.T) {
	f := newFixture(t)
	f.teleport("prison_2_northwest")

	if got := f.run("open"); got != "The chest is locked." {
		t.Errorf("open without key = %q", got)
	}
	f.give(t, "blood_stained_key")
	want := "You unlock the chest using the blood-stained key.\n\nYou open the chest and found... obsidian dagger!"
	if got := f.run("open"); got != want {
		t.Errorf("open = %q, want %q", got, want)
	}
}

func TestOpen_AltarNeedsEveryOrbis(t *testing.T) {
	f := newFixture(t)
	f.teleport("cathedral_g10")
	f.give(t, "pater_orbis")
	f.give(t, "mater_orbis")

	if got := f.run("open"); got != "The chest is locked." {
		t.Errorf("open with two keys = %q", got)
	}
	if f.game.Status() != game.Playing {
		t.Fatal("game ended early")
	}

	f.give(t, "filius_orbis")
	got := f.run("open")
	if !strings.HasSuffix(got, "You open the chest and found... ORBIS DEI!") {
		t.Errorf("open = %q", got)
	}
	if f.game.Status() != game.Won {
		t.Errorf("Status() = %v, want won right after the chest opens", f.game.Status())
	}
	for _, key := range []string{"pater orbis", "mater orbis", "filius orbis"} {
		if !f.game.Player.HasItem(key) {
			t.Errorf("%s was consumed", key)
		}
	}
}

func TestTalk(t *testing.T) {
	f := newFixture(t)
	if got := f.run("talk"); got != "There is no one to talk to..." {
		t.Errorf("talk = %q", got)
	}
	f.teleport("cathedral_g1")
	if got := f.run("ask"); got != "Masked Figure: WORSHIP THY PATER!" {
		t.Errorf("ask = %q", got)
	}
}

func TestGive_Messages(t *testing.T) {
	f := newFixture(t)

	if got := f.run("give"); got != "Give what?" {
		t.Errorf("bare give = %q", got)
	}
	if got := f.run("give rock"); got != "There is no one to give the item to..." {
		t.Errorf("give with no npc = %q", got)
	}

	f.teleport("prison_1_north")
	if got := f.run("give blood bottle"); got != "You don't have that item..." {
		t.Errorf("give unheld = %q", got)
	}
	f.give(t, "cell_key")
	if got := f.run("give cell key"); got != "Masked Figure doesn't want that item." {
		t.Errorf("give unwanted = %q", got)
	}
	if !f.game.Player.HasItem("cell key") {
		t.Error("unwanted item was taken")
	}
}

func TestGive_NotInterested(t *testing.T) {
	f := newFixture(t)
	f.teleport("prison_1_north")
	f.game.CurrentRoom().FirstNPC().RequiredItem = ""

	if got := f.run("give anything"); got != "Masked Figure doesn't seem interested in anything you have." {
		t.Errorf("give = %q", got)
	}
}

// Scenario C: the death item kills its recipient and reveals the drop.
func TestScenarioPoisonGift(t *testing.T) {
	f := newFixture(t)
	f.teleport("prison_1_north")
	f.give(t, "blood_bottle")

	got := f.run("give BLOOD BOTTLE")
	for _, want := range []string{
		"You gave the blood bottle to Masked Figure.",
		"The masked figure drinks the whole bottle...",
		"Masked Figure falls to the ground and dies...",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("give output missing %q:\n%s", want, got)
		}
	}

	room := f.game.CurrentRoom()
	if room.FirstNPC() != nil {
		t.Error("NPC still in room")
	}
	if f.game.Player.HasItem("blood bottle") {
		t.Error("blood bottle still held")
	}
	if got := f.run("search"); !strings.Contains(got, "You found a gold key.") {
		t.Errorf("search = %q", got)
	}
	f.run("take")
	if !f.game.Player.HasItem("gold key") {
		t.Error("gold key not taken")
	}
	if f.game.Player.Statistics.TotalKills() != 1 {
		t.Errorf("TotalKills() = %d, want 1", f.game.Player.Statistics.TotalKills())
	}
}

func TestGive_GiftIsGrantedOnce(t *testing.T) {
	f := newFixture(t)
	f.teleport("brother_2_middle")
	f.give(t, "wooden_sword")

	got := f.run("give wooden sword")
	want := "You gave the wooden sword to The son.\n\nThat's it! Here you can have this.\n\nThe son gives you a filius orbis."
	if got != want {
		t.Errorf("give = %q, want %q", got, want)
	}
	if !f.game.Player.HasItem("filius orbis") {
		t.Error("gift not received")
	}
	if f.game.CurrentRoom().FirstNPC() == nil {
		t.Error("the son should survive a gift that is not his death item")
	}
}

func TestAttack_WeakBlowIsFatal(t *testing.T) {
	f := newFixture(t)
	if got := f.run("attack"); got != "There is no one to attack..." {
		t.Errorf("attack = %q", got)
	}

	f.teleport("prison_1_north")
	f.give(t, "rusted_knife")
	got := f.run("kill")
	want := "You attacked Masked Figure.\nThe Masked Figure stands, and without hesitation...\nslices your throat."
	if got != want {
		t.Errorf("kill = %q, want %q", got, want)
	}
	if f.game.Player.IsAlive() {
		t.Error("player survived a weak attack")
	}
	if f.game.Evaluate() != game.Lost {
		t.Error("game should be lost")
	}
}

func TestAttack_LethalWeapon(t *testing.T) {
	f := newFixture(t)
	f.teleport("prison_1_north")
	f.give(t, "obsidian_dagger")

	if got := f.run("attack"); got != "Masked Figure was murdered..." {
		t.Errorf("attack = %q", got)
	}
	if !f.game.Player.IsAlive() {
		t.Error("player should survive a lethal-grade blow")
	}
	if f.game.CurrentRoom().FirstNPC() != nil {
		t.Error("dead NPC still in room")
	}
	if got := f.run("search"); !strings.Contains(got, "You found a gold key.") {
		t.Errorf("search = %q", got)
	}
}

func TestAttack_LethalWeaponSurvivor(t *testing.T) {
	f := newFixture(t)
	f.teleport("prison_1_north")
	f.game.CurrentRoom().FirstNPC().Health = 20
	f.give(t, "obsidian_dagger")

	if got := f.run("attack"); got != "You attacked Masked Figure." {
		t.Errorf("attack = %q", got)
	}
	if !f.game.Player.IsAlive() {
		t.Error("a lethal-grade blow never provokes retaliation")
	}
	if n := f.game.CurrentRoom().FirstNPC(); n == nil || n.Health != 15 {
		t.Errorf("NPC = %+v, want alive with 15 health", n)
	}
}

func TestSelfHarm(t *testing.T) {
	f := newFixture(t)
	if got := f.run("suicide"); got != "You have nothing to kill yourself with..." {
		t.Errorf("suicide = %q", got)
	}

	f.give(t, "obsidian_dagger")
	f.give(t, "rusted_knife")
	got := f.run("kill myself")
	if !strings.Contains(got, "rusted knife") {
		t.Errorf("knife should be used first: %q", got)
	}
	if f.game.Player.IsAlive() {
		t.Error("player survived")
	}
}

func TestSelfHarm_Dagger(t *testing.T) {
	f := newFixture(t)
	f.give(t, "obsidian_dagger")
	if got := f.run("kill self"); !strings.HasPrefix(got, "The dagger speaks to you...") {
		t.Errorf("kill self = %q", got)
	}
}

func TestDrink(t *testing.T) {
	f := newFixture(t)
	if got := f.run("drink blood bottle"); got != "You don't have a blood bottle in your inventory." {
		t.Errorf("drink = %q", got)
	}
	f.give(t, "blood_bottle")
	if got := f.run("drink blood bottle"); !strings.HasPrefix(got, "You begin to drink the blood bottle...") {
		t.Errorf("drink = %q", got)
	}
	if f.game.Evaluate() != game.Lost {
		t.Error("drinking should be fatal")
	}
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	if got := f.run("quit game"); got != "" {
		t.Errorf("quit = %q", got)
	}
	if f.game.Status() != game.Quit {
		t.Errorf("Status() = %v, want quit", f.game.Status())
	}
}

func TestHelp(t *testing.T) {
	f := newFixture(t)
	if got := f.run("help"); !strings.Contains(got, "Topics: combat, exploring, keys, movement, people") {
		t.Errorf("help = %q", got)
	}
	if got := f.run("help fighting"); !strings.Contains(got, "attack (or kill)") {
		t.Errorf("help fighting = %q", got)
	}
	if got := f.run("help xyzzy"); !strings.HasPrefix(got, "No help available for 'xyzzy'.") {
		t.Errorf("help xyzzy = %q", got)
	}
}
