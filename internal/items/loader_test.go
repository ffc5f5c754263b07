package items

import (
	"os"
	"path/filepath"
	"testing"
)

const testItemsYAML = `
items:
  rusted_knife:
    name: rusted knife
    description: A small blade.
    type: weapon
    damage: 2
    self_harm: You use the knife.
  cell_key:
    name: cell key
    description: Opens a cell.
    type: key
  blood_bottle:
    name: blood bottle
    description: Thick and red.
    type: drink
    consume: You drink.
`

func TestParseItems(t *testing.T) {
	config, err := ParseItems([]byte(testItemsYAML))
	if err != nil {
		t.Fatalf("ParseItems failed: %v", err)
	}

	ids := config.IDs()
	if len(ids) != 3 || ids[0] != "blood_bottle" {
		t.Errorf("Expected sorted IDs starting with blood_bottle, got %v", ids)
	}

	knife, ok := config.GetItemByID("rusted_knife")
	if !ok {
		t.Fatal("Expected to find rusted_knife")
	}
	if knife.Type != Weapon || knife.Damage != 2 {
		t.Errorf("Expected weapon with damage 2, got %v/%d", knife.Type, knife.Damage)
	}
	if knife.SelfHarmText != "You use the knife." {
		t.Errorf("Unexpected self harm text %q", knife.SelfHarmText)
	}

	bottle, _ := config.GetItemByID("blood_bottle")
	if bottle.Type != Drink || bottle.ConsumeText != "You drink." {
		t.Errorf("Unexpected blood bottle %+v", bottle)
	}

	if _, err := config.MustItem("missing"); err == nil {
		t.Error("Expected error for unknown item")
	}
}

func TestParseItemsRejectsDuplicateNames(t *testing.T) {
	data := `
items:
  a:
    name: Gold Key
  b:
    name: gold key
`
	if _, err := ParseItems([]byte(data)); err == nil {
		t.Error("Expected error for case-insensitive duplicate names")
	}
}

func TestParseItemsRejectsMissingName(t *testing.T) {
	if _, err := ParseItems([]byte("items:\n  a:\n    description: x\n")); err == nil {
		t.Error("Expected error for item without a name")
	}
}

func TestLoadItemsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	if err := os.WriteFile(path, []byte(testItemsYAML), 0644); err != nil {
		t.Fatalf("Failed to write items file: %v", err)
	}

	config, err := LoadItemsFromYAML(path)
	if err != nil {
		t.Fatalf("LoadItemsFromYAML failed: %v", err)
	}
	if len(config.Items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(config.Items))
	}

	if _, err := LoadItemsFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestGetItemByIDReturnsFreshCopy(t *testing.T) {
	config, _ := ParseItems([]byte(testItemsYAML))
	a, _ := config.GetItemByID("cell_key")
	a.Name = "tampered"
	b, _ := config.GetItemByID("cell_key")
	if b.Name != "cell key" {
		t.Errorf("Expected registry to be unaffected, got %q", b.Name)
	}
}
