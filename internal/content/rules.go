package content

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/tenebrae/internal/items"
)

// RulesDefinition is rules.yaml as written; item references are item IDs.
type RulesDefinition struct {
	VictoryItem   string   `yaml:"victory_item"`
	BaseDamage    int      `yaml:"base_damage"`
	LethalDamage  int      `yaml:"lethal_damage"`
	SelfHarmItems []string `yaml:"self_harm_items"`
	PoisonItem    string   `yaml:"poison_item"`
}

// Rules holds the game constants with item references resolved to items.
type Rules struct {
	VictoryItem   items.Item
	BaseDamage    int
	LethalDamage  int
	SelfHarmItems []items.Item
	PoisonItem    items.Item
}

// LoadRulesFS reads and resolves the rules file in fsys.
func LoadRulesFS(fsys fs.FS, name string, registry *items.ItemsConfig) (*Rules, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data, registry)
}

// ParseRules parses rules YAML and resolves its item IDs through registry.
func ParseRules(data []byte, registry *items.ItemsConfig) (*Rules, error) {
	var def RulesDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	if def.BaseDamage <= 0 {
		def.BaseDamage = 1
	}
	if def.LethalDamage <= 0 {
		return nil, fmt.Errorf("rules: lethal_damage must be positive")
	}

	rules := &Rules{
		BaseDamage:   def.BaseDamage,
		LethalDamage: def.LethalDamage,
	}

	var err error
	if rules.VictoryItem, err = registry.MustItem(def.VictoryItem); err != nil {
		return nil, fmt.Errorf("rules victory_item: %w", err)
	}
	if rules.PoisonItem, err = registry.MustItem(def.PoisonItem); err != nil {
		return nil, fmt.Errorf("rules poison_item: %w", err)
	}
	for _, id := range def.SelfHarmItems {
		item, err := registry.MustItem(id)
		if err != nil {
			return nil, fmt.Errorf("rules self_harm_items: %w", err)
		}
		rules.SelfHarmItems = append(rules.SelfHarmItems, item)
	}
	return rules, nil
}
