package items

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ItemDefinition represents an item definition from the YAML file
type ItemDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Damage      int    `yaml:"damage,omitempty"`
	SelfHarm    string `yaml:"self_harm,omitempty"`
	Consume     string `yaml:"consume,omitempty"`
}

// ItemsConfig represents the structure of the items.yaml file. Once loaded it
// is the read-only registry every world is built from.
type ItemsConfig struct {
	Items map[string]ItemDefinition `yaml:"items"`
}

// LoadItemsFromYAML loads item definitions from a YAML file
func LoadItemsFromYAML(filename string) (*ItemsConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}
	return ParseItems(data)
}

// LoadItemsFS loads item definitions from a file inside fsys
func LoadItemsFS(fsys fs.FS, name string) (*ItemsConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}
	return ParseItems(data)
}

// ParseItems parses and validates item definitions
func ParseItems(data []byte) (*ItemsConfig, error) {
	var config ItemsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse items YAML: %w", err)
	}

	seen := make(map[string]string, len(config.Items))
	for _, id := range config.IDs() {
		def := config.Items[id]
		if def.Name == "" {
			return nil, fmt.Errorf("item %q has no name", id)
		}
		key := Normalize(def.Name)
		if other, dup := seen[key]; dup {
			return nil, fmt.Errorf("items %q and %q share the name %q", other, id, def.Name)
		}
		seen[key] = id
	}

	return &config, nil
}

// CreateItemFromDefinition creates an Item from an ItemDefinition
// The id parameter is the YAML key for this item (e.g., "cell_key")
func CreateItemFromDefinition(id string, def ItemDefinition) Item {
	var item Item
	if def.Damage > 0 {
		item = NewWeapon(def.Name, def.Description, def.Damage)
	} else {
		item = NewItem(def.Name, def.Description, StringToItemType(def.Type))
	}
	item.ID = id
	item.SelfHarmText = def.SelfHarm
	item.ConsumeText = def.Consume
	return item
}

// GetItemByID returns a fresh copy of the item with the given ID
func (config *ItemsConfig) GetItemByID(id string) (Item, bool) {
	def, exists := config.Items[id]
	if !exists {
		return Item{}, false
	}
	return CreateItemFromDefinition(id, def), true
}

// MustItem returns the item with the given ID or an error naming it
func (config *ItemsConfig) MustItem(id string) (Item, error) {
	item, ok := config.GetItemByID(id)
	if !ok {
		return Item{}, fmt.Errorf("unknown item %q", id)
	}
	return item, nil
}

// IDs returns every item ID in sorted order
func (config *ItemsConfig) IDs() []string {
	ids := make([]string, 0, len(config.Items))
	for id := range config.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
