package items

// ItemType represents the category of an item
type ItemType int

const (
	Misc ItemType = iota
	Weapon
	Key
	Drink
	Artifact
	Note
)

// String returns the string representation of an ItemType
func (t ItemType) String() string {
	switch t {
	case Weapon:
		return "weapon"
	case Key:
		return "key"
	case Drink:
		return "drink"
	case Artifact:
		return "artifact"
	case Note:
		return "note"
	case Misc:
		return "misc"
	default:
		return "unknown"
	}
}

// StringToItemType converts a string to an ItemType
func StringToItemType(typeStr string) ItemType {
	switch Normalize(typeStr) {
	case "weapon":
		return Weapon
	case "key":
		return Key
	case "drink":
		return Drink
	case "artifact":
		return Artifact
	case "note":
		return Note
	default:
		return Misc
	}
}
