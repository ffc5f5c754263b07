package world

import "strings"

// Direction is one of the four compass directions
type Direction int

const (
	NoDirection Direction = iota
	North
	South
	East
	West
)

// Directions lists every direction in input-matching priority order
var Directions = []Direction{North, South, East, West}

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "none"
	}
}

// ParseDirection converts an exact direction name to a Direction
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north":
		return North, true
	case "south":
		return South, true
	case "east":
		return East, true
	case "west":
		return West, true
	default:
		return NoDirection, false
	}
}

// ExtractDirection returns the first direction, by priority, whose name
// appears anywhere in the lower-cased input. "go north then west" is North.
func ExtractDirection(input string) (Direction, bool) {
	for _, d := range Directions {
		if strings.Contains(input, d.String()) {
			return d, true
		}
	}
	return NoDirection, false
}
