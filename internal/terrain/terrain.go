// Package terrain holds the battlefield map: one terrain kind per in-bounds
// hex, generated from a seed and mutated only by trench construction.
package terrain

import (
	"fmt"
	"strings"
)

// Kind is a terrain type. Each kind carries a fixed movement cost.
type Kind uint8

const (
	Plain Kind = iota
	Forest
	Hill
	Trench
)

// Cost returns the movement points needed to enter a hex of this kind.
func (k Kind) Cost() int {
	switch k {
	case Forest, Hill:
		return 2
	default:
		return 1
	}
}

// String returns the display name of the terrain kind.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "Plain"
	case Forest:
		return "Forest"
	case Hill:
		return "Hill"
	case Trench:
		return "Trench"
	default:
		return "Unknown"
	}
}

// Glyph returns the map character used to draw the terrain.
func (k Kind) Glyph() rune {
	switch k {
	case Forest:
		return '♣'
	case Hill:
		return '^'
	case Trench:
		return '='
	default:
		return '.'
	}
}

// ParseKind converts a name like "forest" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "plains":
		return Plain, nil
	case "forest":
		return Forest, nil
	case "hill", "hills":
		return Hill, nil
	case "trench":
		return Trench, nil
	}
	return Plain, fmt.Errorf("terrain: unknown kind %q", s)
}
