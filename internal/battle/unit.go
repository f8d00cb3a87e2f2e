// Package battle holds the mutable match state: sides, units, score,
// turn counter and the game-over record. It has no rules of its own;
// the rules package mutates it through an explicit *State handle.
package battle

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

// Side identifies one of the two armies.
type Side uint8

const (
	NoSide Side = iota
	Blue        // first side, moves first every turn
	Red
)

// Sides lists both armies in turn order.
var Sides = [2]Side{Blue, Red}

// String returns the side name.
func (s Side) String() string {
	switch s {
	case Blue:
		return "BLUE"
	case Red:
		return "RED"
	default:
		return "NONE"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case Blue:
		return Red
	case Red:
		return Blue
	default:
		return NoSide
	}
}

// ParseSide converts "blue" or "red" into a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blue":
		return Blue, nil
	case "red":
		return Red, nil
	}
	return NoSide, fmt.Errorf("battle: unknown side %q", s)
}

// UnitType selects a unit's immutable base stats and special rules.
type UnitType uint8

const (
	Infantry UnitType = iota
	MachineGun
	Artillery
	Engineer
)

// UnitTypes lists every unit type.
var UnitTypes = [4]UnitType{Infantry, MachineGun, Artillery, Engineer}

// Stats are the base values of a unit type.
type Stats struct {
	Name    string
	HP      int
	Move    int
	Range   int
	Attack  int
	Defense int
}

var statsTable = [...]Stats{
	Infantry:   {Name: "Infantry", HP: 5, Move: 2, Range: 1, Attack: 2, Defense: 1},
	MachineGun: {Name: "MG", HP: 4, Move: 1, Range: 2, Attack: 2, Defense: 2},
	Artillery:  {Name: "Artillery", HP: 3, Move: 1, Range: 3, Attack: 3, Defense: 0},
	Engineer:   {Name: "Engineer", HP: 4, Move: 2, Range: 1, Attack: 1, Defense: 1},
}

// Stats returns the read-only base stats for the type.
func (t UnitType) Stats() Stats {
	if int(t) >= len(statsTable) {
		return Stats{Name: "Unknown"}
	}
	return statsTable[t]
}

// String returns the type's display name.
func (t UnitType) String() string {
	return t.Stats().Name
}

// Glyph returns the single-letter map marker for the type.
func (t UnitType) Glyph() rune {
	switch t {
	case Infantry:
		return 'I'
	case MachineGun:
		return 'M'
	case Artillery:
		return 'A'
	case Engineer:
		return 'E'
	default:
		return '?'
	}
}

// CanActAfterMove reports whether a unit of this type may still attack
// after moving in the same turn.
func (t UnitType) CanActAfterMove() bool {
	return t == Infantry || t == MachineGun
}

// CanFortify reports whether the type can dig trenches.
func (t UnitType) CanFortify() bool {
	return t == Engineer
}

// CanEnter reports whether the type may move onto terrain of kind k.
// Artillery is restricted to open ground and trenches.
func (t UnitType) CanEnter(k terrain.Kind) bool {
	if t == Artillery {
		return k == terrain.Plain || k == terrain.Trench
	}
	return true
}

// ParseUnitType converts a name like "mg" or "artillery" into a UnitType.
func ParseUnitType(s string) (UnitType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "infantry", "inf":
		return Infantry, nil
	case "machinegun", "machine_gun", "mg":
		return MachineGun, nil
	case "artillery", "art":
		return Artillery, nil
	case "engineer", "eng":
		return Engineer, nil
	}
	return 0, fmt.Errorf("battle: unknown unit type %q", s)
}

// Unit is a single piece on the board.
type Unit struct {
	ID    int
	Side  Side
	Type  UnitType
	Pos   hex.Coord
	HP    int
	Moved bool // moved this turn
	Acted bool // no further move or attack allowed this turn
}

// Stats returns the base stats of the unit's type.
func (u *Unit) Stats() Stats {
	return u.Type.Stats()
}

// String formats the unit for logs, e.g. "RED Artillery#7 (8,4)".
func (u *Unit) String() string {
	return fmt.Sprintf("%s %s#%d %s", u.Side, u.Type, u.ID, u.Pos)
}
