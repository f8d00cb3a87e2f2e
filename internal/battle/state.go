package battle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/hexfront/internal/hex"
)

// Placement puts one unit of a given type on the board at match start.
type Placement struct {
	Side Side
	Type UnitType
	Pos  hex.Coord
}

// Setup is everything needed to start a match.
type Setup struct {
	Width   int
	Height  int
	Seed    int64 // map seed only; combat dice use a separate source
	HQ      map[Side]hex.Coord
	Players map[Side]string
	Roster  []Placement
}

// DefaultSetup returns the standard 9x11 scenario with four units per side.
func DefaultSetup(seed int64) Setup {
	return Setup{
		Width:  9,
		Height: 11,
		Seed:   seed,
		HQ: map[Side]hex.Coord{
			Blue: {Q: 1, R: 5},
			Red:  {Q: 7, R: 5},
		},
		Players: map[Side]string{
			Blue: "Player",
			Red:  "CPU",
		},
		Roster: []Placement{
			{Side: Blue, Type: Infantry, Pos: hex.Coord{Q: 0, R: 5}},
			{Side: Blue, Type: MachineGun, Pos: hex.Coord{Q: 1, R: 4}},
			{Side: Blue, Type: Artillery, Pos: hex.Coord{Q: 0, R: 6}},
			{Side: Blue, Type: Engineer, Pos: hex.Coord{Q: 1, R: 6}},
			{Side: Red, Type: Infantry, Pos: hex.Coord{Q: 8, R: 5}},
			{Side: Red, Type: MachineGun, Pos: hex.Coord{Q: 7, R: 4}},
			{Side: Red, Type: Artillery, Pos: hex.Coord{Q: 8, R: 4}},
			{Side: Red, Type: Engineer, Pos: hex.Coord{Q: 7, R: 6}},
		},
	}
}

// Validate checks that the setup can start a match: both sides have units,
// every position and headquarters is on the board, and no two units share
// a cell.
func (s Setup) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("battle: invalid board size %dx%d", s.Width, s.Height)
	}

	var errs []error
	for _, side := range Sides {
		hq, ok := s.HQ[side]
		if !ok {
			errs = append(errs, fmt.Errorf("battle: %s has no headquarters", side))
			continue
		}
		if !hex.InBounds(hq, s.Width, s.Height) {
			errs = append(errs, fmt.Errorf("battle: %s headquarters %v is off the board", side, hq))
		}
	}

	counts := make(map[Side]int)
	occupied := make(map[hex.Coord]bool)
	for i, p := range s.Roster {
		if p.Side != Blue && p.Side != Red {
			errs = append(errs, fmt.Errorf("battle: roster[%d] has no side", i))
			continue
		}
		if !hex.InBounds(p.Pos, s.Width, s.Height) {
			errs = append(errs, fmt.Errorf("battle: roster[%d] %s at %v is off the board", i, p.Type, p.Pos))
		}
		if occupied[p.Pos] {
			errs = append(errs, fmt.Errorf("battle: roster[%d] %v is already occupied", i, p.Pos))
		}
		occupied[p.Pos] = true
		counts[p.Side]++
	}
	for _, side := range Sides {
		if counts[side] == 0 {
			errs = append(errs, fmt.Errorf("battle: %s has an empty roster", side))
		}
	}

	return errors.Join(errs...)
}

// EndReason records which win condition ended the match.
type EndReason string

const (
	ReasonElimination EndReason = "elimination"
	ReasonScore       EndReason = "score"
	ReasonCapture     EndReason = "capture"
)

// State is the complete mutable record of a match.
type State struct {
	MatchID string
	Width   int
	Height  int
	Seed    int64

	Active Side
	Turn   int
	Score  map[Side]int
	Over   bool
	Winner Side      // NoSide until Over
	Reason EndReason // empty until Over

	Units   []*Unit // roster order; eliminated units are removed
	HQ      map[Side]hex.Coord
	Players map[Side]string

	nextID int
}

// New creates the initial state for a match: turn 1, BLUE to move,
// units spawned in roster order with IDs starting at 1.
func New(setup Setup) (*State, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}

	st := &State{
		MatchID: uuid.NewString(),
		Width:   setup.Width,
		Height:  setup.Height,
		Seed:    setup.Seed,
		Active:  Blue,
		Turn:    1,
		Score:   map[Side]int{Blue: 0, Red: 0},
		HQ:      make(map[Side]hex.Coord, 2),
		Players: make(map[Side]string, 2),
		nextID:  1,
	}
	for side, c := range setup.HQ {
		st.HQ[side] = c
	}
	for side, name := range setup.Players {
		st.Players[side] = name
	}
	for _, p := range setup.Roster {
		st.Spawn(p.Side, p.Type, p.Pos)
	}
	return st, nil
}

// Spawn adds a fresh unit at full health and returns it.
// IDs increase monotonically and are never reused.
func (st *State) Spawn(side Side, t UnitType, pos hex.Coord) *Unit {
	u := &Unit{
		ID:   st.nextID,
		Side: side,
		Type: t,
		Pos:  pos,
		HP:   t.Stats().HP,
	}
	st.nextID++
	st.Units = append(st.Units, u)
	return u
}

// Unit returns the live unit with the given ID, or nil.
func (st *State) Unit(id int) *Unit {
	for _, u := range st.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UnitAt returns the unit occupying c, or nil.
func (st *State) UnitAt(c hex.Coord) *Unit {
	for _, u := range st.Units {
		if u.Pos == c {
			return u
		}
	}
	return nil
}

// UnitsOf returns the live units of a side in roster order.
func (st *State) UnitsOf(side Side) []*Unit {
	var out []*Unit
	for _, u := range st.Units {
		if u.Side == side {
			out = append(out, u)
		}
	}
	return out
}

// Remove deletes a unit from the collection. Missing IDs are ignored.
func (st *State) Remove(id int) {
	for i, u := range st.Units {
		if u.ID == id {
			st.Units = append(st.Units[:i], st.Units[i+1:]...)
			return
		}
	}
}

// ResetFlags clears Moved and Acted on every unit of side.
func (st *State) ResetFlags(side Side) {
	for _, u := range st.Units {
		if u.Side == side {
			u.Moved = false
			u.Acted = false
		}
	}
}

// Player returns the display name of a side's player.
func (st *State) Player(side Side) string {
	if name, ok := st.Players[side]; ok && name != "" {
		return name
	}
	return side.String()
}

// Clone returns a deep copy that shares nothing with st.
func (st *State) Clone() *State {
	c := *st
	c.Score = map[Side]int{Blue: st.Score[Blue], Red: st.Score[Red]}
	c.HQ = make(map[Side]hex.Coord, len(st.HQ))
	for k, v := range st.HQ {
		c.HQ[k] = v
	}
	c.Players = make(map[Side]string, len(st.Players))
	for k, v := range st.Players {
		c.Players[k] = v
	}
	c.Units = make([]*Unit, len(st.Units))
	for i, u := range st.Units {
		cu := *u
		c.Units[i] = &cu
	}
	return &c
}
