package rules

import (
	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

// TrenchTargets returns the cells an engineer can fortify: the six
// neighbours followed by its own cell, restricted to in-bounds open ground
// that is empty or holds the engineer itself.
func (e *Engine) TrenchTargets(st *battle.State, m *terrain.Map, u *battle.Unit) []hex.Coord {
	if u == nil || u.Acted || st.Over || !u.Type.CanFortify() {
		return nil
	}

	neighbors := hex.Neighbors(u.Pos)
	candidates := append(neighbors[:], u.Pos)

	var out []hex.Coord
	for _, c := range candidates {
		if !m.InBounds(c) || m.At(c) != terrain.Plain {
			continue
		}
		if occ := st.UnitAt(c); occ != nil && occ.ID != u.ID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// BuildTrench turns the target cell into a trench and marks the unit acted.
// The target is not validated; see Fortify.
func (e *Engine) BuildTrench(st *battle.State, m *terrain.Map, unitID int, target hex.Coord) {
	if st.Over {
		return
	}
	u := st.Unit(unitID)
	if u == nil {
		return
	}

	m.Set(target, terrain.Trench)
	u.Acted = true
	e.CheckWin(st)
}

// Fortify validates and applies trench construction.
func (e *Engine) Fortify(st *battle.State, m *terrain.Map, unitID int, target hex.Coord) error {
	u, err := e.activeUnit(st, unitID)
	if err != nil {
		return err
	}
	for _, c := range e.TrenchTargets(st, m, u) {
		if c == target {
			e.BuildTrench(st, m, unitID, target)
			return nil
		}
	}
	return ErrCannotFortify
}
