package rules

import (
	"container/heap"

	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

// Reachable returns every hex the unit can end a move on this turn, in the
// order a uniform-cost search settles them (cheapest first). Occupied
// cells, cells past the unit's move allowance and the origin are never
// included. A unit that has fully acted gets nothing.
func (e *Engine) Reachable(st *battle.State, m *terrain.Map, u *battle.Unit) []hex.Coord {
	if u == nil || u.Acted || st.Over {
		return nil
	}

	maxMove := u.Stats().Move
	best := map[hex.Coord]int{u.Pos: 0}
	settled := make(map[hex.Coord]bool)

	f := &frontier{{pos: u.Pos, cost: 0}}
	seq := 1

	var out []hex.Coord
	for f.Len() > 0 {
		cur := heap.Pop(f).(frontierItem)
		if settled[cur.pos] {
			continue
		}
		settled[cur.pos] = true

		if cur.pos != u.Pos {
			out = append(out, cur.pos)
		}

		for _, next := range hex.Neighbors(cur.pos) {
			if !m.InBounds(next) {
				continue
			}
			if st.UnitAt(next) != nil {
				continue
			}
			kind := m.At(next)
			if !u.Type.CanEnter(kind) {
				continue
			}

			cost := cur.cost + kind.Cost()
			if cost > maxMove {
				continue
			}
			if prev, seen := best[next]; seen && cost >= prev {
				continue
			}
			best[next] = cost
			heap.Push(f, frontierItem{pos: next, cost: cost, seq: seq})
			seq++
		}
	}
	return out
}

// CanReach reports whether to is in the unit's reachable set.
func (e *Engine) CanReach(st *battle.State, m *terrain.Map, u *battle.Unit, to hex.Coord) bool {
	for _, c := range e.Reachable(st, m, u) {
		if c == to {
			return true
		}
	}
	return false
}

// ApplyMove relocates a unit without validating the destination and marks
// it as moved. Types that cannot act after moving are also marked acted.
func (e *Engine) ApplyMove(st *battle.State, unitID int, to hex.Coord) {
	if st.Over {
		return
	}
	u := st.Unit(unitID)
	if u == nil {
		return
	}

	u.Pos = to
	u.Moved = true
	if !u.Type.CanActAfterMove() {
		u.Acted = true
	}
	e.CheckWin(st)
}

// Move validates and applies a move for the active side.
func (e *Engine) Move(st *battle.State, m *terrain.Map, unitID int, to hex.Coord) error {
	u, err := e.activeUnit(st, unitID)
	if err != nil {
		return err
	}
	if u.Moved {
		return ErrAlreadyMoved
	}
	if !e.CanReach(st, m, u, to) {
		return ErrIllegalMove
	}
	e.ApplyMove(st, unitID, to)
	return nil
}

// activeUnit looks up a unit that may act for the side to move.
func (e *Engine) activeUnit(st *battle.State, unitID int) (*battle.Unit, error) {
	if st.Over {
		return nil, ErrGameOver
	}
	u := st.Unit(unitID)
	if u == nil {
		return nil, ErrUnitNotFound
	}
	if u.Side != st.Active {
		return nil, ErrNotYourTurn
	}
	return u, nil
}
