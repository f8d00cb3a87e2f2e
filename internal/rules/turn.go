package rules

import (
	"github.com/vovakirdan/hexfront/internal/battle"
)

// CheckWin evaluates the win conditions in order and records the first
// that holds: elimination, score threshold, then headquarters capture.
// Once the match is over it never changes the recorded winner.
func (e *Engine) CheckWin(st *battle.State) {
	if st.Over {
		return
	}

	// Elimination
	blue := len(st.UnitsOf(battle.Blue))
	red := len(st.UnitsOf(battle.Red))
	if blue == 0 {
		finish(st, battle.Red, battle.ReasonElimination)
		return
	}
	if red == 0 {
		finish(st, battle.Blue, battle.ReasonElimination)
		return
	}

	// Score threshold
	for _, side := range battle.Sides {
		if st.Score[side] >= e.cfg.ScoreToWin {
			finish(st, side, battle.ReasonScore)
			return
		}
	}

	// Headquarters capture: RED on BLUE's HQ is checked first
	for _, side := range []battle.Side{battle.Red, battle.Blue} {
		hq, ok := st.HQ[side.Opponent()]
		if !ok {
			continue
		}
		if u := st.UnitAt(hq); u != nil && u.Side == side {
			finish(st, side, battle.ReasonCapture)
			return
		}
	}
}

func finish(st *battle.State, winner battle.Side, reason battle.EndReason) {
	st.Over = true
	st.Winner = winner
	st.Reason = reason
}

// EndTurn passes play to the other side. Only the newly active side has its
// moved/acted flags cleared; the outgoing side keeps its flags until its
// own next activation. The turn counter advances when play returns to BLUE.
func (e *Engine) EndTurn(st *battle.State) {
	if st.Over {
		return
	}

	st.Active = st.Active.Opponent()
	st.ResetFlags(st.Active)

	if st.Active == battle.Blue {
		st.Turn++
	}
}

// CheckAutoEndTurn ends the turn when every unit of the active side has
// fully acted. It reports whether it did so, so the caller can start the
// next side's activation.
func (e *Engine) CheckAutoEndTurn(st *battle.State) bool {
	if st.Over {
		return false
	}

	units := st.UnitsOf(st.Active)
	if len(units) == 0 {
		return false
	}
	for _, u := range units {
		if !u.Acted {
			return false
		}
	}

	e.EndTurn(st)
	return true
}

// Ready returns the active side's units that may still act this turn.
func (e *Engine) Ready(st *battle.State) []*battle.Unit {
	var out []*battle.Unit
	for _, u := range st.UnitsOf(st.Active) {
		if !u.Acted {
			out = append(out, u)
		}
	}
	return out
}
