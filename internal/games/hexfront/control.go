package hexfront

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/core"
	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/rules"
)

// moveCursor walks the cursor across offset cells, clamped to the board.
func (g *Game) moveCursor(in core.InputFrame) {
	st := g.match.State
	off := hex.ToOffset(g.cursor)
	switch {
	case in.Has(core.ActionUp):
		off.Row--
	case in.Has(core.ActionDown):
		off.Row++
	case in.Has(core.ActionLeft):
		off.Col--
	case in.Has(core.ActionRight):
		off.Col++
	default:
		return
	}
	off.Col = core.Clamp(off.Col, 0, st.Width-1)
	off.Row = core.Clamp(off.Row, 0, st.Height-1)
	g.cursor = hex.FromOffset(off)
}

// handleInput applies one frame of human orders for the active side.
func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionEndTurn):
		g.endTurn()
	case in.Has(core.ActionNextUnit):
		g.selectNext()
	case in.Has(core.ActionCancel):
		g.clearSelection()
		g.status = ""
	case in.Has(core.ActionFortify):
		g.toggleFortify()
	case in.Has(core.ActionConfirm):
		g.confirm()
	}
}

// selectedUnit returns the selected unit, dropping a stale selection.
func (g *Game) selectedUnit() *battle.Unit {
	if g.selected == 0 {
		return nil
	}
	u := g.match.State.Unit(g.selected)
	if u == nil || u.Acted || u.Side != g.match.State.Active {
		g.clearSelection()
		return nil
	}
	return u
}

func (g *Game) clearSelection() {
	g.selected = 0
	g.fortify = false
	g.reach = nil
	g.targets = nil
	g.trenches = nil
}

// selectUnit makes u the selected unit and computes its highlights.
func (g *Game) selectUnit(u *battle.Unit) {
	g.clearSelection()
	g.selected = u.ID
	g.refreshHighlights()
	g.status = fmt.Sprintf("%s selected", u)
}

// refreshHighlights recomputes reachable, attackable and trench cells for
// the selected unit.
func (g *Game) refreshHighlights() {
	u := g.selectedUnit()
	if u == nil {
		return
	}
	mt := g.match

	g.reach = make(map[hex.Coord]bool)
	if !u.Moved {
		for _, c := range mt.Engine.Reachable(mt.State, mt.Map, u) {
			g.reach[c] = true
		}
	}
	g.targets = make(map[hex.Coord]int)
	for _, t := range mt.Engine.Attackable(mt.State, u) {
		g.targets[t.Pos] = t.ID
	}
	g.trenches = make(map[hex.Coord]bool)
	for _, c := range mt.Engine.TrenchTargets(mt.State, mt.Map, u) {
		g.trenches[c] = true
	}
}

// selectNext cycles through the active side's ready units in roster order.
func (g *Game) selectNext() {
	ready := g.match.Engine.Ready(g.match.State)
	if len(ready) == 0 {
		g.status = "No ready units"
		return
	}
	next := ready[0]
	for i, u := range ready {
		if u.ID == g.selected && i+1 < len(ready) {
			next = ready[i+1]
			break
		}
	}
	g.cursor = next.Pos
	g.selectUnit(next)
}

func (g *Game) toggleFortify() {
	u := g.selectedUnit()
	switch {
	case u == nil:
		g.status = "Select an engineer first"
	case !u.Type.CanFortify():
		g.status = fmt.Sprintf("%s cannot dig trenches", u.Type)
	case len(g.trenches) == 0:
		g.status = "Nowhere to dig"
	default:
		g.fortify = !g.fortify
		if g.fortify {
			g.status = "Fortify: pick a cell"
		} else {
			g.status = fmt.Sprintf("%s selected", u)
		}
	}
}

// confirm resolves Enter at the cursor: select, move, attack or dig.
func (g *Game) confirm() {
	mt := g.match
	st := mt.State
	at := st.UnitAt(g.cursor)
	u := g.selectedUnit()

	if u == nil {
		if at != nil && at.Side == st.Active && !at.Acted {
			g.selectUnit(at)
			return
		}
		g.status = "No ready unit here"
		return
	}

	switch {
	case g.fortify:
		if err := mt.Engine.Fortify(st, mt.Map, u.ID, g.cursor); err != nil {
			g.reject(err)
			return
		}
		g.record(fmt.Sprintf("%s %s#%d digs a trench at %v", u.Side, u.Type, u.ID, g.cursor))
		g.clearSelection()

	case at != nil && at.ID == u.ID:
		g.clearSelection()
		g.status = ""

	case at != nil && at.Side == u.Side:
		if at.Acted {
			g.status = fmt.Sprintf("%s has already acted", at)
			return
		}
		g.selectUnit(at)
		return

	case at != nil:
		id, ok := g.targets[g.cursor]
		if !ok {
			g.status = "Target out of range"
			return
		}
		res, err := mt.Engine.Attack(st, u.ID, id)
		if err != nil {
			g.reject(err)
			return
		}
		g.record(describeAttack(u, at.Type, res))
		g.clearSelection()

	default:
		if !g.reach[g.cursor] {
			g.status = "Out of reach"
			return
		}
		from := u.Pos
		if err := mt.Engine.Move(st, mt.Map, u.ID, g.cursor); err != nil {
			g.reject(err)
			return
		}
		g.record(fmt.Sprintf("%s %s#%d %v->%v", u.Side, u.Type, u.ID, from, u.Pos))
		if u.Acted {
			g.clearSelection()
		} else {
			g.refreshHighlights()
		}
	}

	g.afterAction()
}

// reject reports a refused order on the status line.
func (g *Game) reject(err error) {
	switch {
	case errors.Is(err, rules.ErrIllegalMove):
		g.status = "Out of reach"
	case errors.Is(err, rules.ErrIllegalAttack):
		g.status = "Target out of range"
	case errors.Is(err, rules.ErrCannotFortify):
		g.status = "Cannot dig there"
	case errors.Is(err, rules.ErrAlreadyMoved):
		g.status = "Unit has already moved"
	default:
		g.status = err.Error()
	}
	g.log.Debug("order refused", "err", err)
}

// afterAction checks for game over and the automatic end of turn.
func (g *Game) afterAction() {
	st := g.match.State
	if st.Over {
		g.announceWinner()
		return
	}
	if g.match.Engine.CheckAutoEndTurn(st) {
		g.clearSelection()
		g.turnStarted()
	}
}

func (g *Game) endTurn() {
	st := g.match.State
	g.record(fmt.Sprintf("%s ends turn", st.Active))
	g.match.Engine.EndTurn(st)
	g.clearSelection()
	g.turnStarted()
}

// turnStarted announces the newly active side.
func (g *Game) turnStarted() {
	st := g.match.State
	g.addEvent(fmt.Sprintf("Turn %d: %s to move", st.Turn, st.Active))
	g.status = ""
	if !g.mode.Automated(st.Active) {
		g.cursor = g.firstReadyPos()
	}
}

// firstReadyPos returns where the cursor should jump at the start of a
// human turn.
func (g *Game) firstReadyPos() hex.Coord {
	if ready := g.match.Engine.Ready(g.match.State); len(ready) > 0 {
		return ready[0].Pos
	}
	return g.cursor
}

// record logs an action and adds it to the event panel.
func (g *Game) record(msg string) {
	g.addEvent(msg)
	g.status = ""
	g.log.Info(msg, "turn", g.match.State.Turn)
}

func (g *Game) announceWinner() {
	st := g.match.State
	msg := fmt.Sprintf("%s wins by %s", st.Winner, st.Reason)
	g.addEvent(msg)
	g.log.Info("match over", "match", st.MatchID, "winner", st.Winner,
		"reason", st.Reason, "blue", st.Score[battle.Blue], "red", st.Score[battle.Red], "turns", st.Turn)
}

func describeAttack(u *battle.Unit, target battle.UnitType, res rules.AttackResult) string {
	verb := "hits"
	if res.Killed {
		verb = "destroys"
	}
	return fmt.Sprintf("%s %s#%d %s %s#%d (%d dmg)", u.Side, u.Type, u.ID, verb, target, res.TargetID, res.Damage)
}
