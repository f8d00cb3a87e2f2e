package ai

import (
	"fmt"
	"iter"

	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/rules"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

// Action is what a unit did during its step.
type Action int

const (
	ActionPass       Action = iota // nothing legal to do
	ActionAttack                   // attacked from its starting cell
	ActionMove                     // moved, no target afterwards
	ActionMoveAttack               // moved, then attacked
	ActionEndTurn                  // the side handed over play
)

// String returns a short name for the action.
func (a Action) String() string {
	switch a {
	case ActionPass:
		return "pass"
	case ActionAttack:
		return "attack"
	case ActionMove:
		return "move"
	case ActionMoveAttack:
		return "move+attack"
	case ActionEndTurn:
		return "end turn"
	default:
		return "unknown"
	}
}

// Step records one discrete decision.
type Step struct {
	Side     battle.Side
	Action   Action
	UnitID   int
	UnitType battle.UnitType
	From     hex.Coord
	To       hex.Coord
	Target   battle.UnitType
	Result   rules.AttackResult // zero unless the step attacked
}

// Attacked reports whether the step included an attack.
func (s Step) Attacked() bool {
	return s.Action == ActionAttack || s.Action == ActionMoveAttack
}

// String formats the step for logs and the event panel.
func (s Step) String() string {
	switch s.Action {
	case ActionEndTurn:
		return fmt.Sprintf("%s ends turn", s.Side)
	case ActionPass:
		return fmt.Sprintf("%s %s#%d holds", s.Side, s.UnitType, s.UnitID)
	case ActionMove:
		return fmt.Sprintf("%s %s#%d %v->%v", s.Side, s.UnitType, s.UnitID, s.From, s.To)
	}

	verb := "hits"
	if s.Result.Killed {
		verb = "destroys"
	}
	msg := fmt.Sprintf("%s %s#%d %s %s#%d (%d dmg)",
		s.Side, s.UnitType, s.UnitID, verb, s.Target, s.Result.TargetID, s.Result.Damage)
	if s.Action == ActionMoveAttack {
		msg = fmt.Sprintf("%s %s#%d %v->%v, %s %s#%d (%d dmg)",
			s.Side, s.UnitType, s.UnitID, s.From, s.To, verb, s.Target, s.Result.TargetID, s.Result.Damage)
	}
	return msg
}

// Turn iterates over one side's units for a single turn.
// The caller owns st and m; Turn only holds them until it is done.
type Turn struct {
	planner *Planner
	engine  *rules.Engine
	st      *battle.State
	m       *terrain.Map
	side    battle.Side
	queue   []int // unit IDs in roster order at turn start
	next    int
	done    bool
}

// NewTurn prepares a turn for the side that is active right now.
// If the match is already over the turn is empty.
func (p *Planner) NewTurn(e *rules.Engine, st *battle.State, m *terrain.Map) *Turn {
	t := &Turn{
		planner: p,
		engine:  e,
		st:      st,
		m:       m,
		side:    st.Active,
	}
	for _, u := range st.UnitsOf(st.Active) {
		t.queue = append(t.queue, u.ID)
	}
	t.done = st.Over
	return t
}

// Side returns the side this turn plays for.
func (t *Turn) Side() battle.Side {
	return t.side
}

// Done reports whether the turn has no more steps.
func (t *Turn) Done() bool {
	return t.done
}

// Next performs the next unit's decision and returns it. After the last
// unit it ends the turn and returns an ActionEndTurn step. ok is false once
// the turn is finished, the match is over, or play passed to the other
// side outside the iterator.
func (t *Turn) Next() (Step, bool) {
	if t.done {
		return Step{}, false
	}
	if t.st.Over || t.st.Active != t.side {
		t.done = true
		return Step{}, false
	}

	for t.next < len(t.queue) {
		id := t.queue[t.next]
		t.next++

		u := t.st.Unit(id)
		if u == nil {
			continue // eliminated earlier this turn
		}
		return t.planner.act(t.engine, t.st, t.m, u), true
	}

	t.done = true
	t.engine.EndTurn(t.st)
	return Step{Side: t.side, Action: ActionEndTurn}, true
}

// Steps adapts the turn to a range-over-func iterator.
func (t *Turn) Steps() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for {
			s, ok := t.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// act applies one unit's decision: attack if anything is in range,
// otherwise advance on the enemy headquarters and attack if that brought
// a target into range.
func (p *Planner) act(e *rules.Engine, st *battle.State, m *terrain.Map, u *battle.Unit) Step {
	step := Step{
		Side:     u.Side,
		UnitID:   u.ID,
		UnitType: u.Type,
		From:     u.Pos,
		To:       u.Pos,
	}

	if target := p.BestTarget(e.Attackable(st, u)); target != nil {
		step.Action = ActionAttack
		step.Target = target.Type
		step.Result = e.ApplyAttack(st, u.ID, target.ID)
		return step
	}

	goal, ok := st.HQ[u.Side.Opponent()]
	if !ok {
		return step
	}
	dest, ok := p.BestMove(e.Reachable(st, m, u), goal)
	if !ok {
		return step
	}
	e.ApplyMove(st, u.ID, dest)
	step.Action = ActionMove
	step.To = dest

	if target := p.BestTarget(e.Attackable(st, u)); target != nil {
		step.Action = ActionMoveAttack
		step.Target = target.Type
		step.Result = e.ApplyAttack(st, u.ID, target.ID)
	}
	return step
}
