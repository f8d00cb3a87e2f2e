// Package ai drives the automated side. A Turn walks the side's roster one
// unit at a time; each call to Next performs exactly one unit's decision so
// the caller can render between steps.
package ai

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/rules"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

// DefaultTargetValues ranks enemy types by how much the AI wants to hit them.
func DefaultTargetValues() map[battle.UnitType]int {
	return map[battle.UnitType]int{
		battle.Artillery:  4,
		battle.MachineGun: 3,
		battle.Infantry:   2,
		battle.Engineer:   1,
	}
}

// Planner holds the decision heuristic's parameters.
type Planner struct {
	values map[battle.UnitType]int
}

// NewPlanner creates a planner. Types missing from values are worth zero;
// a nil map uses DefaultTargetValues.
func NewPlanner(values map[battle.UnitType]int) *Planner {
	if values == nil {
		values = DefaultTargetValues()
	}
	return &Planner{values: values}
}

// Value returns the target value of a unit type.
func (p *Planner) Value(t battle.UnitType) int {
	return p.values[t]
}

// BestTarget picks the highest-value target. Ties keep roster order.
func (p *Planner) BestTarget(targets []*battle.Unit) *battle.Unit {
	if len(targets) == 0 {
		return nil
	}
	sorted := slices.Clone(targets)
	slices.SortStableFunc(sorted, func(a, b *battle.Unit) int {
		return cmp.Compare(p.Value(b.Type), p.Value(a.Type))
	})
	return sorted[0]
}

// BestMove returns the candidate closest to goal, preferring the earliest
// candidate on ties. ok is false when there are no candidates.
func (p *Planner) BestMove(candidates []hex.Coord, goal hex.Coord) (hex.Coord, bool) {
	if len(candidates) == 0 {
		return hex.Coord{}, false
	}
	best := candidates[0]
	bestDist := hex.Distance(best, goal)
	for _, c := range candidates[1:] {
		if d := hex.Distance(c, goal); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

// RunTurn plays the active side's whole turn and returns every step taken.
func (p *Planner) RunTurn(e *rules.Engine, st *battle.State, m *terrain.Map) []Step {
	var steps []Step
	for s := range p.NewTurn(e, st, m).Steps() {
		steps = append(steps, s)
	}
	return steps
}
