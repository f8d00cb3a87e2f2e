package hexfront

import "github.com/vovakirdan/hexfront/internal/ai"

// stepCPU advances the automated side by at most one unit decision,
// waiting ai.step_ticks ticks between decisions so each one is visible.
func (g *Game) stepCPU() {
	mt := g.match
	if g.cpu == nil || g.cpu.Done() {
		g.cpu = mt.Planner.NewTurn(mt.Engine, mt.State, mt.Map)
		g.cpuWait = 0
	}

	g.cpuWait++
	if g.cpuWait < g.scenario.AI.StepTicks {
		return
	}
	g.cpuWait = 0

	step, ok := g.cpu.Next()
	if !ok {
		g.cpu = nil
		return
	}
	g.addEvent(step.String())
	g.logStep(step)

	if step.Action != ai.ActionPass && step.Action != ai.ActionEndTurn {
		g.cursor = step.To
	}

	switch {
	case mt.State.Over:
		g.cpu = nil
		g.announceWinner()
	case step.Action == ai.ActionEndTurn:
		g.cpu = nil
		g.turnStarted()
	}
}

func (g *Game) logStep(step ai.Step) {
	g.log.Debug("cpu step", "side", step.Side, "action", step.Action,
		"unit", step.UnitID, "from", step.From, "to", step.To)
}
