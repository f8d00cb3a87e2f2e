package hexfront

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/hexfront/internal/ai"
	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/config"
	"github.com/vovakirdan/hexfront/internal/core"
	"github.com/vovakirdan/hexfront/internal/rules"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

// ReasonTurnLimit is reported for a headless match stopped before any
// side won.
const ReasonTurnLimit = "turn_limit"

// Match bundles one battle with its terrain and the engine that runs it.
type Match struct {
	Mode    Mode
	State   *battle.State
	Map     *terrain.Map
	Engine  *rules.Engine
	Planner *ai.Planner
}

// NewMatch builds a match from a scenario. A zero seed falls back to the
// scenario's board seed, then to the clock. The seed only shapes the map;
// combat dice come from scn.Rules.DiceSeed, or the clock when that is zero.
func NewMatch(mode Mode, scn config.Scenario, seed int64) (*Match, error) {
	if seed == 0 {
		seed = scn.Board.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	setup, err := scn.Setup()
	if err != nil {
		return nil, fmt.Errorf("hexfront: %w", err)
	}
	setup.Seed = seed

	st, err := battle.New(setup)
	if err != nil {
		return nil, fmt.Errorf("hexfront: %w", err)
	}
	m, err := terrain.GenerateWith(scn.Generator(), seed, setup.Width, setup.Height)
	if err != nil {
		return nil, fmt.Errorf("hexfront: %w", err)
	}

	var dice rules.Dice
	if scn.Rules.DiceSeed != 0 {
		dice = rules.NewDice(scn.Rules.DiceSeed)
	}

	return &Match{
		Mode:    mode,
		State:   st,
		Map:     m,
		Engine:  rules.New(scn.RulesConfig(), dice),
		Planner: scn.Planner(),
	}, nil
}

// Simulate lets the planner play every side until the match ends, the
// turn counter passes maxTurns (0 means no limit) or ctx is cancelled.
// onStep, if not nil, sees every step as it happens.
func (mt *Match) Simulate(ctx context.Context, maxTurns int, onStep func(ai.Step)) error {
	for !mt.State.Over {
		if maxTurns > 0 && mt.State.Turn > maxTurns {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		for step := range mt.Planner.NewTurn(mt.Engine, mt.State, mt.Map).Steps() {
			if onStep != nil {
				onStep(step)
			}
		}
	}
	return nil
}

// Result summarizes the match as it stands.
func (mt *Match) Result() core.MatchResult {
	st := mt.State
	reason := string(st.Reason)
	if !st.Over {
		reason = ReasonTurnLimit
	}
	return core.MatchResult{
		MatchID:   st.MatchID,
		Mode:      mt.Mode.ID(),
		Seed:      st.Seed,
		Winner:    st.Winner.String(),
		Reason:    reason,
		BlueScore: st.Score[battle.Blue],
		RedScore:  st.Score[battle.Red],
		Turns:     st.Turn,
	}
}
