package hexfront

import (
	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/hex"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StateHumanTurn   GameStateType = "human_turn"
	StateCPUTurn     GameStateType = "cpu_turn"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism tests.
type Snapshot struct {
	Tick      uint64
	Turn      int
	Active    battle.Side
	BlueScore int
	RedScore  int
	BlueUnits int
	RedUnits  int
	Winner    battle.Side
	Reason    battle.EndReason
	Cursor    hex.Coord
	Selected  int
	Fortify   bool
	Events    int
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.match == nil {
		return Snapshot{Tick: g.tick, State: StateGameOver}
	}
	st := g.match.State

	state := StateHumanTurn
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case st.Over:
		state = StateGameOver
	case g.mode.Automated(st.Active):
		state = StateCPUTurn
	}

	return Snapshot{
		Tick:      g.tick,
		Turn:      st.Turn,
		Active:    st.Active,
		BlueScore: st.Score[battle.Blue],
		RedScore:  st.Score[battle.Red],
		BlueUnits: len(st.UnitsOf(battle.Blue)),
		RedUnits:  len(st.UnitsOf(battle.Red)),
		Winner:    st.Winner,
		Reason:    st.Reason,
		Cursor:    g.cursor,
		Selected:  g.selected,
		Fortify:   g.fortify,
		Events:    len(g.events),
		State:     state,
	}
}
