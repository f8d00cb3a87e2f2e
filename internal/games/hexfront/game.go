// Package hexfront is the playable game built on the rules engine. It
// implements registry.Game: the platform feeds it one input frame per
// tick and it answers with a rendered screen.
package hexfront

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexfront/internal/ai"
	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/config"
	"github.com/vovakirdan/hexfront/internal/core"
	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/registry"
)

// Mode selects which sides are played by the planner.
type Mode string

const (
	ModeVsCPU   Mode = "vs_cpu"  // BLUE human, RED automated
	ModeHotseat Mode = "hotseat" // both sides human on one keyboard
	ModeDemo    Mode = "demo"    // both sides automated
)

// ID returns the registry ID of the mode.
func (m Mode) ID() string {
	switch m {
	case ModeHotseat:
		return "hexfront_hotseat"
	case ModeDemo:
		return "hexfront_demo"
	default:
		return "hexfront"
	}
}

// Automated reports whether the planner plays side in this mode.
func (m Mode) Automated(side battle.Side) bool {
	switch m {
	case ModeHotseat:
		return false
	case ModeDemo:
		return true
	default:
		return side == battle.Red
	}
}

const maxEvents = 8

// Package-level settings applied to every game created afterwards.
var (
	scenario = config.DefaultScenario()
	logger   = log.New(io.Discard)
)

// SetScenario replaces the scenario used by new matches.
// Call it before games are created.
func SetScenario(s config.Scenario) {
	scenario = s
}

// SetLogger routes match events to l. A nil logger silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game is one interactive hexfront session.
type Game struct {
	mode     Mode
	scenario config.Scenario
	log      *log.Logger
	rng      *rand.Rand
	tick     uint64

	match *Match

	// Interaction
	cursor   hex.Coord
	selected int  // unit ID, 0 = none
	fortify  bool // Enter builds a trench instead of moving
	reach    map[hex.Coord]bool
	targets  map[hex.Coord]int // enemy position -> unit ID
	trenches map[hex.Coord]bool
	status   string

	// Automated side
	cpu     *ai.Turn
	cpuWait int

	events []string

	screenW  int
	screenH  int
	tooSmall bool
	err      error
}

// New creates a game where BLUE plays against the planner.
func New() *Game {
	return newGame(ModeVsCPU)
}

// NewHotseat creates a game for two players sharing a keyboard.
func NewHotseat() *Game {
	return newGame(ModeHotseat)
}

// NewDemo creates a game where the planner plays both sides.
func NewDemo() *Game {
	return newGame(ModeDemo)
}

func newGame(mode Mode) *Game {
	return &Game{
		mode:     mode,
		scenario: scenario,
		log:      logger.With("mode", mode.ID()),
	}
}

func init() {
	registry.Register(ModeVsCPU.ID(), func() registry.Game {
		return New()
	})
	registry.Register(ModeHotseat.ID(), func() registry.Game {
		return NewHotseat()
	})
	registry.Register(ModeDemo.ID(), func() registry.Game {
		return NewDemo()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeHotseat:
		return "Hexfront: Hotseat"
	case ModeDemo:
		return "Hexfront: Demo"
	default:
		return "Hexfront"
	}
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	switch g.mode {
	case ModeHotseat:
		return "Two players, one keyboard"
	case ModeDemo:
		return "Watch the CPU fight itself"
	default:
		return "Command BLUE against the CPU"
	}
}

// Reset starts a new match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = g.scenario.Board.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.events = nil
	g.status = ""
	g.cpu = nil
	g.cpuWait = 0
	g.clearSelection()

	match, err := NewMatch(g.mode, g.scenario, seed)
	if err != nil {
		// A broken scenario still gets a playable board
		g.log.Error("scenario rejected, using defaults", "err", err)
		match, err = NewMatch(g.mode, config.DefaultScenario(), seed)
	}
	g.err = err
	g.match = match
	if match == nil {
		return
	}

	st := match.State
	g.cursor = st.HQ[battle.Blue]
	for _, side := range battle.Sides {
		if !g.mode.Automated(side) {
			g.cursor = st.HQ[side]
			break
		}
	}
	g.checkSize()

	g.log.Info("match started", "match", st.MatchID, "seed", seed,
		"board", g.match.Map.Width(), "units", len(st.Units))
	g.addEvent("Turn 1: BLUE to move")
}

// checkSize updates the too-small flag for the current screen size.
func (g *Game) checkSize() {
	if g.match == nil {
		return
	}
	w, h := requiredSize(g.match.State.Width, g.match.State.Height)
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.match == nil {
		return core.StepResult{State: g.State()}
	}
	st := g.match.State

	if in.Has(core.ActionRestart) && st.Over {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall || st.Over {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if g.mode.Automated(st.Active) {
		g.stepCPU()
	} else {
		g.handleInput(in)
	}

	return core.StepResult{State: g.State()}
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{GameOver: true, Status: "no match"}
	}
	st := g.match.State
	return core.GameState{
		Score:    st.Score[battle.Blue],
		GameOver: st.Over,
		Paused:   g.tooSmall,
		Status:   g.status,
	}
}

// Result returns the summary of a finished match. ok is false while the
// match is still running.
func (g *Game) Result() (core.MatchResult, bool) {
	if g.match == nil || !g.match.State.Over {
		return core.MatchResult{}, false
	}
	return g.match.Result(), true
}

// Resize adapts the game to a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkSize()
}

// addEvent appends a line to the event log.
func (g *Game) addEvent(msg string) {
	g.events = append(g.events, msg)
	if len(g.events) > maxEvents {
		g.events = g.events[len(g.events)-maxEvents:]
	}
}
