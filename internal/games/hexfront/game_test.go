package hexfront

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/hexfront/internal/ai"
	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/config"
	"github.com/vovakirdan/hexfront/internal/core"
	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/registry"
	"github.com/vovakirdan/hexfront/internal/rules"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

func unitAt(side, typ string, q, r int) config.UnitPlacement {
	return config.UnitPlacement{Side: side, Type: typ, Q: q, R: r}
}

// testScenario returns the default scenario with fixed board and dice
// seeds, instant CPU steps and, if given, a custom roster.
func testScenario(roster ...config.UnitPlacement) config.Scenario {
	s := config.DefaultScenario()
	s.Board.Seed = 42
	s.Rules.DiceSeed = 42
	s.AI.StepTicks = 0
	if len(roster) > 0 {
		s.Roster = roster
	}
	return s
}

func startGame(t *testing.T, mode Mode, scn config.Scenario) *Game {
	t.Helper()
	g := newGame(mode)
	g.scenario = scn
	g.Reset(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Seed: 42})
	if g.match == nil {
		t.Fatalf("Reset() produced no match: %v", g.err)
	}
	return g
}

// flatten turns the whole board into open ground.
func flatten(g *Game) {
	var cells []hex.Coord
	g.match.Map.Cells(func(c hex.Coord, _ terrain.Kind) {
		cells = append(cells, c)
	})
	for _, c := range cells {
		g.match.Map.Set(c, terrain.Plain)
	}
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestRegisteredModes(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"hexfront", "Hexfront"},
		{"hexfront_hotseat", "Hexfront: Hotseat"},
		{"hexfront_demo", "Hexfront: Demo"},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			g, err := registry.Create(tc.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tc.id, err)
			}
			if g.ID() != tc.id || g.Title() != tc.title {
				t.Errorf("got %q / %q, expected %q / %q", g.ID(), g.Title(), tc.id, tc.title)
			}
		})
	}
}

func TestModeAutomated(t *testing.T) {
	tests := []struct {
		mode      Mode
		blue, red bool
	}{
		{ModeVsCPU, false, true},
		{ModeHotseat, false, false},
		{ModeDemo, true, true},
	}

	for _, tc := range tests {
		if got := tc.mode.Automated(battle.Blue); got != tc.blue {
			t.Errorf("%s: Automated(BLUE) = %v, expected %v", tc.mode, got, tc.blue)
		}
		if got := tc.mode.Automated(battle.Red); got != tc.red {
			t.Errorf("%s: Automated(RED) = %v, expected %v", tc.mode, got, tc.red)
		}
	}
}

func TestDeterminism(t *testing.T) {
	// Two demo games with the same board and dice seeds play out identically
	scn := testScenario()

	g1 := startGame(t, ModeDemo, scn)
	g2 := startGame(t, ModeDemo, scn)

	for range 300 {
		press(g1)
		press(g2)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()
	if snap1 != snap2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", snap1, snap2)
	}
	if snap1.Tick != 300 {
		t.Errorf("Tick = %d, expected 300", snap1.Tick)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := startGame(t, ModeHotseat, testScenario())
	g.cursor = hex.FromOffset(hex.Offset{Col: 0, Row: 0})

	press(g, core.ActionUp)
	press(g, core.ActionLeft)
	if got := hex.ToOffset(g.cursor); got != (hex.Offset{Col: 0, Row: 0}) {
		t.Errorf("cursor left the board: %+v", got)
	}

	press(g, core.ActionRight)
	press(g, core.ActionDown)
	if got := hex.ToOffset(g.cursor); got != (hex.Offset{Col: 1, Row: 1}) {
		t.Errorf("cursor offset = %+v, expected {1 1}", got)
	}
}

func TestSelectAndMove(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario(
		unitAt("blue", "infantry", 2, 2),
		unitAt("red", "infantry", 7, 3),
	))
	flatten(g)

	g.cursor = hex.Coord{Q: 2, R: 2}
	press(g, core.ActionConfirm)
	if g.selected != 1 {
		t.Fatalf("selected = %d, expected unit 1", g.selected)
	}
	if !g.reach[hex.Coord{Q: 3, R: 2}] {
		t.Fatal("(3,2) should be highlighted as reachable")
	}

	g.cursor = hex.Coord{Q: 3, R: 2}
	press(g, core.ActionConfirm)

	u := g.match.State.Unit(1)
	if u.Pos != (hex.Coord{Q: 3, R: 2}) || !u.Moved {
		t.Errorf("unit after move: %v moved=%v", u.Pos, u.Moved)
	}
	if u.Acted {
		t.Error("infantry may still act after moving")
	}
	if g.selected != 1 {
		t.Error("infantry should stay selected after moving")
	}
	if len(g.reach) != 0 {
		t.Error("a moved unit should have no reachable cells")
	}
	if g.match.State.Active != battle.Blue {
		t.Error("turn should not pass while a unit can still act")
	}
}

func TestSelectRejectsEnemyAndEmpty(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario(
		unitAt("blue", "infantry", 2, 2),
		unitAt("red", "infantry", 7, 3),
	))

	g.cursor = hex.Coord{Q: 7, R: 3}
	press(g, core.ActionConfirm)
	if g.selected != 0 {
		t.Error("enemy units cannot be selected")
	}

	g.cursor = hex.Coord{Q: 4, R: 4}
	press(g, core.ActionConfirm)
	if g.selected != 0 || g.status == "" {
		t.Errorf("empty cell: selected=%d status=%q", g.selected, g.status)
	}
}

func TestMoveOutOfReach(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario(
		unitAt("blue", "infantry", 2, 2),
		unitAt("red", "infantry", 7, 3),
	))
	flatten(g)

	g.cursor = hex.Coord{Q: 2, R: 2}
	press(g, core.ActionConfirm)
	g.cursor = hex.Coord{Q: 6, R: 2}
	press(g, core.ActionConfirm)

	if u := g.match.State.Unit(1); u.Moved {
		t.Error("move beyond the allowance should be refused")
	}
	if g.status != "Out of reach" {
		t.Errorf("status = %q", g.status)
	}
}

func TestAttackPassesTurn(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario(
		unitAt("blue", "machinegun", 4, 4),
		unitAt("red", "engineer", 5, 4),
		unitAt("red", "infantry", 8, 0),
	))
	g.scenario.AI.StepTicks = 1000
	flatten(g)

	g.cursor = hex.Coord{Q: 4, R: 4}
	press(g, core.ActionConfirm)
	g.cursor = hex.Coord{Q: 5, R: 4}
	press(g, core.ActionConfirm)

	st := g.match.State
	target := st.Unit(2)
	if target == nil {
		t.Fatal("engineer should survive a single MG burst")
	}
	if lost := 4 - target.HP; lost != 1 && lost != 2 {
		t.Errorf("engineer lost %d hp, expected 1 or 2", lost)
	}
	if st.Active != battle.Red {
		t.Error("turn should pass once every BLUE unit has acted")
	}
	if g.selected != 0 {
		t.Error("selection should clear after an attack")
	}
}

func TestKillEndsMatch(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario(
		unitAt("blue", "infantry", 4, 4),
		unitAt("red", "artillery", 5, 4),
	))
	flatten(g)
	g.match.State.Unit(2).HP = 1

	g.cursor = hex.Coord{Q: 4, R: 4}
	press(g, core.ActionConfirm)
	g.cursor = hex.Coord{Q: 5, R: 4}
	res := press(g, core.ActionConfirm)

	if !res.State.GameOver {
		t.Fatal("eliminating the last RED unit should end the match")
	}
	if res.State.Score != 2 {
		t.Errorf("Score = %d, expected kill award 2", res.State.Score)
	}

	result, ok := g.Result()
	if !ok {
		t.Fatal("Result() should be available after game over")
	}
	if result.Winner != "BLUE" || result.Reason != "elimination" || result.Mode != "hexfront" {
		t.Errorf("Result() = %+v", result)
	}
	if result.MatchID != g.match.State.MatchID {
		t.Error("result should carry the match ID")
	}

	// Orders are ignored once the match is over
	before := g.Snapshot()
	press(g, core.ActionEndTurn)
	if after := g.Snapshot(); after.Active != before.Active || after.Turn != before.Turn {
		t.Error("state changed after game over")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario())

	press(g, core.ActionRestart)
	if g.tick != 1 {
		t.Error("restart should be ignored while the match runs")
	}

	firstID := g.match.State.MatchID
	g.match.State.Over = true
	g.match.State.Winner = battle.Red

	press(g, core.ActionRestart)
	if g.match.State.Over {
		t.Error("restart should start a fresh match")
	}
	if g.match.State.MatchID == firstID {
		t.Error("a new match needs a new ID")
	}
	if _, ok := g.Result(); ok {
		t.Error("Result() should be unavailable for a running match")
	}
}

func TestFortify(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario(
		unitAt("blue", "engineer", 4, 4),
		unitAt("red", "infantry", 8, 0),
	))
	g.scenario.AI.StepTicks = 1000
	flatten(g)

	g.cursor = hex.Coord{Q: 4, R: 4}
	press(g, core.ActionConfirm)
	press(g, core.ActionFortify)
	if !g.fortify {
		t.Fatalf("fortify mode should be on, status %q", g.status)
	}

	site := hex.Coord{Q: 5, R: 4}
	g.cursor = site
	press(g, core.ActionConfirm)

	if k := g.match.Map.At(site); k != terrain.Trench {
		t.Errorf("At(%v) = %v, expected trench", site, k)
	}
	if g.match.State.Active != battle.Red {
		t.Error("digging should use up the engineer and pass the turn")
	}
}

func TestFortifyNeedsEngineer(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario(
		unitAt("blue", "infantry", 4, 4),
		unitAt("red", "infantry", 8, 0),
	))

	press(g, core.ActionFortify)
	if g.fortify || g.status != "Select an engineer first" {
		t.Errorf("no selection: fortify=%v status=%q", g.fortify, g.status)
	}

	g.cursor = hex.Coord{Q: 4, R: 4}
	press(g, core.ActionConfirm)
	press(g, core.ActionFortify)
	if g.fortify || !strings.Contains(g.status, "cannot dig") {
		t.Errorf("infantry: fortify=%v status=%q", g.fortify, g.status)
	}
}

func TestNextUnitCycles(t *testing.T) {
	g := startGame(t, ModeHotseat, testScenario(
		unitAt("blue", "infantry", 0, 0),
		unitAt("blue", "engineer", 2, 2),
		unitAt("red", "infantry", 8, 0),
	))

	press(g, core.ActionNextUnit)
	if g.selected != 1 || g.cursor != (hex.Coord{Q: 0, R: 0}) {
		t.Errorf("first cycle: selected=%d cursor=%v", g.selected, g.cursor)
	}
	press(g, core.ActionNextUnit)
	if g.selected != 2 {
		t.Errorf("second cycle: selected=%d", g.selected)
	}
	press(g, core.ActionNextUnit)
	if g.selected != 1 {
		t.Errorf("cycle should wrap, selected=%d", g.selected)
	}

	press(g, core.ActionCancel)
	if g.selected != 0 {
		t.Error("cancel should clear the selection")
	}
}

func TestHotseatEndTurnAlternates(t *testing.T) {
	g := startGame(t, ModeHotseat, testScenario(
		unitAt("blue", "infantry", 0, 0),
		unitAt("red", "infantry", 8, 0),
	))

	press(g, core.ActionEndTurn)
	if g.match.State.Active != battle.Red {
		t.Fatal("RED should be active after BLUE ends turn")
	}
	if g.cursor != (hex.Coord{Q: 8, R: 0}) {
		t.Errorf("cursor should jump to RED's first ready unit, got %v", g.cursor)
	}

	press(g, core.ActionEndTurn)
	if st := g.match.State; st.Active != battle.Blue || st.Turn != 2 {
		t.Errorf("after both sides: active=%s turn=%d", st.Active, st.Turn)
	}
}

func TestCPUTurnPacing(t *testing.T) {
	scn := testScenario(
		unitAt("blue", "infantry", 2, 2),
		unitAt("red", "infantry", 7, 3),
		unitAt("red", "engineer", 8, 0),
	)
	scn.AI.StepTicks = 3
	g := startGame(t, ModeVsCPU, scn)

	press(g, core.ActionEndTurn)
	if g.match.State.Active != battle.Red {
		t.Fatal("RED should be active")
	}
	events := len(g.events)

	// Human orders are ignored during the CPU turn
	press(g, core.ActionEndTurn)
	press(g)
	if len(g.events) != events || g.match.State.Active != battle.Red {
		t.Fatal("CPU should wait step_ticks before acting")
	}

	press(g)
	if len(g.events) != events+1 {
		t.Fatalf("expected one CPU step after 3 ticks, events %d -> %d", events, len(g.events))
	}

	// Second unit, then the end of turn
	for range 6 {
		press(g)
	}
	if st := g.match.State; st.Active != battle.Blue || st.Turn != 2 {
		t.Errorf("CPU turn should be over: active=%s turn=%d", st.Active, st.Turn)
	}
}

func TestTooSmallPauses(t *testing.T) {
	g := newGame(ModeHotseat)
	g.scenario = testScenario()
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 12, Seed: 42})

	res := press(g, core.ActionEndTurn)
	if !res.State.Paused {
		t.Fatal("small window should pause the game")
	}
	if g.match.State.Active != battle.Blue {
		t.Error("input should be ignored while paused")
	}

	screen := core.NewScreen(40, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small overlay")
	}

	g.Resize(100, 30)
	if g.State().Paused {
		t.Error("resize should unpause")
	}
}

func TestRender(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario())
	screen := core.NewScreen(100, 30)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Hexfront") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "1st turn") {
		t.Errorf("HUD should show the turn, got %q", screen.Row(0))
	}

	board := boardRect(g.match.State.Width, g.match.State.Height)
	infantry := g.match.State.Unit(1)
	x, y := cellPos(board, infantry.Pos)
	if c := screen.GetCell(x, y); c.Rune != 'I' || c.Color != core.ColorBrightBlue {
		t.Errorf("infantry cell = %+v", c)
	}

	x, y = cellPos(board, g.match.State.HQ[battle.Red])
	if c := screen.GetCell(x, y); c.Rune != '⌂' || c.Color != core.ColorBrightRed {
		t.Errorf("RED headquarters cell = %+v", c)
	}

	x, y = cellPos(board, g.cursor)
	if screen.Get(x-1, y) != '[' || screen.Get(x+1, y) != ']' {
		t.Error("cursor brackets missing")
	}
}

func TestBracketStaysInsideFrame(t *testing.T) {
	screen := core.NewScreen(10, 5)
	frame := core.NewRect(0, 0, 5, 3)
	screen.DrawBox(frame, core.ColorGray)
	border := screen.Get(0, 1)

	bracket(screen, frame.Inset(1), 1, 1, '[', ']', core.ColorBrightWhite)
	if got := screen.Get(0, 1); got != border {
		t.Errorf("left mark overwrote the frame: %q", got)
	}
	if got := screen.Get(2, 1); got != ']' {
		t.Errorf("right mark = %q, expected ']'", got)
	}

	// The corner cell still gets both marks on a real board
	g := startGame(t, ModeHotseat, testScenario())
	g.cursor = hex.FromOffset(hex.Offset{Col: 0, Row: 0})
	screen = core.NewScreen(100, 30)
	g.Render(screen)

	board := boardRect(g.match.State.Width, g.match.State.Height)
	x, y := cellPos(board, g.cursor)
	if screen.Get(x-1, y) != '[' || screen.Get(x+1, y) != ']' {
		t.Error("corner cursor brackets missing")
	}
	if screen.Get(board.X, y) == '[' {
		t.Error("cursor bracket drawn over the board frame")
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := startGame(t, ModeVsCPU, testScenario())
	st := g.match.State
	st.Over, st.Winner, st.Reason = true, battle.Blue, battle.ReasonCapture

	screen := core.NewScreen(100, 30)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Victory! (capture)") {
		t.Error("expected the victory overlay")
	}
}

func TestMatchSimulate(t *testing.T) {
	mt, err := NewMatch(ModeDemo, testScenario(), 7)
	if err != nil {
		t.Fatalf("NewMatch() failed: %v", err)
	}

	var steps int
	if err := mt.Simulate(context.Background(), 200, func(ai.Step) { steps++ }); err != nil {
		t.Fatalf("Simulate() failed: %v", err)
	}
	if steps == 0 {
		t.Fatal("no steps were played")
	}

	res := mt.Result()
	if mt.State.Over {
		if res.Winner == "NONE" || res.Reason == "" {
			t.Errorf("finished match result = %+v", res)
		}
	} else if res.Reason != ReasonTurnLimit || mt.State.Turn <= 200 {
		t.Errorf("unfinished match result = %+v (turn %d)", res, mt.State.Turn)
	}
	if res.Mode != "hexfront_demo" || res.Seed != 7 {
		t.Errorf("Result() = %+v", res)
	}
}

func TestMatchSimulateCancelled(t *testing.T) {
	mt, err := NewMatch(ModeDemo, testScenario(), 7)
	if err != nil {
		t.Fatalf("NewMatch() failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := mt.Simulate(ctx, 0, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Simulate() = %v, expected context.Canceled", err)
	}
	if mt.State.Turn != 1 {
		t.Error("a cancelled simulation should not play")
	}
}

// rollBonuses reads n dice bonuses out of the match engine by attacking a
// target too tough to die.
func rollBonuses(t *testing.T, mt *Match, n int) []int {
	t.Helper()
	st := mt.State
	blue := st.UnitsOf(battle.Blue)
	red := st.UnitsOf(battle.Red)
	if len(blue) == 0 || len(red) == 0 {
		t.Fatal("match needs a unit on each side")
	}
	attacker, target := blue[0], red[0]
	base := rules.Damage(attacker.Type, target.Type)

	out := make([]int, n)
	for i := range out {
		target.HP = 1000
		res := mt.Engine.ApplyAttack(st, attacker.ID, target.ID)
		if !res.Applied {
			t.Fatalf("attack %d was not applied", i)
		}
		out[i] = res.Damage - base
	}
	return out
}

func TestDiceSeedIndependentOfBoardSeed(t *testing.T) {
	newMatch := func(diceSeed int64) *Match {
		scn := testScenario()
		scn.Rules.DiceSeed = diceSeed
		mt, err := NewMatch(ModeVsCPU, scn, 42)
		if err != nil {
			t.Fatalf("NewMatch() failed: %v", err)
		}
		return mt
	}
	const rolls = 64

	a, b, c := newMatch(7), newMatch(7), newMatch(8)
	if !reflect.DeepEqual(a.Map, c.Map) {
		t.Error("the dice seed should not change the board")
	}
	if got, want := rollBonuses(t, a, rolls), rollBonuses(t, b, rolls); !reflect.DeepEqual(got, want) {
		t.Errorf("same dice seed rolled %v and %v", got, want)
	}
	if reflect.DeepEqual(rollBonuses(t, newMatch(7), rolls), rollBonuses(t, c, rolls)) {
		t.Error("different dice seeds rolled the same bonuses")
	}

	// Without a dice seed the rolls must not follow the board seed
	boardDice := rules.NewDice(42)
	fromBoard := make([]int, rolls)
	for i := range fromBoard {
		fromBoard[i] = boardDice.Bonus()
	}
	if reflect.DeepEqual(rollBonuses(t, newMatch(0), rolls), fromBoard) {
		t.Error("unseeded dice replayed the board seed's rolls")
	}
}

func TestNewMatchRejectsBadScenario(t *testing.T) {
	scn := testScenario()
	scn.Roster = nil

	if _, err := NewMatch(ModeVsCPU, scn, 1); err == nil {
		t.Error("NewMatch() should reject an empty roster")
	}
}
