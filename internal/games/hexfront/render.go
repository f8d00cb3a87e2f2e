package hexfront

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/hexfront/internal/battle"
	"github.com/vovakirdan/hexfront/internal/core"
	"github.com/vovakirdan/hexfront/internal/hex"
	"github.com/vovakirdan/hexfront/internal/terrain"
)

// Screen layout. Each hex is drawn three characters wide with its glyph in
// the middle; columns sit four characters apart and odd columns drop half
// a hex (one line), the text form of a flat-top odd-q grid.
const (
	hudHeight  = 2
	panelWidth = 34
	colStep    = 4
	rowStep    = 2
)

// requiredSize returns the smallest screen that fits a board.
func requiredSize(w, h int) (int, int) {
	board := boardRect(w, h)
	return board.Right() + 1 + panelWidth, board.Bottom() + 1
}

func boardRect(w, h int) core.Rect {
	return core.NewRect(0, hudHeight, w*colStep+3, h*rowStep+3)
}

// cellPos returns the screen position of a hex's glyph.
func cellPos(board core.Rect, c hex.Coord) (int, int) {
	off := hex.ToOffset(c)
	x := board.X + 2 + off.Col*colStep
	y := board.Y + 1 + off.Row*rowStep + (off.Col & 1)
	return x, y
}

var sideColors = map[battle.Side]core.Color{
	battle.Blue: core.ColorBrightBlue,
	battle.Red:  core.ColorBrightRed,
}

var terrainColors = map[terrain.Kind]core.Color{
	terrain.Plain:  core.ColorGray,
	terrain.Forest: core.ColorGreen,
	terrain.Hill:   core.ColorYellow,
	terrain.Trench: core.ColorOrange,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.match == nil {
		msg := "No match"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg, core.ColorBrightRed)
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		w, h := requiredSize(g.match.State.Width, g.match.State.Height)
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Resize to at least %dx%d", w, h))
		return
	}

	board := boardRect(g.match.State.Width, g.match.State.Height)
	dst.DrawBox(board, core.ColorGray)
	g.renderBoard(dst, board)
	g.renderPanel(dst, core.NewRect(board.Right()+1, board.Y, panelWidth, board.H))
	g.renderFooter(dst, board.Bottom())

	if g.match.State.Over {
		g.renderOverlay(dst, g.winnerLine(), "Press R for a new match")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.match.State
	dst.DrawTextColor(1, 0, g.Title(), core.ColorBrightWhite)

	x := 20
	dst.DrawTextColor(x, 0, fmt.Sprintf("%s turn", humanize.Ordinal(st.Turn)), core.ColorWhite)
	x += 12
	blue := fmt.Sprintf("BLUE %d", st.Score[battle.Blue])
	dst.DrawTextColor(x, 0, blue, sideColors[battle.Blue])
	x += len(blue)
	dst.DrawText(x, 0, " : ")
	x += 3
	dst.DrawTextColor(x, 0, fmt.Sprintf("%d RED", st.Score[battle.Red]), sideColors[battle.Red])

	if !st.Over {
		who := fmt.Sprintf("%s to move", st.Active)
		if g.mode.Automated(st.Active) {
			who = fmt.Sprintf("%s (CPU) thinking", st.Active)
		}
		dst.DrawTextColor(x+10, 0, who, sideColors[st.Active])
	}

	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}

// renderBoard draws terrain, headquarters, units and highlights.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	st := g.match.State
	inner := board.Inset(1)

	g.match.Map.Cells(func(c hex.Coord, k terrain.Kind) {
		x, y := cellPos(board, c)
		dst.SetColor(x, y, k.Glyph(), terrainColors[k])

		switch {
		case g.fortify && g.trenches[c]:
			bracket(dst, inner, x, y, '{', '}', core.ColorOrange)
		case g.targets[c] != 0 && !g.fortify:
			bracket(dst, inner, x, y, '<', '>', core.ColorBrightRed)
		case g.reach[c] && !g.fortify:
			bracket(dst, inner, x, y, '(', ')', core.ColorCyan)
		}
	})

	for side, hq := range st.HQ {
		x, y := cellPos(board, hq)
		dst.SetColor(x, y, '⌂', sideColors[side])
	}

	for _, u := range st.Units {
		x, y := cellPos(board, u.Pos)
		color := sideColors[u.Side]
		if u.Acted && u.Side == st.Active && !st.Over {
			color = core.ColorGray
		}
		dst.SetColor(x, y, u.Type.Glyph(), color)
	}

	if u := st.Unit(g.selected); u != nil {
		x, y := cellPos(board, u.Pos)
		bracket(dst, inner, x, y, '»', '«', core.ColorBrightYellow)
	}
	if !st.Over {
		x, y := cellPos(board, g.cursor)
		bracket(dst, inner, x, y, '[', ']', core.ColorBrightWhite)
	}
}

// bracket marks the cell at (x, y) with l and r on either side. Marks
// outside area are dropped so they never overwrite the board frame.
func bracket(dst *core.Screen, area core.Rect, x, y int, l, r rune, c core.Color) {
	if area.Contains(x-1, y) {
		dst.SetColor(x-1, y, l, c)
	}
	if area.Contains(x+1, y) {
		dst.SetColor(x+1, y, r, c)
	}
}

// renderPanel draws the side panel: cursor info, selection and events.
func (g *Game) renderPanel(dst *core.Screen, area core.Rect) {
	dst.DrawBox(area, core.ColorGray)
	inner := area.Inset(1)
	st := g.match.State
	y := inner.Y
	line := func(text string, c core.Color) {
		if y >= inner.Bottom() {
			return
		}
		dst.DrawTextColor(inner.X+1, y, truncate(text, inner.W-1), c)
		y++
	}

	for _, side := range battle.Sides {
		name := st.Player(side)
		if g.mode.Automated(side) {
			name += " (CPU)"
		}
		line(fmt.Sprintf("%-4s %-16s %2d pts", side, name, st.Score[side]), sideColors[side])
	}
	line(fmt.Sprintf("First to %d points", g.match.Engine.Config().ScoreToWin), core.ColorGray)
	y++

	kind := g.match.Map.At(g.cursor)
	line(fmt.Sprintf("Cursor %v  %s (cost %d)", g.cursor, kind, kind.Cost()), core.ColorWhite)
	if u := st.UnitAt(g.cursor); u != nil {
		line(unitLine(u), sideColors[u.Side])
	} else {
		line("", core.ColorDefault)
	}
	if u := st.Unit(g.selected); u != nil {
		line("Selected: "+unitLine(u), core.ColorBrightYellow)
	} else {
		line("Selected: none", core.ColorGray)
	}
	if g.status != "" {
		line(g.status, core.ColorBrightCyan)
	} else {
		line("", core.ColorDefault)
	}
	y++

	line("Events", core.ColorBrightWhite)
	for _, ev := range g.events {
		line(ev, core.ColorWhite)
	}
}

func unitLine(u *battle.Unit) string {
	s := u.Stats()
	state := "ready"
	switch {
	case u.Acted:
		state = "done"
	case u.Moved:
		state = "moved"
	}
	return fmt.Sprintf("%s#%d hp %d/%d mv %d rng %d %s", u.Type, u.ID, u.HP, s.HP, s.Move, s.Range, state)
}

// renderFooter draws the key help below the board.
func (g *Game) renderFooter(dst *core.Screen, y int) {
	help := "wasd move  enter select/act  f fortify  n next  e end turn  esc cancel  q quit"
	if g.mode == ModeDemo {
		help = "r restart after game over  q quit"
	}
	dst.DrawTextColor(1, y, truncate(help, dst.Width()-2), core.ColorGray)
}

func (g *Game) winnerLine() string {
	st := g.match.State
	if g.mode == ModeVsCPU {
		if st.Winner == battle.Blue {
			return fmt.Sprintf("Victory! (%s)", st.Reason)
		}
		return fmt.Sprintf("Defeat (%s)", st.Reason)
	}
	return fmt.Sprintf("%s wins (%s)", st.Winner, st.Reason)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, title, subtitle string) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 6
	h := 5
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.SetColor(x, y, ' ', core.ColorDefault)
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
