package pinball

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/games/pinball/sim"
)

// Visual characters for rendering
const (
	BallChar      = '●'
	WallChar      = '█'
	GuideChar     = '▓'
	FlipperChar   = '━'
	LaneChar      = '┆'
	BumperChar    = '◉'
	HoleChar      = '░'
	DeathHoleChar = '▒'
	BorderHoriz   = '─'
)

// hudRows is the number of rows above the playfield.
const hudRows = 2

// view maps table coordinates to screen cells.
type view struct {
	sx, sy float64
	top    int
}

func newView(s sim.Snapshot, w, h int) view {
	return view{
		sx:  float64(w-1) / s.Width,
		sy:  float64(h-hudRows-1) / s.Height,
		top: hudRows,
	}
}

// cell returns the screen cell containing table point p.
func (v view) cell(p sim.Vec2) (int, int) {
	return int(math.Round(p.X * v.sx)), v.top + int(math.Round(p.Y*v.sy))
}

// point returns the table point at the centre of a screen cell.
func (v view) point(x, y int) sim.Vec2 {
	return sim.V(float64(x)/v.sx, float64(y-v.top)/v.sy)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// line rasterizes a segment by sampling one point per cell step.
func (v view) line(dst *core.Screen, a, b sim.Vec2, r rune, c core.Color) {
	ax, ay := v.cell(a)
	bx, by := v.cell(b)
	n := max(abs(bx-ax), abs(by-ay))
	if n == 0 {
		dst.SetColored(ax, ay, r, c)
		return
	}
	for i := range n + 1 {
		t := float64(i) / float64(n)
		x := int(math.Round(float64(ax) + t*float64(bx-ax)))
		y := int(math.Round(float64(ay) + t*float64(by-ay)))
		dst.SetColored(x, y, r, c)
	}
}

// disc fills every cell whose centre lies inside the circle. The centre
// cell is always drawn so tiny circles stay visible.
func (v view) disc(dst *core.Screen, center sim.Vec2, radius float64, r rune, c core.Color) {
	x0, y0 := v.cell(center.Sub(sim.V(radius, radius)))
	x1, y1 := v.cell(center.Add(sim.V(radius, radius)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if sim.Dist2(v.point(x, y), center) <= radius*radius {
				dst.SetColored(x, y, r, c)
			}
		}
	}
	cx, cy := v.cell(center)
	dst.SetColored(cx, cy, r, c)
}

// label centres text on a table point.
func (v view) label(dst *core.Screen, at sim.Vec2, text string, c core.Color) {
	x, y := v.cell(at)
	dst.DrawTextColored(x-utf8.RuneCountInString(text)/2, y, text, c)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	if g.driver == nil {
		dst.DrawTextCenteredColored(dst.Height()/2-1, "Cannot build table", core.ColorBrightRed)
		if g.loadErr != nil {
			dst.DrawTextCentered(dst.Height()/2+1, firstLine(g.loadErr.Error()))
		}
		return
	}

	s := g.snap
	v := newView(s, dst.Width(), dst.Height())

	g.renderHUD(dst, s)
	renderTable(dst, v, s)
	renderHoles(dst, v, s)
	renderFlippers(dst, v, s)
	renderBall(dst, v, s)
	g.renderOverlay(dst, s)
}

// renderHUD draws money, time, launch cost and status, with the event
// ticker on the second row.
func (g *Game) renderHUD(dst *core.Screen, s sim.Snapshot) {
	money := fmt.Sprintf("$%d / $%d", s.Money, s.Goal)
	moneyColor := core.ColorBrightGreen
	if s.Money <= s.LaunchCost {
		moneyColor = core.ColorBrightRed
	}
	dst.DrawTextColored(1, 0, money, moneyColor)

	clock := fmt.Sprintf("Time %d:%02d  Launch $%d", s.TimeLeft/60, s.TimeLeft%60, s.LaunchCost)
	dst.DrawTextCentered(0, clock)

	status := s.Status()
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(status)-1, 0, status, phaseColor(s.Phase))

	if len(g.ticker) == 0 {
		dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
		return
	}
	dst.DrawTextColored(1, 1, strings.Join(g.ticker, "  ·  "), core.ColorGray)
}

func phaseColor(p sim.Phase) core.Color {
	switch p {
	case sim.PhasePlay:
		return core.ColorBrightCyan
	case sim.PhaseDead:
		return core.ColorBrightRed
	case sim.PhaseClear:
		return core.ColorBrightGreen
	default:
		return core.ColorYellow
	}
}

// renderTable draws border, guides, the launch lane wall and bumpers.
func renderTable(dst *core.Screen, v view, s sim.Snapshot) {
	for i, seg := range s.Segments {
		glyph, color := WallChar, core.ColorGray
		if i >= s.Border {
			glyph, color = GuideChar, core.ColorCyan
		}
		v.line(dst, seg.A, seg.B, glyph, color)
	}

	// The lane has no wall in the simulation; draw where the ball is held.
	laneX := s.LaneMinX - s.Ball.Radius
	v.line(dst, sim.V(laneX, s.ExitY), sim.V(laneX, s.Height), LaneChar, core.ColorGray)

	for _, b := range s.Bumpers {
		color := core.ColorBrightYellow
		if !b.Bonus() {
			color = core.ColorMagenta
		}
		v.disc(dst, b.Center, b.Radius, BumperChar, color)
		v.label(dst, b.Center, fmt.Sprintf("%+d", b.Delta), core.ColorBrightWhite)
	}
}

func renderHoles(dst *core.Screen, v view, s sim.Snapshot) {
	for _, h := range s.Holes {
		var (
			glyph = HoleChar
			color core.Color
			text  string
		)
		switch h.Type {
		case sim.HoleBonus:
			color, text = core.ColorGreen, fmt.Sprintf("+%d", h.Amount)
		case sim.HolePenalty:
			color, text = core.ColorOrange, fmt.Sprintf("-%d", h.Amount)
		default:
			glyph, color, text = DeathHoleChar, core.ColorBrightRed, "DEATH"
		}
		v.disc(dst, h.Pos, h.Radius, glyph, color)
		v.label(dst, h.Pos, text, core.ColorBrightWhite)
	}
}

func renderFlippers(dst *core.Screen, v view, s sim.Snapshot) {
	for _, f := range s.Flippers {
		color := core.ColorWhite
		if f.Engaged {
			color = core.ColorBrightCyan
		}
		v.line(dst, f.Line.A, f.Line.B, FlipperChar, color)
	}
}

func renderBall(dst *core.Screen, v view, s sim.Snapshot) {
	if s.Reason == sim.ReasonDeathHole {
		return
	}
	x, y := v.cell(s.Ball.Pos)
	dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, s sim.Snapshot) {
	switch {
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case s.Phase == sim.PhaseDead:
		g.drawCenteredBox(dst, "GAME OVER", s.Message(), "Press R to restart")

	case s.Phase == sim.PhaseClear:
		g.drawCenteredBox(dst, "TABLE CLEARED!", s.Message(), "Press R to play again")

	case s.Launches == 0:
		intro := fmt.Sprintf("Reach $%d in %d:%02d. Each launch costs $%d.",
			s.Goal, s.TimeLeft/60, s.TimeLeft%60, s.LaunchCost)
		g.drawCenteredBox(dst, "PINBALL", intro, "SPACE launch  A/D or ←/→ flippers")

	case s.Phase == sim.PhaseReady:
		dst.DrawTextCenteredColored(dst.Height()-1, "Press SPACE to launch", core.ColorYellow)
	}
}

// drawCenteredBox draws a centered message box with one or more lines
// under the title.
func (g *Game) drawCenteredBox(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	textW := utf8.RuneCountInString(title)
	for _, l := range lines {
		textW = max(textW, utf8.RuneCountInString(l))
	}
	boxW := min(textW+4, w)
	boxH := 4 + len(lines)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawTextCenteredColored(boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
