package skyfall

import (
	"fmt"

	"github.com/neuroplay/arena/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar     = '@'
	OpponentChar   = '&'
	ProjectileChar = '•'
	WreckerChar    = '◆'
	FloorChar      = '═'
)

// Platform glyphs by damage tier (fresh to crumbling)
var tierGlyphs = []rune{'█', '▓', '░'}

// hudRows is the number of screen rows reserved above the arena.
const hudRows = 2

// Render draws the current simulation state into the screen buffer.
// The renderer is a pure consumer of the view snapshot.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	v := g.View()
	w := dst.Width()
	h := dst.Height() - hudRows

	if w < 30 || h < 10 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	toX := func(wx float64) int {
		return int(wx * float64(w) / g.cfg.World.Width)
	}
	toY := func(wy float64) int {
		return hudRows + int((wy-v.CameraY)*float64(h)/g.cfg.World.ViewHeight)
	}

	for _, p := range v.Platforms {
		y := toY(p.Y)
		x0, x1 := toX(p.X), toX(p.X+p.W)
		glyph := tierGlyphs[core.Clamp(p.Tier, 0, len(tierGlyphs)-1)]
		if p.Floor {
			glyph = FloorChar
		}
		for x := x0; x < core.Max(x1, x0+1); x++ {
			dst.SetColored(x, y, glyph, p.Owner.Color())
		}
	}

	for _, p := range v.Pickups {
		if p.Collected {
			continue
		}
		dst.SetColored(toX(p.X), toY(p.Y), p.Kind.Glyph(), p.Kind.Color())
	}

	for _, pt := range v.Particles {
		glyph := '·'
		if pt.Alpha > 0.6 {
			glyph = '*'
		} else if pt.Alpha > 0.3 {
			glyph = '+'
		}
		dst.SetColored(toX(pt.X), toY(pt.Y), glyph, pt.Color)
	}

	for _, pr := range v.Projectiles {
		glyph := ProjectileChar
		if pr.Kind == ProjectileWrecker {
			glyph = WreckerChar
		}
		dst.SetColored(toX(pr.X), toY(pr.Y), glyph, pr.Side.Color())
	}

	size := g.cfg.Physics.EntitySize
	for _, e := range v.Entities {
		glyph := PlayerChar
		if e.Side == SideRight {
			glyph = OpponentChar
		}
		color := e.Side.Color()
		if !e.Alive {
			color = core.ColorGray
		}
		dst.SetColored(toX(e.X+size/2), toY(e.Y+size/2), glyph, color)
	}

	g.renderHUD(dst, v)
	g.renderOverlay(dst)
}

// renderHUD draws health bars, buffs and the score.
func (g *Game) renderHUD(dst *core.Screen, v ViewSnapshot) {
	for _, e := range v.Entities {
		bar := healthBar(e.Health, e.MaxHealth, 10)
		label := "YOU"
		x := 1
		if e.Side == SideRight {
			label = "CPU"
			x = dst.Width() - len(bar) - len(label) - 2
		}
		dst.DrawTextColored(x, 0, label+" "+bar, e.Side.Color())

		if e.Buff != PickupNone && e.Side == SideLeft {
			dst.DrawTextColored(1, 1, fmt.Sprintf("[%s]", e.Buff), e.Buff.Color())
		}
		if e.RespawnIn > 0 {
			dst.DrawText(dst.Width()-12, 1, fmt.Sprintf("back in %d", e.RespawnIn/core.Max(g.runtime.TickRate, 1)+1))
		}
	}

	dst.DrawTextCentered(0, fmt.Sprintf("Score: %d", v.Score))
}

// healthBar builds a fixed-width bar like [####----].
func healthBar(health, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := core.Clamp(health*width/max, 0, width)
	bar := make([]rune, 0, width+2)
	bar = append(bar, '[')
	for i := 0; i < width; i++ {
		if i < filled {
			bar = append(bar, '#')
		} else {
			bar = append(bar, '-')
		}
	}
	bar = append(bar, ']')
	return string(bar)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
