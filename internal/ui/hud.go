//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"isle-sim/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status panel to the right of the map view: clock,
// weather, moon phase, active z-level and the key bindings.
type HUD struct {
	world *world.World
	width int
	panel *ebiten.Image

	lastHeight int
}

var moonPhaseNames = []string{
	"full", "waning gibbous", "last quarter", "waning crescent",
	"new", "waxing crescent", "first quarter", "waxing gibbous",
}

// NewHUD constructs a HUD for the provided world and panel width.
func NewHUD(w *world.World, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{world: w, width: width}
}

// Draw paints the HUD panel anchored to the right edge of the map view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	_, mapH := h.world.Size()
	height := mapH * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	hour, minute, day := h.world.CurrentTime()
	clk := h.world.Clock()
	phase := clk.MoonPhase
	phaseName := "?"
	if phase >= 0 && phase < len(moonPhaseNames) {
		phaseName = moonPhaseNames[phase]
	}

	lines := []string{
		"Island",
		"",
		fmt.Sprintf("Day %d  %02d:%02d", day, hour, minute),
		fmt.Sprintf("Weather: %s", h.world.CurrentWeather()),
		fmt.Sprintf("Moon: %s", phaseName),
		fmt.Sprintf("Z-level: %d", h.world.CurrentZ()),
		fmt.Sprintf("Daylight: %.2f", clk.DaylightFactor()),
		"",
		"space  pause",
		"tab    cycle z-level",
		"l      advance 1 hour",
		"r      regenerate",
		"s      reseed",
		"1      heightmap",
		"2      light field",
		"3      stars",
		"q/esc  quit",
	}

	face := basicfont.Face7x13
	y := hudPadding + hudBaseline
	for _, line := range lines {
		if line != "" {
			text.Draw(h.panel, line, face, hudPadding, y, color.RGBA{R: 210, G: 210, B: 220, A: 255})
		}
		y += hudLineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

const (
	hudPadding    = 12
	hudBaseline   = 14
	hudLineHeight = 16
)
