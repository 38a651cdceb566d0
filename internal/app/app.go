//go:build ebiten

package app

import (
	"image/color"
	"time"

	"isle-sim/internal/core"
	"isle-sim/internal/render"
	"isle-sim/internal/terrain"
	"isle-sim/internal/ui"
	"isle-sim/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// BuildFunc rebuilds a fully generated world from a seed. The viewer calls
// it at startup and whenever the player asks for a regeneration.
type BuildFunc func(seed int64) (*world.World, error)

// Game adapts a world to the ebiten.Game interface.
type Game struct {
	world   *world.World
	build   BuildFunc
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	ticker  *core.MinuteTicker

	cells []uint8

	scale    int
	hudWidth int
	paused   bool
	seed     int64
}

// terrainPalette maps terrain types to display colors, indexed by the
// terrain.Type value.
var terrainPalette = []color.RGBA{
	{R: 28, G: 84, B: 160, A: 255},   // water
	{R: 214, G: 196, B: 138, A: 255}, // beach
	{R: 88, G: 148, B: 74, A: 255},   // grass
	{R: 130, G: 126, B: 122, A: 255}, // rock
	{R: 36, G: 98, B: 46, A: 255},    // forest
	{R: 58, G: 50, B: 46, A: 255},    // cave wall
	{R: 110, G: 96, B: 84, A: 255},   // cave floor
	{R: 20, G: 16, B: 14, A: 255},    // cave entrance
}

// New constructs a Game around the world produced by build.
func New(build BuildFunc, scale int, minutesPerSecond int, seed int64) (*Game, error) {
	w, err := build(seed)
	if err != nil {
		return nil, err
	}
	mapW, mapH := w.Size()
	g := &Game{
		world:    w,
		build:    build,
		painter:  render.NewGridPainter(mapW, mapH),
		ticker:   core.NewMinuteTicker(minutesPerSecond),
		cells:    make([]uint8, mapW*mapH),
		scale:    scale,
		hudWidth: 180,
		seed:     seed,
	}
	g.overlay = ui.NewOverlay(w, scale)
	g.hud = ui.NewHUD(w, g.hudWidth)
	return g, nil
}

// Reset rebuilds the world from the provided seed.
func (g *Game) Reset(seed int64) error {
	w, err := g.build(seed)
	if err != nil {
		return err
	}
	g.seed = seed
	g.world = w
	g.overlay = ui.NewOverlay(w, g.scale)
	g.hud = ui.NewHUD(w, g.hudWidth)
	return nil
}

// Update handles per-frame input and advances the world clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleLevel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.world.AdvanceTime(60)
	}

	g.overlay.Update()

	if !g.paused {
		if minutes := g.ticker.Tick(); minutes > 0 {
			g.world.AdvanceTime(minutes)
		}
	}
	g.world.UpdateLighting()
	return nil
}

func (g *Game) cycleLevel() {
	zs := g.world.ZLevels()
	if len(zs) < 2 {
		return
	}
	current := g.world.CurrentZ()
	for i, z := range zs {
		if z == current {
			_ = g.world.ChangeLevel(zs[(i+1)%len(zs)])
			return
		}
	}
}

// Draw renders the active level shaded by its light field.
func (g *Game) Draw(screen *ebiten.Image) {
	level := g.world.CurrentLevel()
	for i, t := range level.Tiles {
		cell := uint8(t)
		if int(t) >= len(terrainPalette) {
			cell = uint8(terrain.Grass)
		}
		g.cells[i] = cell
	}
	light := level.Light.Combined().Values()

	g.painter.BlitShaded(screen, g.cells, light, terrainPalette, g.scale)
	g.overlay.Draw(screen)

	mapW, _ := g.world.Size()
	g.hud.Draw(screen, mapW*g.scale, g.scale)
}

// Layout returns the logical screen size: the scaled map plus the HUD.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	mapW, mapH := g.world.Size()
	return mapW*g.scale + g.hudWidth, mapH * g.scale
}
