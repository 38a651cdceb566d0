//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"isle-sim/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the rendered map:
// the heightmap as a tinted elevation layer, the raw light field as a
// shade mask and the night star field.
type Overlay struct {
	world *world.World
	scale int

	showHeight bool
	showLight  bool
	showStars  bool

	heightImg *ebiten.Image
	heightBuf []byte
	lightImg  *ebiten.Image
	lightBuf  []byte

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay bound to a world.
func NewOverlay(w *world.World, scale int) *Overlay {
	o := &Overlay{world: w, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeight = !o.showHeight
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showLight = !o.showLight
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showStars = !o.showStars
	}
}

// Draw renders the enabled overlay layers onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	w, h := o.world.Size()
	if w <= 0 || h <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showHeight {
		o.drawHeightmap(screen, w, h, scale)
	}
	if o.showLight {
		o.drawLightField(screen, w, h, scale)
	}
	if o.showStars {
		o.drawStars(screen, w, h, scale)
	}
}

func (o *Overlay) drawHeightmap(screen *ebiten.Image, w, h, scale int) {
	hm := o.world.Heightmap()
	if hm == nil {
		return
	}
	total := w * h
	if o.heightImg == nil || o.heightImg.Bounds().Dx() != w || o.heightImg.Bounds().Dy() != h {
		o.heightImg = ebiten.NewImage(w, h)
		o.heightBuf = make([]byte, 4*total)
	}

	for i, v := range hm.Values() {
		base := i * 4
		col := elevationColor(clamp01(v))
		o.heightBuf[base+0] = col.R
		o.heightBuf[base+1] = col.G
		o.heightBuf[base+2] = col.B
		o.heightBuf[base+3] = col.A
	}
	o.heightImg.WritePixels(o.heightBuf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.heightImg, op)
}

func (o *Overlay) drawLightField(screen *ebiten.Image, w, h, scale int) {
	level := o.world.CurrentLevel()
	if level == nil || level.Light == nil {
		return
	}
	total := w * h
	if o.lightImg == nil || o.lightImg.Bounds().Dx() != w || o.lightImg.Bounds().Dy() != h {
		o.lightImg = ebiten.NewImage(w, h)
		o.lightBuf = make([]byte, 4*total)
	}

	// Darkness mask: fully lit tiles are transparent, dark tiles shade
	// toward an opaque deep blue.
	for i, v := range level.Light.Combined().Values() {
		base := i * 4
		dark := 1 - clamp01(v)
		alpha := uint8(math.Round(200 * dark))
		o.lightBuf[base+0] = uint8(10 * dark)
		o.lightBuf[base+1] = uint8(10 * dark)
		o.lightBuf[base+2] = uint8(40 * dark)
		o.lightBuf[base+3] = alpha
	}
	o.lightImg.WritePixels(o.lightBuf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.lightImg, op)
}

func (o *Overlay) drawStars(screen *ebiten.Image, w, h, scale int) {
	stars := o.world.Clock().StarPositions()
	for _, star := range stars {
		if star.X < 0 || star.X > 1 || star.Y < 0 || star.Y > 1 {
			continue
		}
		sx := star.X * float64(w*scale)
		sy := star.Y * float64(h*scale)
		size := 1 + star.Brightness*float64(scale)*0.5
		alpha := uint8(math.Round(255 * clamp01(star.Brightness)))
		o.drawPoint(screen, sx, sy, size, color.RGBA{R: 255, G: 255, B: 230, A: alpha})
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func elevationColor(t float64) color.RGBA {
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
		{0.30, color.RGBA{R: 70, G: 105, B: 160, A: 165}},
		{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 185}},
		{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 205}},
		{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 215}},
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, clamp01(local))
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
