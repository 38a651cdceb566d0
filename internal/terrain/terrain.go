package terrain

import (
	"math"

	"isle-sim/internal/core"
)

// Generator synthesizes normalized island heightmaps from a seed. The same
// seed always yields the same heightmap bit for bit.
type Generator struct {
	w, h   int
	params Params
}

// NewGenerator returns a Generator for the given map dimensions using the
// default tuning.
func NewGenerator(w, h int) *Generator {
	return NewGeneratorWithParams(w, h, DefaultParams())
}

// NewGeneratorWithParams returns a Generator with explicit tuning.
func NewGeneratorWithParams(w, h int, params Params) *Generator {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Generator{w: w, h: h, params: params}
}

// Generate produces the base island heightmap: fractal value noise shaped
// by a circular mask so land never reaches the grid edge, renormalized to
// [0,1].
func (g *Generator) Generate(seed int64) *core.FloatGrid {
	hm := core.NewFloatGrid(g.w, g.h)
	p := g.params

	for y := 0; y < g.h; y++ {
		ny := normalizedCoord(y, g.h)
		for x := 0; x < g.w; x++ {
			nx := normalizedCoord(x, g.w)

			n := fbm(nx*p.Scale, ny*p.Scale, seed, p.Octaves, p.Persistence, p.Lacunarity)

			// Distance falloff pulls the rim toward water.
			dx := nx * 2
			dy := ny * 2
			mask := 1.0 - math.Sqrt(dx*dx+dy*dy)

			hm.Set(x, y, n*mask)
		}
	}

	hm.Normalize()
	return hm
}

// normalizedCoord maps a tile index to [-0.5, 0.5].
func normalizedCoord(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i)/float64(n-1) - 0.5
}

// AddFeatures layers radial hills and a hydraulic erosion pass over an
// existing heightmap, then renormalizes. It is deterministic for a given
// seed and never flattens the field: if erosion ate all the new peaks the
// feature delta is amplified until the maximum rises again.
func (g *Generator) AddFeatures(hm *core.FloatGrid, seed int64) {
	rng := core.NewRNG(seed)
	p := g.params

	before := hm.Clone()

	hills := rng.Between(p.HillCountMin, p.HillCountMax)
	for i := 0; i < hills; i++ {
		cx := float64(rng.IntN(g.w))
		cy := float64(rng.IntN(g.h))
		radius := rng.Range(p.HillRadiusMin, p.HillRadiusMax)
		height := rng.Range(p.HillHeightMin, p.HillHeightMax)
		addHill(hm, cx, cy, radius, height)
	}

	g.applyErosion(hm, rng)

	_, beforeMax := before.MinMax()
	_, afterMax := hm.MinMax()
	if afterMax <= beforeMax {
		const scale = 1.5
		values := hm.Values()
		base := before.Values()
		for i := range values {
			values[i] = base[i] + (values[i]-base[i])*scale
		}
	}

	hm.Normalize()
}

// addHill raises a radial bump with quadratic falloff centered at (cx, cy).
func addHill(hm *core.FloatGrid, cx, cy, radius, height float64) {
	radiusSq := radius * radius
	minX := int(math.Max(0, cx-radius))
	maxX := int(math.Min(float64(hm.W), cx+radius+1))
	minY := int(math.Max(0, cy-radius))
	maxY := int(math.Min(float64(hm.H), cy+radius+1))

	for y := minY; y < maxY; y++ {
		dy := float64(y) - cy
		for x := minX; x < maxX; x++ {
			dx := float64(x) - cx
			distSq := dx*dx + dy*dy
			if distSq >= radiusSq {
				continue
			}
			hm.Add(x, y, (1-distSq/radiusSq)*height)
		}
	}
}

// applyErosion runs a simplified droplet-based hydraulic erosion: each
// droplet walks the steepest descent, eroding proportionally to the local
// slope and depositing part of its sediment as it goes.
func (g *Generator) applyErosion(hm *core.FloatGrid, rng *core.RNG) {
	p := g.params
	if g.w < 3 || g.h < 3 {
		return
	}

	drops := rng.Between(p.DropletsMin, p.DropletsMax)
	offsets := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for i := 0; i < drops; i++ {
		x := rng.Between(1, g.w-2)
		y := rng.Between(1, g.h-2)
		sediment := 0.0

		for step := 0; step < p.DropletSteps; step++ {
			current := hm.At(x, y)

			// Steepest downhill neighbor.
			bestDiff := 0.0
			bestX, bestY := -1, -1
			for _, off := range offsets {
				nx, ny := x+off[0], y+off[1]
				if !hm.InBounds(nx, ny) {
					continue
				}
				diff := current - hm.At(nx, ny)
				if diff > bestDiff {
					bestDiff = diff
					bestX, bestY = nx, ny
				}
			}

			if bestX < 0 {
				// Local minimum: drop the remaining sediment.
				hm.Add(x, y, sediment)
				break
			}

			eroded := bestDiff * p.ErosionFactor
			hm.Add(x, y, -eroded)
			sediment += eroded

			deposit := sediment * p.DepositFactor
			hm.Add(x, y, deposit)
			sediment -= deposit

			x, y = bestX, bestY
		}
	}
}
