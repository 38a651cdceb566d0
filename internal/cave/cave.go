package cave

import (
	"fmt"

	"isle-sim/internal/core"
)

// Params controls one cellular-automaton cave generation run.
type Params struct {
	// InitialFill is the probability that a cell starts as wall.
	InitialFill float64 `yaml:"initial_fill"`
	// BirthLimit: a cell with at least this many wall neighbors becomes wall.
	BirthLimit int `yaml:"birth_limit"`
	// DeathLimit: a cell with fewer than this many wall neighbors opens up.
	// Counts between DeathLimit and BirthLimit preserve the current state.
	DeathLimit int `yaml:"death_limit"`
	// Iterations is the number of automaton rounds.
	Iterations int `yaml:"iterations"`
	// TunnelBuffer widens connectivity tunnels: carved width is
	// TunnelBuffer+1.
	TunnelBuffer int `yaml:"tunnel_buffer"`
}

// DefaultParams returns the standard cave tuning.
func DefaultParams() Params {
	return Params{
		InitialFill:  0.45,
		BirthLimit:   4,
		DeathLimit:   3,
		Iterations:   4,
		TunnelBuffer: 1,
	}
}

// Validate reports whether the parameter set is usable.
func (p Params) Validate() error {
	if p.InitialFill < 0 || p.InitialFill > 1 {
		return fmt.Errorf("%w: initial fill %g outside [0,1]", core.ErrInvalidConfig, p.InitialFill)
	}
	if p.BirthLimit < 0 || p.BirthLimit > 8 {
		return fmt.Errorf("%w: birth limit %d outside [0,8]", core.ErrInvalidConfig, p.BirthLimit)
	}
	if p.DeathLimit < 0 || p.DeathLimit > 8 {
		return fmt.Errorf("%w: death limit %d outside [0,8]", core.ErrInvalidConfig, p.DeathLimit)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d negative", core.ErrInvalidConfig, p.Iterations)
	}
	if p.TunnelBuffer < 0 {
		return fmt.Errorf("%w: tunnel buffer %d negative", core.ErrInvalidConfig, p.TunnelBuffer)
	}
	return nil
}

// Generator produces cave layouts whose walkable area is a single
// 4-connected region.
type Generator struct {
	params Params
}

// New returns a Generator after validating the parameters.
func New(params Params) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Generator{params: params}, nil
}

// Params returns the tuning the generator was built with.
func (g *Generator) Params() Params { return g.params }

// Generate returns a wall mask (true = wall) of the given dimensions. The
// open cells form exactly one 4-connected region; a leftover split after
// the tunneling pass is reported as ErrConnectivity and indicates a bug.
func (g *Generator) Generate(width, height int, seed int64) (*core.BoolGrid, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: cave dimensions %dx%d too small", core.ErrInvalidConfig, width, height)
	}

	rng := core.NewRNG(seed)

	walls := core.NewBoolGrid(width, height)
	cells := walls.Values()
	for i := range cells {
		cells[i] = rng.Chance(g.params.InitialFill)
	}

	for i := 0; i < g.params.Iterations; i++ {
		walls = g.step(walls)
	}

	g.ensureConnectivity(walls, rng)

	if n := openRegionCount(walls); n > 1 {
		return nil, fmt.Errorf("%w: %d open regions remain after tunneling", core.ErrConnectivity, n)
	}
	return walls, nil
}

// step applies one round of the Moore-neighborhood automaton and forces the
// border to wall so caves never bleed off the map.
func (g *Generator) step(walls *core.BoolGrid) *core.BoolGrid {
	w, h := walls.W, walls.H
	next := walls.Clone()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			count := mooreWallCount(walls, x, y)
			switch {
			case count >= g.params.BirthLimit:
				next.Set(x, y, true)
			case count < g.params.DeathLimit:
				next.Set(x, y, false)
			}
		}
	}

	for x := 0; x < w; x++ {
		next.Set(x, 0, true)
		next.Set(x, h-1, true)
	}
	for y := 0; y < h; y++ {
		next.Set(0, y, true)
		next.Set(w-1, y, true)
	}
	return next
}

func mooreWallCount(walls *core.BoolGrid, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !walls.InBounds(nx, ny) {
				continue
			}
			if walls.At(nx, ny) {
				count++
			}
		}
	}
	return count
}

// ensureConnectivity carves tunnels from every minor open region to the
// largest one until a single region remains. Labeling is recomputed after
// each carving pass because a tunnel can merge more than two regions.
func (g *Generator) ensureConnectivity(walls *core.BoolGrid, rng *core.RNG) {
	const maxPasses = 8

	for pass := 0; pass < maxPasses; pass++ {
		regions := labelOpenRegions(walls)
		if len(regions) <= 1 {
			return
		}

		largest := 0
		for i, r := range regions {
			if len(r) > len(regions[largest]) {
				largest = i
			}
		}

		for i, region := range regions {
			if i == largest {
				continue
			}
			from, to := closestPair(region, regions[largest], rng)
			g.carveTunnel(walls, from, to)
		}
	}
}

type point struct{ x, y int }

// labelOpenRegions flood-fills the open cells 4-connected and returns the
// member points of every region.
func labelOpenRegions(walls *core.BoolGrid) [][]point {
	w, h := walls.W, walls.H
	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}

	var regions [][]point
	var stack []point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if walls.At(x, y) || labels[idx] >= 0 {
				continue
			}

			label := len(regions)
			var members []point
			stack = append(stack[:0], point{x, y})
			labels[idx] = label

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				members = append(members, p)

				for _, n := range [4]point{{p.x - 1, p.y}, {p.x + 1, p.y}, {p.x, p.y - 1}, {p.x, p.y + 1}} {
					if !walls.InBounds(n.x, n.y) || walls.At(n.x, n.y) {
						continue
					}
					ni := n.y*w + n.x
					if labels[ni] >= 0 {
						continue
					}
					labels[ni] = label
					stack = append(stack, n)
				}
			}
			regions = append(regions, members)
		}
	}
	return regions
}

// openRegionCount returns the number of 4-connected open regions.
func openRegionCount(walls *core.BoolGrid) int {
	return len(labelOpenRegions(walls))
}

// OpenRegions reports how many disconnected walkable regions a layout has.
// A correct cave has exactly one.
func OpenRegions(walls *core.BoolGrid) int {
	return openRegionCount(walls)
}

// closestPair samples up to 20 points from each region and returns the pair
// with the smallest Manhattan distance. Sampling keeps the search cheap on
// large caves without hurting tunnel quality noticeably.
func closestPair(from, to []point, rng *core.RNG) (point, point) {
	const samples = 20

	pick := func(points []point) []point {
		if len(points) <= samples {
			return points
		}
		picked := make([]point, samples)
		perm := rng.Source().Perm(len(points))
		for i := 0; i < samples; i++ {
			picked[i] = points[perm[i]]
		}
		return picked
	}

	fromSample := pick(from)
	toSample := pick(to)

	best := 1 << 30
	bestFrom, bestTo := fromSample[0], toSample[0]
	for _, a := range fromSample {
		for _, b := range toSample {
			d := abs(a.x-b.x) + abs(a.y-b.y)
			if d < best {
				best = d
				bestFrom, bestTo = a, b
			}
		}
	}
	return bestFrom, bestTo
}

// carveTunnel opens an L-shaped path from a to b: horizontal along a's row,
// then vertical along b's column. Each path cell is widened by the tunnel
// buffer, clearing interior cells only so the border stays wall.
func (g *Generator) carveTunnel(walls *core.BoolGrid, a, b point) {
	buffer := g.params.TunnelBuffer

	clear := func(x, y int) {
		if walls.InBounds(x, y) {
			walls.Set(x, y, false)
		}
		for dy := -buffer; dy <= buffer; dy++ {
			for dx := -buffer; dx <= buffer; dx++ {
				nx, ny := x+dx, y+dy
				if nx > 0 && nx < walls.W-1 && ny > 0 && ny < walls.H-1 {
					walls.Set(nx, ny, false)
				}
			}
		}
	}

	for x := min(a.x, b.x); x <= max(a.x, b.x); x++ {
		clear(x, a.y)
	}
	for y := min(a.y, b.y); y <= max(a.y, b.y); y++ {
		clear(b.x, y)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
