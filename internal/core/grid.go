package core

// FloatGrid stores a dense 2D field of float64 values in row-major order.
// Heightmaps and light layers are FloatGrids normalized to [0,1].
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Values exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Values() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *FloatGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y). The coordinates must be in bounds.
func (g *FloatGrid) At(x, y int) float64 { return g.data[y*g.W+x] }

// Set writes the value at (x, y). The coordinates must be in bounds.
func (g *FloatGrid) Set(x, y int, v float64) { g.data[y*g.W+x] = v }

// Add accumulates v into the value at (x, y).
func (g *FloatGrid) Add(x, y int, v float64) { g.data[y*g.W+x] += v }

// Fill sets every cell to v.
func (g *FloatGrid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns an independent copy of the grid.
func (g *FloatGrid) Clone() *FloatGrid {
	c := &FloatGrid{W: g.W, H: g.H, data: make([]float64, len(g.data))}
	copy(c.data, g.data)
	return c
}

// MinMax returns the smallest and largest values in the grid.
func (g *FloatGrid) MinMax() (min, max float64) {
	min, max = g.data[0], g.data[0]
	for _, v := range g.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Normalize rescales all values into [0,1]. A flat grid is left untouched.
func (g *FloatGrid) Normalize() {
	min, max := g.MinMax()
	if max <= min {
		return
	}
	span := max - min
	for i, v := range g.data {
		g.data[i] = (v - min) / span
	}
}

// BoolGrid stores a dense 2D mask in row-major order.
type BoolGrid struct {
	W, H int
	data []bool
}

// NewBoolGrid allocates a mask with the given dimensions.
func NewBoolGrid(w, h int) *BoolGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &BoolGrid{W: w, H: h, data: make([]bool, w*h)}
}

// Values exposes the backing slice so callers can read/write values directly.
func (g *BoolGrid) Values() []bool { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *BoolGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *BoolGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y). The coordinates must be in bounds.
func (g *BoolGrid) At(x, y int) bool { return g.data[y*g.W+x] }

// Set writes the value at (x, y). The coordinates must be in bounds.
func (g *BoolGrid) Set(x, y int, v bool) { g.data[y*g.W+x] = v }

// Count returns the number of true cells.
func (g *BoolGrid) Count() int {
	n := 0
	for _, v := range g.data {
		if v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the mask.
func (g *BoolGrid) Clone() *BoolGrid {
	c := &BoolGrid{W: g.W, H: g.H, data: make([]bool, len(g.data))}
	copy(c.data, g.data)
	return c
}
