package structure

import "isle-sim/internal/core"

// Rect is an axis-aligned tile rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether o lies fully inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Overlaps reports whether r and o share any tile.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Center returns the middle tile of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// bspNode is one entry in the partition arena. Children are indices into
// the arena; -1 marks a leaf.
type bspNode struct {
	bounds      Rect
	left, right int
}

// partition splits bounds into leaf rectangles using an iterative BSP over
// an arena of nodes. A node splits along its longer axis (random when the
// aspect is near square) at a seeded-random position, provided both halves
// stay at least minSize wide, and only when the split-chance roll passes.
func partition(bounds Rect, minSize int, splitChance float64, rng *core.RNG) []Rect {
	arena := []bspNode{{bounds: bounds, left: -1, right: -1}}
	frontier := []int{0}

	const maxRounds = 10
	for round := 0; round < maxRounds && len(frontier) > 0; round++ {
		var next []int
		for _, idx := range frontier {
			if !rng.Chance(splitChance) {
				continue
			}
			left, right, ok := splitNode(arena[idx].bounds, minSize, rng)
			if !ok {
				continue
			}
			arena[idx].left = len(arena)
			arena = append(arena, bspNode{bounds: left, left: -1, right: -1})
			arena[idx].right = len(arena)
			arena = append(arena, bspNode{bounds: right, left: -1, right: -1})
			next = append(next, arena[idx].left, arena[idx].right)
		}
		frontier = next
	}

	var leaves []Rect
	for _, n := range arena {
		if n.left < 0 {
			leaves = append(leaves, n.bounds)
		}
	}
	return leaves
}

// splitNode divides bounds in two when both children can hold a room of
// minSize. Wide nodes split vertically (side by side), tall ones
// horizontally, near-square ones randomly.
func splitNode(bounds Rect, minSize int, rng *core.RNG) (left, right Rect, ok bool) {
	if bounds.W < minSize*2 || bounds.H < minSize*2 {
		return Rect{}, Rect{}, false
	}

	const aspectBias = 1.25
	var splitWidth bool
	switch {
	case bounds.W > bounds.H && float64(bounds.W)/float64(bounds.H) >= aspectBias:
		splitWidth = true
	case bounds.H > bounds.W && float64(bounds.H)/float64(bounds.W) >= aspectBias:
		splitWidth = false
	default:
		splitWidth = rng.Bool()
	}

	if splitWidth {
		at := rng.Between(minSize, bounds.W-minSize)
		left = Rect{X: bounds.X, Y: bounds.Y, W: at, H: bounds.H}
		right = Rect{X: bounds.X + at, Y: bounds.Y, W: bounds.W - at, H: bounds.H}
	} else {
		at := rng.Between(minSize, bounds.H-minSize)
		left = Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: at}
		right = Rect{X: bounds.X, Y: bounds.Y + at, W: bounds.W, H: bounds.H - at}
	}
	return left, right, true
}

// carveRoom insets a room inside a leaf rectangle with 1–2 tiles of
// padding and a little positional jitter. Leaves too small for a 3x3 room
// yield no room.
func carveRoom(leaf Rect, rng *core.RNG) (Rect, bool) {
	if leaf.W < 3 || leaf.H < 3 {
		return Rect{}, false
	}

	padding := rng.Between(1, 2)
	roomW := max(3, leaf.W-padding*2)
	roomH := max(3, leaf.H-padding*2)

	roomX := leaf.X + padding
	roomY := leaf.Y + padding
	if padding > 1 {
		roomX += rng.Between(0, padding/2)
		roomY += rng.Between(0, padding/2)
	}

	// Jitter must not push the room outside its leaf.
	if roomX+roomW > leaf.X+leaf.W {
		roomX = leaf.X + leaf.W - roomW
	}
	if roomY+roomH > leaf.Y+leaf.H {
		roomY = leaf.Y + leaf.H - roomH
	}

	return Rect{X: roomX, Y: roomY, W: roomW, H: roomH}, true
}
