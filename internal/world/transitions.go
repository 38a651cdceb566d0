package world

import (
	"fmt"

	"isle-sim/internal/core"
)

// Transition records a directed navigable edge between z-levels: standing
// at (X, Y) on FromZ leads to the same coordinates on ToZ.
type Transition struct {
	FromZ, ToZ int
	X, Y       int
}

// AddTransition registers a navigable point between two levels. Both
// levels must already exist and the coordinates must be in bounds. The
// reciprocal edge is registered as well, so the model never holds a
// one-way stair by accident. Duplicate registrations are ignored.
func (w *World) AddTransition(fromZ, toZ, x, y int) error {
	if _, ok := w.levels[fromZ]; !ok {
		return fmt.Errorf("%w: source z=%d", core.ErrNoSuchLevel, fromZ)
	}
	if _, ok := w.levels[toZ]; !ok {
		return fmt.Errorf("%w: target z=%d", core.ErrNoSuchLevel, toZ)
	}
	if !w.InBounds(x, y) {
		return fmt.Errorf("%w: transition at (%d,%d) outside %dx%d map", core.ErrOutOfBounds, x, y, w.width, w.height)
	}
	if fromZ == toZ {
		return fmt.Errorf("%w: transition from z=%d to itself", core.ErrInvalidConfig, fromZ)
	}

	w.appendTransition(Transition{FromZ: fromZ, ToZ: toZ, X: x, Y: y})
	w.appendTransition(Transition{FromZ: toZ, ToZ: fromZ, X: x, Y: y})
	return nil
}

func (w *World) appendTransition(t Transition) {
	for _, existing := range w.transitions[t.FromZ] {
		if existing == t {
			return
		}
	}
	w.transitions[t.FromZ] = append(w.transitions[t.FromZ], t)
}

// Transitions returns all transitions leaving the given level, in
// registration order.
func (w *World) Transitions(z int) ([]Transition, error) {
	if _, ok := w.levels[z]; !ok {
		return nil, fmt.Errorf("%w: z=%d", core.ErrNoSuchLevel, z)
	}
	out := make([]Transition, len(w.transitions[z]))
	copy(out, w.transitions[z])
	return out, nil
}

// TransitionAt returns the transition leaving z at (x, y), if any.
func (w *World) TransitionAt(z, x, y int) (Transition, bool) {
	for _, t := range w.transitions[z] {
		if t.X == x && t.Y == y {
			return t, true
		}
	}
	return Transition{}, false
}
