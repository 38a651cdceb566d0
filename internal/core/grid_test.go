package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatGridBasics(t *testing.T) {
	g := NewFloatGrid(4, 3)
	assert.Equal(t, 4, g.W)
	assert.Equal(t, 3, g.H)
	assert.Len(t, g.Values(), 12)

	g.Set(2, 1, 0.5)
	assert.Equal(t, 0.5, g.At(2, 1))
	assert.Equal(t, 0.5, g.Values()[g.Index(2, 1)])

	g.Add(2, 1, 0.25)
	assert.InDelta(t, 0.75, g.At(2, 1), 1e-12)

	assert.True(t, g.InBounds(3, 2))
	assert.False(t, g.InBounds(4, 0))
	assert.False(t, g.InBounds(0, -1))
}

func TestFloatGridNormalize(t *testing.T) {
	g := NewFloatGrid(2, 2)
	g.Set(0, 0, -1)
	g.Set(1, 0, 0)
	g.Set(0, 1, 1)
	g.Set(1, 1, 3)

	g.Normalize()

	min, max := g.MinMax()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)
	assert.InDelta(t, 0.25, g.At(1, 0), 1e-12)

	// A flat grid must not divide by zero.
	flat := NewFloatGrid(2, 2)
	flat.Fill(0.7)
	flat.Normalize()
	assert.Equal(t, 0.7, flat.At(0, 0))
}

func TestFloatGridCloneIndependent(t *testing.T) {
	g := NewFloatGrid(3, 3)
	g.Fill(0.2)

	c := g.Clone()
	c.Set(1, 1, 0.9)

	assert.Equal(t, 0.2, g.At(1, 1))
	assert.Equal(t, 0.9, c.At(1, 1))
}

func TestBoolGridCount(t *testing.T) {
	g := NewBoolGrid(4, 4)
	assert.Zero(t, g.Count())

	g.Set(0, 0, true)
	g.Set(3, 3, true)
	assert.Equal(t, 2, g.Count())

	c := g.Clone()
	c.Set(1, 1, true)
	assert.Equal(t, 2, g.Count())
	assert.Equal(t, 3, c.Count())
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
		require.Equal(t, a.Between(0, 10), b.Between(0, 10))
	}

	assert.NotEqual(t, NewRNG(42).Float64(), NewRNG(43).Float64(),
		"different seeds must start different streams")
}

func TestRNGRanges(t *testing.T) {
	rng := NewRNG(7)

	for i := 0; i < 1000; i++ {
		v := rng.Range(2.5, 7.5)
		require.GreaterOrEqual(t, v, 2.5)
		require.Less(t, v, 7.5)

		n := rng.Between(3, 6)
		require.GreaterOrEqual(t, n, 3)
		require.LessOrEqual(t, n, 6)
	}

	assert.Equal(t, 5, NewRNG(1).Between(5, 5))
	assert.Equal(t, 0, NewRNG(1).IntN(0))
}

func TestRNGChance(t *testing.T) {
	rng := NewRNG(9)

	always, never := 0, 0
	for i := 0; i < 100; i++ {
		if rng.Chance(1.0) {
			always++
		}
		if rng.Chance(0.0) {
			never++
		}
	}
	assert.Equal(t, 100, always)
	assert.Zero(t, never)
}
