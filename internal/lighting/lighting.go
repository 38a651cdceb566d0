package lighting

import (
	"fmt"
	"math"

	"isle-sim/internal/clock"
	"isle-sim/internal/core"
	"isle-sim/internal/terrain"
)

// PointLight is a fixed artificial light source. Intensity is the value at
// the source tile and falls off linearly with distance, reaching zero at
// Radius.
type PointLight struct {
	X, Y      int
	Intensity float64
	Radius    int
}

// Reflectivity constants per terrain class. Rain and storms make water
// more mirror-like and raise the reflection contribution.
const (
	waterReflectivity    = 0.8
	wetWaterReflectivity = 0.9
	beachReflectivity    = 0.4
	defaultReflectivity  = 0.1

	reflectionWeight    = 0.3
	wetReflectionWeight = 0.5
)

// Night-time ambient floor and the day curve base, chosen so noon under
// clear skies reaches 1.0 and dawn starts at 0.2.
const (
	dayBase      = 0.2
	daySpan      = 0.8
	nightAmbient = 0.1
)

// TransitionLeak is the fraction of a transition tile's light that seeds
// the matching tile on the adjacent level.
const TransitionLeak = 0.5

// Field holds the per-level light layers: natural (sun and moon),
// artificial (point sources), reflected (terrain bounce) and the combined
// value exposed to queries. All layers live in [0,1]; the combination is
// clipped, never renormalized, so unsaturated tiles keep their relative
// signal.
type Field struct {
	w, h int

	natural      *core.FloatGrid
	artificial   *core.FloatGrid
	reflected    *core.FloatGrid
	combined     *core.FloatGrid
	reflectivity *core.FloatGrid

	sources     []PointLight
	wet         bool
	underground bool
}

// NewField allocates a dark light field for a level of the given size.
func NewField(w, h int) *Field {
	return &Field{
		w:            w,
		h:            h,
		natural:      core.NewFloatGrid(w, h),
		artificial:   core.NewFloatGrid(w, h),
		reflected:    core.NewFloatGrid(w, h),
		combined:     core.NewFloatGrid(w, h),
		reflectivity: core.NewFloatGrid(w, h),
	}
}

// Size returns the field dimensions.
func (f *Field) Size() (w, h int) { return f.w, f.h }

// SetUnderground marks the field as belonging to a level the sky cannot
// reach. Underground fields receive no natural light; only point sources
// and light leaked through transitions illuminate them.
func (f *Field) SetUnderground(underground bool) { f.underground = underground }

// Underground reports whether the field is cut off from the sky.
func (f *Field) Underground() bool { return f.underground }

// Natural exposes the sun/moon layer.
func (f *Field) Natural() *core.FloatGrid { return f.natural }

// Artificial exposes the point-source layer.
func (f *Field) Artificial() *core.FloatGrid { return f.artificial }

// Reflected exposes the terrain-bounce layer.
func (f *Field) Reflected() *core.FloatGrid { return f.reflected }

// Combined exposes the clipped total layer.
func (f *Field) Combined() *core.FloatGrid { return f.combined }

// Reflectivity exposes the per-tile reflectivity scalars.
func (f *Field) Reflectivity() *core.FloatGrid { return f.reflectivity }

// Sources returns the registered point lights.
func (f *Field) Sources() []PointLight { return f.sources }

// AddSource registers an artificial point light.
func (f *Field) AddSource(l PointLight) {
	f.sources = append(f.sources, l)
}

// ClearSources removes all registered point lights.
func (f *Field) ClearSources() {
	f.sources = f.sources[:0]
}

// UpdateReflectivity derives per-tile reflectivity from terrain and the
// current weather. tiles must hold w*h entries in row-major order.
func (f *Field) UpdateReflectivity(tiles []terrain.Type, weather clock.Weather) {
	waterRef := waterReflectivity
	if weather.Wet() {
		waterRef = wetWaterReflectivity
	}
	f.wet = weather.Wet()

	values := f.reflectivity.Values()
	for i, t := range tiles {
		if i >= len(values) {
			break
		}
		switch t {
		case terrain.Water:
			values[i] = waterRef
		case terrain.Beach:
			values[i] = beachReflectivity
		default:
			values[i] = defaultReflectivity
		}
	}
}

// Ambient returns the natural light scalar for the given clock state:
// the daylight curve blended with the moon contribution, scaled by the
// weather modifier and capped at 1.
func Ambient(t *clock.System) float64 {
	daylight := t.DaylightFactor()

	var ambient float64
	if daylight > 0 {
		ambient = dayBase + daySpan*daylight
	} else {
		ambient = nightAmbient + t.MoonIllumination()
	}

	ambient *= t.Weather().LightModifier()
	if ambient > 1 {
		ambient = 1
	}
	return ambient
}

// Update recomputes every layer from the clock state and the registered
// point lights, then combines them additively with clipping.
func (f *Field) Update(t *clock.System) {
	if f.underground {
		f.natural.Fill(0)
	} else {
		f.natural.Fill(Ambient(t))
	}

	f.artificial.Fill(0)
	for _, src := range f.sources {
		f.stamp(src)
	}

	weight := reflectionWeight
	if f.wet {
		weight = wetReflectionWeight
	}

	natural := f.natural.Values()
	artificial := f.artificial.Values()
	reflected := f.reflected.Values()
	combined := f.combined.Values()
	reflectivity := f.reflectivity.Values()

	for i := range combined {
		reflected[i] = weight * reflectivity[i] * (natural[i] + artificial[i])
		v := natural[i] + artificial[i] + reflected[i]
		if v > 1 {
			v = 1
		} else if v < 0 {
			v = 0
		}
		combined[i] = v
	}
}

// stamp adds one point light into the artificial layer with linear
// distance falloff, zero at and beyond the radius.
func (f *Field) stamp(src PointLight) {
	if src.Radius <= 0 || src.Intensity <= 0 {
		return
	}
	radius := float64(src.Radius)

	minX := max(0, src.X-src.Radius)
	maxX := min(f.w-1, src.X+src.Radius)
	minY := max(0, src.Y-src.Radius)
	maxY := min(f.h-1, src.Y+src.Radius)

	for y := minY; y <= maxY; y++ {
		dy := float64(y - src.Y)
		for x := minX; x <= maxX; x++ {
			dx := float64(x - src.X)
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist > radius {
				continue
			}
			f.artificial.Add(x, y, src.Intensity*(1-dist/radius))
		}
	}
}

// LightLevel returns the combined light at (x, y) in [0,1].
func (f *Field) LightLevel(x, y int) (float64, error) {
	if !f.combined.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d light field", core.ErrOutOfBounds, x, y, f.w, f.h)
	}
	return f.combined.At(x, y), nil
}

// Boost raises the combined light at (x, y), clipping at 1. Level
// coordinators use it to leak light through stairs and cave entrances.
func (f *Field) Boost(x, y int, amount float64) {
	if !f.combined.InBounds(x, y) || amount <= 0 {
		return
	}
	v := f.combined.At(x, y) + amount
	if v > 1 {
		v = 1
	}
	f.combined.Set(x, y, v)
}
