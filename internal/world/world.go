package world

import (
	"fmt"
	"sort"

	"isle-sim/internal/cave"
	"isle-sim/internal/clock"
	"isle-sim/internal/core"
	"isle-sim/internal/lighting"
	"isle-sim/internal/structure"
	"isle-sim/internal/terrain"
)

// Level bundles everything stored for one z-level: the tile grid, its
// heightmap and its own light field. Levels persist for the lifetime of
// the world, so nothing is lost when the player moves between them.
type Level struct {
	Tiles     []terrain.Type
	Heightmap *core.FloatGrid
	Light     *lighting.Field
}

// PlacedBuilding ties a generated building to the z-level its ground
// floor sits on.
type PlacedBuilding struct {
	structure.Building
	BaseZ int
}

// World coordinates the terrain, cave, structure, lighting and clock
// subsystems across z-levels. It is the only component that mutates more
// than one subsystem at a time; everything else reads through its query
// surface.
type World struct {
	width, height int
	currentZ      int

	levels      map[int]*Level
	transitions map[int][]Transition
	buildings   []PlacedBuilding

	clock      *clock.System
	terrainGen *terrain.Generator
	caveGen    *cave.Generator
	structGen  *structure.Generator

	cfg Config
}

// New builds an empty world of the given dimensions with the default
// tuning. The surface level (z=0) exists from the start.
func New(width, height int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	return NewFromConfig(cfg)
}

// NewFromConfig builds an empty world from an explicit configuration.
func NewFromConfig(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	caveGen, err := cave.New(cfg.Cave)
	if err != nil {
		return nil, err
	}

	w := &World{
		width:       cfg.Width,
		height:      cfg.Height,
		levels:      make(map[int]*Level),
		transitions: make(map[int][]Transition),
		clock:       clock.New(core.NewRNG(cfg.Seed)),
		terrainGen:  terrain.NewGeneratorWithParams(cfg.Width, cfg.Height, cfg.Terrain),
		caveGen:     caveGen,
		structGen:   structure.NewGenerator(cfg.Width, cfg.Height),
		cfg:         cfg,
	}
	w.levels[0] = w.newLevel(0)
	return w, nil
}

// newLevel allocates a grass-filled level with a flat heightmap and a dark
// light field. Levels below the surface never see the sky.
func (w *World) newLevel(z int) *Level {
	tiles := make([]terrain.Type, w.width*w.height)
	for i := range tiles {
		tiles[i] = terrain.Grass
	}
	light := lighting.NewField(w.width, w.height)
	light.SetUnderground(z < 0)
	return &Level{
		Tiles:     tiles,
		Heightmap: core.NewFloatGrid(w.width, w.height),
		Light:     light,
	}
}

// Size returns the map dimensions shared by every level.
func (w *World) Size() (int, int) { return w.width, w.height }

// InBounds reports whether (x, y) lies inside the map.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// CurrentZ returns the active z-level index.
func (w *World) CurrentZ() int { return w.currentZ }

// Clock exposes the world clock.
func (w *World) Clock() *clock.System { return w.clock }

// Level returns the data for the given z-level.
func (w *World) Level(z int) (*Level, error) {
	level, ok := w.levels[z]
	if !ok {
		return nil, fmt.Errorf("%w: z=%d", core.ErrNoSuchLevel, z)
	}
	return level, nil
}

// CurrentLevel returns the active level's data.
func (w *World) CurrentLevel() *Level { return w.levels[w.currentZ] }

// AddZLevel creates a new empty level at z.
func (w *World) AddZLevel(z int) error {
	if _, ok := w.levels[z]; ok {
		return fmt.Errorf("%w: z=%d", core.ErrLevelExists, z)
	}
	w.levels[z] = w.newLevel(z)
	return nil
}

// ensureLevel returns the level at z, creating it when absent.
func (w *World) ensureLevel(z int) *Level {
	if level, ok := w.levels[z]; ok {
		return level
	}
	level := w.newLevel(z)
	w.levels[z] = level
	return level
}

// ChangeLevel makes z the active level. The target must exist.
func (w *World) ChangeLevel(z int) error {
	if _, ok := w.levels[z]; !ok {
		return fmt.Errorf("%w: z=%d", core.ErrNoSuchLevel, z)
	}
	w.currentZ = z
	return nil
}

// ZLevels returns the indices of all existing levels in ascending order.
func (w *World) ZLevels() []int {
	zs := make([]int, 0, len(w.levels))
	for z := range w.levels {
		zs = append(zs, z)
	}
	sort.Ints(zs)
	return zs
}

// TileAt returns the terrain at (x, y) on the current level. The
// coordinates must be in bounds; use TerrainAt for a checked query.
func (w *World) TileAt(x, y int) terrain.Type {
	return w.CurrentLevel().Tiles[y*w.width+x]
}

// HeightAt returns the normalized height at (x, y) on the current level.
func (w *World) HeightAt(x, y int) float64 {
	level := w.CurrentLevel()
	if level.Heightmap == nil {
		return 0
	}
	return level.Heightmap.At(x, y)
}

// TerrainAt returns the terrain at (x, y) on the current level, failing on
// out-of-range coordinates instead of clamping them.
func (w *World) TerrainAt(x, y int) (terrain.Type, error) {
	if !w.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d map", core.ErrOutOfBounds, x, y, w.width, w.height)
	}
	return w.TileAt(x, y), nil
}

// GenerateTerrain synthesizes the current level's heightmap from the seed
// and classifies it into terrain. Identical seeds produce identical
// levels.
func (w *World) GenerateTerrain(seed int64) {
	level := w.CurrentLevel()
	level.Heightmap = w.terrainGen.Generate(seed)
	w.applyHeightmap(level, w.currentZ)
}

// AddTerrainFeatures layers hills and erosion over the current level's
// heightmap and reclassifies. Classification thresholds are unchanged by
// this pass.
func (w *World) AddTerrainFeatures(seed int64) {
	level := w.CurrentLevel()
	if level.Heightmap == nil {
		level.Heightmap = core.NewFloatGrid(w.width, w.height)
	}
	w.terrainGen.AddFeatures(level.Heightmap, seed)
	w.applyHeightmap(level, w.currentZ)
}

// Heightmap returns a copy of the current level's heightmap, or nil for a
// level that never received one.
func (w *World) Heightmap() *core.FloatGrid {
	level := w.CurrentLevel()
	if level.Heightmap == nil {
		return nil
	}
	return level.Heightmap.Clone()
}

// applyHeightmap converts heights into terrain types. Surface levels use
// the fixed thresholds; underground levels keep existing cave tiles and
// derive floor/wall from the heightmap elsewhere.
func (w *World) applyHeightmap(level *Level, z int) {
	values := level.Heightmap.Values()
	if z >= 0 {
		for i, h := range values {
			level.Tiles[i] = terrain.Classify(h)
		}
	} else {
		for i, h := range values {
			switch level.Tiles[i] {
			case terrain.CaveWall, terrain.CaveFloor:
				// Cave layout takes precedence.
			default:
				level.Tiles[i] = terrain.ClassifyUnderground(h)
			}
		}
	}
	level.Light.UpdateReflectivity(level.Tiles, w.clock.Weather())
}

// SetTime moves the clock to the given wall time.
func (w *World) SetTime(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: hour %d outside [0,23]", core.ErrInvalidConfig, hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("%w: minute %d outside [0,59]", core.ErrInvalidConfig, minute)
	}
	w.clock.SetTime(hour, minute)
	return nil
}

// AdvanceTime moves the clock forward, driving weather and moon phase.
func (w *World) AdvanceTime(minutes int) {
	w.clock.Advance(minutes)
}

// CurrentTime returns the clock's hour, minute and day.
func (w *World) CurrentTime() (hour, minute, day int) {
	return w.clock.Hour, w.clock.Minute, w.clock.Day
}

// CurrentWeather returns the active weather condition.
func (w *World) CurrentWeather() clock.Weather {
	return w.clock.Weather()
}

// UpdateLighting recomputes every level's light field from the clock, then
// leaks light across registered transitions so stairs and cave entrances
// glow into the level they lead to.
func (w *World) UpdateLighting() {
	zs := w.ZLevels()
	for _, z := range zs {
		level := w.levels[z]
		level.Light.UpdateReflectivity(level.Tiles, w.clock.Weather())
		level.Light.Update(w.clock)
	}

	for _, z := range zs {
		from := w.levels[z]
		for _, t := range w.transitions[z] {
			to, ok := w.levels[t.ToZ]
			if !ok {
				continue
			}
			value, err := from.Light.LightLevel(t.X, t.Y)
			if err != nil {
				continue
			}
			to.Light.Boost(t.X, t.Y, value*lighting.TransitionLeak)
		}
	}
}

// LightLevel returns the combined light at (x, y) on the current level.
func (w *World) LightLevel(x, y int) (float64, error) {
	if !w.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d map", core.ErrOutOfBounds, x, y, w.width, w.height)
	}
	return w.CurrentLevel().Light.LightLevel(x, y)
}

// Buildings returns the buildings whose ground floor sits on z.
func (w *World) Buildings(z int) []PlacedBuilding {
	var out []PlacedBuilding
	for _, b := range w.buildings {
		if b.BaseZ == z {
			out = append(out, b)
		}
	}
	return out
}
