package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isle-sim/internal/cave"
	"isle-sim/internal/core"
	"isle-sim/internal/terrain"
)

// testConfig shrinks the map and the erosion budget so generation stays
// fast under `go test`.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 48
	cfg.Terrain.DropletsMin = 500
	cfg.Terrain.DropletsMax = 800
	return cfg
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewFromConfig(testConfig())
	require.NoError(t, err)
	return w
}

func TestNewWorldStartsWithSurfaceLevel(t *testing.T) {
	w := newTestWorld(t)

	width, height := w.Size()
	assert.Equal(t, 48, width)
	assert.Equal(t, 48, height)
	assert.Equal(t, 0, w.CurrentZ())
	assert.Equal(t, []int{0}, w.ZLevels())

	// A fresh level is flat walkable grass.
	tile, err := w.TerrainAt(10, 10)
	require.NoError(t, err)
	assert.Equal(t, terrain.Grass, tile)
}

func TestNewFromConfigValidates(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 1
	_, err := NewFromConfig(cfg)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	cfg = testConfig()
	cfg.Cave.InitialFill = 2
	_, err = NewFromConfig(cfg)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestAddAndChangeLevel(t *testing.T) {
	w := newTestWorld(t)

	require.NoError(t, w.AddZLevel(1))
	assert.ErrorIs(t, w.AddZLevel(1), core.ErrLevelExists)
	require.NoError(t, w.AddZLevel(-1))
	assert.Equal(t, []int{-1, 0, 1}, w.ZLevels())

	require.NoError(t, w.ChangeLevel(1))
	assert.Equal(t, 1, w.CurrentZ())

	assert.ErrorIs(t, w.ChangeLevel(5), core.ErrNoSuchLevel)
	assert.Equal(t, 1, w.CurrentZ(), "a failed change must not move the player")

	_, err := w.Level(7)
	assert.ErrorIs(t, err, core.ErrNoSuchLevel)
}

func TestGenerateTerrainDeterministicAndClassified(t *testing.T) {
	a := newTestWorld(t)
	b := newTestWorld(t)

	a.GenerateTerrain(42)
	b.GenerateTerrain(42)

	assert.Equal(t, a.CurrentLevel().Tiles, b.CurrentLevel().Tiles)
	assert.Equal(t, a.Heightmap().Values(), b.Heightmap().Values())

	hm := a.Heightmap()
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			require.Equal(t, terrain.Classify(hm.At(x, y)), a.TileAt(x, y),
				"tile (%d,%d) disagrees with its height", x, y)
		}
	}

	b.GenerateTerrain(43)
	assert.NotEqual(t, a.CurrentLevel().Tiles, b.CurrentLevel().Tiles)
}

func TestAddTerrainFeaturesReclassifies(t *testing.T) {
	w := newTestWorld(t)
	w.GenerateTerrain(42)
	before := w.Heightmap()

	w.AddTerrainFeatures(7)

	after := w.Heightmap()
	assert.NotEqual(t, before.Values(), after.Values())
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			require.Equal(t, terrain.Classify(after.At(x, y)), w.TileAt(x, y))
		}
	}
}

func TestHeightmapReturnsCopy(t *testing.T) {
	w := newTestWorld(t)
	w.GenerateTerrain(42)

	hm := w.Heightmap()
	hm.Set(0, 0, 123)

	assert.NotEqual(t, 123.0, w.HeightAt(0, 0), "mutating the copy must not touch the world")
}

func TestApplyCaveLayout(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.AddZLevel(-1))
	require.NoError(t, w.ChangeLevel(-1))

	gen, err := cave.New(cave.DefaultParams())
	require.NoError(t, err)
	walls, err := gen.Generate(48, 48, 7)
	require.NoError(t, err)

	require.NoError(t, w.ApplyCaveLayout(walls))

	for i, wall := range walls.Values() {
		want := terrain.CaveFloor
		if wall {
			want = terrain.CaveWall
		}
		require.Equal(t, want, w.CurrentLevel().Tiles[i])
	}

	wrong, err := gen.Generate(24, 24, 7)
	require.NoError(t, err)
	assert.ErrorIs(t, w.ApplyCaveLayout(wrong), core.ErrInvalidConfig)
}

func TestGenerateCaveEntrance(t *testing.T) {
	w := newTestWorld(t)

	x, y, err := w.GenerateCaveEntrance(7)
	require.NoError(t, err)

	tile, err := w.TerrainAt(x, y)
	require.NoError(t, err)
	assert.Equal(t, terrain.CaveEntrance, tile)

	below, err := w.Level(-1)
	require.NoError(t, err)
	assert.Equal(t, terrain.CaveFloor, below.Tiles[y*48+x], "the entrance must open above walkable cave")

	down, ok := w.TransitionAt(0, x, y)
	require.True(t, ok, "entrance must register a transition")
	assert.Equal(t, -1, down.ToZ)

	up, ok := w.TransitionAt(-1, x, y)
	require.True(t, ok, "the way back up must exist")
	assert.Equal(t, 0, up.ToZ)
}

func TestGenerateCaveEntranceDeterministic(t *testing.T) {
	a := newTestWorld(t)
	b := newTestWorld(t)

	ax, ay, err := a.GenerateCaveEntrance(1337)
	require.NoError(t, err)
	bx, by, err := b.GenerateCaveEntrance(1337)
	require.NoError(t, err)

	assert.Equal(t, ax, bx)
	assert.Equal(t, ay, by)
}

func TestAddTransitionValidation(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.AddZLevel(1))

	assert.ErrorIs(t, w.AddTransition(0, 5, 3, 3), core.ErrNoSuchLevel)
	assert.ErrorIs(t, w.AddTransition(5, 0, 3, 3), core.ErrNoSuchLevel)
	assert.ErrorIs(t, w.AddTransition(0, 1, -1, 3), core.ErrOutOfBounds)
	assert.ErrorIs(t, w.AddTransition(0, 0, 3, 3), core.ErrInvalidConfig)

	require.NoError(t, w.AddTransition(0, 1, 3, 3))
	// Duplicates are ignored.
	require.NoError(t, w.AddTransition(0, 1, 3, 3))
	down, err := w.Transitions(0)
	require.NoError(t, err)
	assert.Len(t, down, 1)

	up, err := w.Transitions(1)
	require.NoError(t, err)
	require.Len(t, up, 1)
	assert.Equal(t, Transition{FromZ: 1, ToZ: 0, X: 3, Y: 3}, up[0])
}

func TestAddBuildingsToMap(t *testing.T) {
	w := newTestWorld(t)

	require.NoError(t, w.AddBuildingsToMap(4, 42))

	buildings := w.Buildings(0)
	require.NotEmpty(t, buildings)

	width, height := w.Size()
	for _, b := range buildings {
		fp := b.Floors[0].Footprint
		assert.GreaterOrEqual(t, fp.X, 0)
		assert.GreaterOrEqual(t, fp.Y, 0)
		assert.Less(t, fp.X+fp.W, width)
		assert.Less(t, fp.Y+fp.H, height)

		for _, conn := range b.Connections {
			fromZ := b.BaseZ + conn.Floor
			toZ := b.BaseZ + conn.TargetFloor

			_, err := w.Level(toZ)
			require.NoError(t, err, "upper floor level must exist")

			tr, ok := w.TransitionAt(fromZ, conn.Position.X, conn.Position.Y)
			require.True(t, ok)
			assert.Equal(t, toZ, tr.ToZ)
		}
	}
}

func TestAddBuildingsDeterministic(t *testing.T) {
	a := newTestWorld(t)
	b := newTestWorld(t)

	require.NoError(t, a.AddBuildingsToMap(3, 99))
	require.NoError(t, b.AddBuildingsToMap(3, 99))

	assert.Equal(t, a.Buildings(0), b.Buildings(0))
}

func TestGenerateBuildingsValidation(t *testing.T) {
	w := newTestWorld(t)

	_, err := w.GenerateBuildings(-1, 8, 1)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = w.GenerateBuildings(2, 2, 1)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	buildings, err := w.GenerateBuildings(0, 8, 1)
	require.NoError(t, err)
	assert.Empty(t, buildings)
}

func TestArtificialLightsIlluminate(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.AddBuildingsToMap(3, 42))
	require.NotEmpty(t, w.Buildings(0))

	w.AddArtificialLights()
	require.NoError(t, w.SetTime(0, 0))
	w.Clock().MoonPhase = 4 // new moon
	w.UpdateLighting()

	entrance := w.Buildings(0)[0].Entrance
	lit, err := w.LightLevel(entrance.X, entrance.Y)
	require.NoError(t, err)

	// Find a tile far from every building light for comparison.
	level := w.CurrentLevel()
	darkest := 1.0
	for _, v := range level.Light.Combined().Values() {
		if v < darkest {
			darkest = v
		}
	}
	assert.Greater(t, lit, darkest, "entrance lights must rise above the ambient floor")
}

func TestUpdateLightingLeaksThroughTransitions(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.AddZLevel(-1))
	require.NoError(t, w.AddTransition(0, -1, 10, 10))

	require.NoError(t, w.SetTime(12, 0))
	w.UpdateLighting()

	below, err := w.Level(-1)
	require.NoError(t, err)

	at := below.Light.Combined().At(10, 10)
	away := below.Light.Combined().At(20, 20)
	assert.Greater(t, at, away, "light must pour down through the opening")
}

func TestTimeControls(t *testing.T) {
	w := newTestWorld(t)

	require.NoError(t, w.SetTime(23, 30))
	assert.ErrorIs(t, w.SetTime(24, 0), core.ErrInvalidConfig)
	assert.ErrorIs(t, w.SetTime(12, 60), core.ErrInvalidConfig)

	w.AdvanceTime(45)
	hour, minute, day := w.CurrentTime()
	assert.Equal(t, 0, hour)
	assert.Equal(t, 15, minute)
	assert.Equal(t, 1, day)
}

func TestDayNightAffectsLightLevels(t *testing.T) {
	w := newTestWorld(t)
	w.GenerateTerrain(42)

	require.NoError(t, w.SetTime(12, 0))
	w.UpdateLighting()
	noon, err := w.LightLevel(24, 24)
	require.NoError(t, err)

	require.NoError(t, w.SetTime(0, 0))
	w.Clock().MoonPhase = 4
	w.UpdateLighting()
	midnight, err := w.LightLevel(24, 24)
	require.NoError(t, err)

	assert.Greater(t, noon, midnight)
}

func TestLightLevelAndTerrainAtBounds(t *testing.T) {
	w := newTestWorld(t)

	_, err := w.LightLevel(-1, 0)
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
	_, err = w.LightLevel(48, 0)
	assert.ErrorIs(t, err, core.ErrOutOfBounds)

	_, err = w.TerrainAt(0, 48)
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
}

func TestGenerateLevelsParallel(t *testing.T) {
	w := newTestWorld(t)

	require.NoError(t, w.GenerateLevels(map[int]int64{0: 42, 1: 43, 2: 44}))

	sequential := newTestWorld(t)
	sequential.GenerateTerrain(42)

	level0, err := w.Level(0)
	require.NoError(t, err)
	assert.Equal(t, sequential.CurrentLevel().Tiles, level0.Tiles,
		"parallel generation must match the sequential result")

	level1, err := w.Level(1)
	require.NoError(t, err)
	level2, err := w.Level(2)
	require.NoError(t, err)
	assert.NotEqual(t, level1.Tiles, level2.Tiles)
}

func TestConfigLoad(t *testing.T) {
	dir := t.TempDir()

	// A missing file falls back to defaults.
	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(dir, "island.yaml")
	data := "width: 96\nheight: 80\nseed: 7\ncave:\n  initial_fill: 0.5\nbuildings:\n  count: 9\n  min_size: 8\n  max_attempts: 100\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 96, cfg.Width)
	assert.Equal(t, 80, cfg.Height)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.InDelta(t, 0.5, cfg.Cave.InitialFill, 1e-9)
	assert.Equal(t, 9, cfg.Buildings.Count)
	// Untouched sections keep their defaults.
	assert.Equal(t, terrain.DefaultParams().Octaves, cfg.Terrain.Octaves)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: 1\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}
