package world

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"isle-sim/internal/core"
	"isle-sim/internal/structure"
	"isle-sim/internal/terrain"
)

// Cave walls read as high ground and floors as low ground so the shared
// heightmap queries stay meaningful underground.
const (
	caveWallHeight  = 0.8
	caveFloorHeight = 0.2
)

// ApplyCaveLayout overwrites the current level's terrain with a cave wall
// mask (true = wall). The layout must match the map dimensions.
func (w *World) ApplyCaveLayout(walls *core.BoolGrid) error {
	if walls.W != w.width || walls.H != w.height {
		return fmt.Errorf("%w: cave layout %dx%d does not match %dx%d map",
			core.ErrInvalidConfig, walls.W, walls.H, w.width, w.height)
	}
	w.applyCaveTo(w.CurrentLevel(), walls)
	return nil
}

func (w *World) applyCaveTo(level *Level, walls *core.BoolGrid) {
	if level.Heightmap == nil {
		level.Heightmap = core.NewFloatGrid(w.width, w.height)
	}
	heights := level.Heightmap.Values()
	for i, wall := range walls.Values() {
		if wall {
			level.Tiles[i] = terrain.CaveWall
			heights[i] = caveWallHeight
		} else {
			level.Tiles[i] = terrain.CaveFloor
			heights[i] = caveFloorHeight
		}
	}
	level.Light.UpdateReflectivity(level.Tiles, w.clock.Weather())
}

// GenerateCaveEntrance places a cave entrance on the current level above a
// walkable underground tile and registers the transition both ways. The
// underground level one step down is created and carved with the same seed
// if it does not exist yet. It returns the entrance coordinates.
func (w *World) GenerateCaveEntrance(seed int64) (int, int, error) {
	surface := w.CurrentLevel()
	belowZ := w.currentZ - 1

	below, ok := w.levels[belowZ]
	if !ok {
		below = w.ensureLevel(belowZ)
	}
	if !hasCave(below) {
		walls, err := w.caveGen.Generate(w.width, w.height, seed)
		if err != nil {
			return 0, 0, err
		}
		w.applyCaveTo(below, walls)
	}

	// Entrance candidates: solid ground on the surface, open cave below.
	var candidates []int
	for i, t := range surface.Tiles {
		if t == terrain.Water || t == terrain.Beach || t == terrain.CaveEntrance {
			continue
		}
		if below.Tiles[i] != terrain.CaveFloor {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return 0, 0, fmt.Errorf("%w: no surface tile above a walkable cave tile", core.ErrExhausted)
	}

	rng := core.NewRNG(seed)
	idx := candidates[rng.IntN(len(candidates))]
	x, y := idx%w.width, idx/w.width

	surface.Tiles[idx] = terrain.CaveEntrance
	if err := w.AddTransition(w.currentZ, belowZ, x, y); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func hasCave(level *Level) bool {
	for _, t := range level.Tiles {
		if t == terrain.CaveWall || t == terrain.CaveFloor {
			return true
		}
	}
	return false
}

// GenerateBuildings lays out count buildings on buildable ground of the
// current level without placing them. Roughly half are multi-floor. Sites
// the search cannot place within the attempt budget are skipped rather
// than forced.
func (w *World) GenerateBuildings(count, minSize int, seed int64) ([]structure.Building, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: building count %d negative", core.ErrInvalidConfig, count)
	}
	if minSize < 3 {
		return nil, fmt.Errorf("%w: building min size %d, need at least 3", core.ErrInvalidConfig, minSize)
	}

	rng := core.NewRNG(seed)
	multiFloor := min(count/2+rng.Between(0, 1), count)

	placed := make([]structure.Rect, 0, count+len(w.buildings))
	for _, b := range w.buildings {
		if b.BaseZ == w.currentZ {
			placed = append(placed, b.Floors[0].Footprint)
		}
	}

	buildings := make([]structure.Building, 0, count)
	for i := 0; i < count; i++ {
		area, err := w.structGen.FindBuildableArea(w, minSize, minSize, w.cfg.Buildings.MaxAttempts, placed, rng)
		if err != nil {
			if errors.Is(err, core.ErrExhausted) {
				continue
			}
			return nil, err
		}

		kind := structure.RandomKind(rng)
		buildingSeed := seed + int64(i)

		var building structure.Building
		if i < multiFloor {
			floors := rng.Between(2, 3)
			building, err = w.structGen.GenerateMultiFloor(area, floors, 3, kind, buildingSeed)
		} else {
			building, err = w.structGen.GenerateBuilding(area, 3, kind, buildingSeed)
		}
		if err != nil {
			return nil, err
		}

		buildings = append(buildings, building)
		placed = append(placed, area)
	}
	return buildings, nil
}

// AddBuildingsToMap generates buildings and installs them on the current
// level: upper floors get their z-levels created on demand and every
// stair/ladder is registered as a level transition at both endpoints.
func (w *World) AddBuildingsToMap(count int, seed int64) error {
	buildings, err := w.GenerateBuildings(count, w.cfg.Buildings.MinSize, seed)
	if err != nil {
		return err
	}

	baseZ := w.currentZ
	for _, building := range buildings {
		w.buildings = append(w.buildings, PlacedBuilding{Building: building, BaseZ: baseZ})

		for floor := 1; floor < len(building.Floors); floor++ {
			w.ensureLevel(baseZ + floor)
		}

		for _, conn := range building.Connections {
			fromZ := baseZ + conn.Floor
			toZ := baseZ + conn.TargetFloor
			if err := w.AddTransition(fromZ, toZ, conn.Position.X, conn.Position.Y); err != nil {
				return err
			}
			if err := w.AddTransition(toZ, fromZ, conn.TargetPosition.X, conn.TargetPosition.Y); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddArtificialLights pushes every placed building's point lights (rooms,
// stairs, entrances) into the light field of the level each floor sits on.
func (w *World) AddArtificialLights() {
	for i := range w.buildings {
		b := &w.buildings[i]
		for floor := range b.Floors {
			level, ok := w.levels[b.BaseZ+floor]
			if !ok {
				continue
			}
			for _, light := range b.Lights(floor) {
				level.Light.AddSource(light)
			}
		}
	}
}

// GenerateLevels synthesizes terrain for several z-levels concurrently.
// Levels are independent once created, so each goroutine touches only its
// own level. Missing levels are created up front.
func (w *World) GenerateLevels(seeds map[int]int64) error {
	type job struct {
		z     int
		seed  int64
		level *Level
	}

	jobs := make([]job, 0, len(seeds))
	for z, seed := range seeds {
		jobs = append(jobs, job{z: z, seed: seed, level: w.ensureLevel(z)})
	}

	var g errgroup.Group
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			j.level.Heightmap = w.terrainGen.Generate(j.seed)
			w.applyHeightmap(j.level, j.z)
			return nil
		})
	}
	return g.Wait()
}
