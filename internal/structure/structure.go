package structure

import (
	"fmt"

	"isle-sim/internal/core"
	"isle-sim/internal/terrain"
)

// Kind enumerates building archetypes. The archetype drives how eagerly
// the BSP splits (temples and storage halls keep large open rooms, shops
// and houses partition more) and whether floors connect by stair or
// ladder.
type Kind uint8

const (
	House Kind = iota
	Shop
	Temple
	Workshop
	Storage

	kindCount
)

func (k Kind) String() string {
	switch k {
	case House:
		return "house"
	case Shop:
		return "shop"
	case Temple:
		return "temple"
	case Workshop:
		return "workshop"
	case Storage:
		return "storage"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// splitChance returns the per-node BSP split probability for the archetype.
func (k Kind) splitChance() float64 {
	switch k {
	case House:
		return 0.6
	case Temple:
		return 0.7
	case Shop:
		return 0.75
	default:
		return 0.8
	}
}

// StairKind enumerates vertical connection flavors.
type StairKind uint8

const (
	StairUp StairKind = iota
	StairDown
	LadderUp
	LadderDown
)

func (s StairKind) String() string {
	switch s {
	case StairUp:
		return "stair up"
	case StairDown:
		return "stair down"
	case LadderUp:
		return "ladder up"
	case LadderDown:
		return "ladder down"
	default:
		return fmt.Sprintf("stair(%d)", uint8(s))
	}
}

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// FloorLayout describes one floor of a building. Footprint is a plain
// value field so a layout cannot exist without one, whatever floor it is.
type FloorLayout struct {
	Footprint Rect
	Rooms     []Rect
	// Corridors pair room indices that are connected.
	Corridors [][2]int
	// Tile placements derived from the partition: room perimeters, door
	// tiles where corridors meet room walls, windows on the outer shell.
	Walls   []Point
	Doors   []Point
	Windows []Point
}

// VerticalConnection links matching tiles on two adjacent floors.
type VerticalConnection struct {
	Kind           StairKind
	Floor          int
	Position       Point
	TargetFloor    int
	TargetPosition Point
}

// Building owns one FloorLayout per occupied z-level (index 0 is the
// ground floor), the ground entrance and the stairs/ladders between
// floors.
type Building struct {
	Kind        Kind
	Floors      []FloorLayout
	Entrance    Point
	Connections []VerticalConnection
}

// Terrain is the read-only world surface the generator builds against.
type Terrain interface {
	Size() (w, h int)
	TileAt(x, y int) terrain.Type
	HeightAt(x, y int) float64
}

// Buildable terrain must be reasonably flat: the height spread across a
// candidate footprint may not exceed this.
const maxHeightSpread = 0.25

// Generator places and lays out buildings on a map of fixed dimensions.
type Generator struct {
	width, height int
}

// NewGenerator returns a Generator for the given map dimensions.
func NewGenerator(width, height int) *Generator {
	return &Generator{width: width, height: height}
}

// GenerateFloor lays out a single floor inside the footprint: BSP
// partition, rooms inset in the leaves and a corridor chain connecting
// sibling rooms.
func (g *Generator) GenerateFloor(footprint Rect, minRoomSize int, kind Kind, seed int64) (FloorLayout, error) {
	if err := validateFootprint(footprint, minRoomSize); err != nil {
		return FloorLayout{}, err
	}

	rng := core.NewRNG(seed)
	return g.layoutFloor(footprint, minRoomSize, kind, rng), nil
}

func (g *Generator) layoutFloor(footprint Rect, minRoomSize int, kind Kind, rng *core.RNG) FloorLayout {
	leaves := partition(footprint, minRoomSize, kind.splitChance(), rng)

	rooms := make([]Rect, 0, len(leaves))
	for _, leaf := range leaves {
		if room, ok := carveRoom(leaf, rng); ok {
			rooms = append(rooms, room)
		}
	}

	var corridors [][2]int
	if len(rooms) > 1 {
		for i := 0; i < len(rooms)-1; i++ {
			corridors = append(corridors, [2]int{i, i + 1})
		}
		// A redundant loop keeps large buildings from feeling like one
		// long hallway.
		if len(rooms) > 3 && rng.Chance(0.5) {
			corridors = append(corridors, [2]int{0, len(rooms) - 1})
		}
	}

	layout := FloorLayout{Footprint: footprint, Rooms: rooms, Corridors: corridors}
	layout.Walls = roomWalls(rooms)
	layout.Doors = corridorDoors(rooms, corridors)
	layout.Windows = shellWindows(footprint, rooms, rng)
	return layout
}

// roomWalls collects the perimeter tiles of every room, deduplicated.
func roomWalls(rooms []Rect) []Point {
	seen := make(map[Point]struct{})
	var walls []Point
	add := func(p Point) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		walls = append(walls, p)
	}

	for _, room := range rooms {
		for x := room.X; x < room.X+room.W; x++ {
			add(Point{X: x, Y: room.Y})
			add(Point{X: x, Y: room.Y + room.H - 1})
		}
		for y := room.Y; y < room.Y+room.H; y++ {
			add(Point{X: room.X, Y: y})
			add(Point{X: room.X + room.W - 1, Y: y})
		}
	}
	return walls
}

// corridorDoors places a door on each connected room's wall, at the
// perimeter tile nearest the partner room's center.
func corridorDoors(rooms []Rect, corridors [][2]int) []Point {
	var doors []Point
	for _, pair := range corridors {
		a, b := rooms[pair[0]], rooms[pair[1]]
		bx, by := b.Center()
		ax, ay := a.Center()
		doors = append(doors, nearestPerimeterPoint(a, bx, by), nearestPerimeterPoint(b, ax, ay))
	}
	return doors
}

// nearestPerimeterPoint returns the wall tile of room closest to (tx, ty),
// excluding corners so doors stay usable.
func nearestPerimeterPoint(room Rect, tx, ty int) Point {
	cx, _ := room.Center()
	best := Point{X: cx, Y: room.Y}
	bestDist := 1 << 30

	consider := func(p Point) {
		d := abs(p.X-tx) + abs(p.Y-ty)
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	for x := room.X + 1; x < room.X+room.W-1; x++ {
		consider(Point{X: x, Y: room.Y})
		consider(Point{X: x, Y: room.Y + room.H - 1})
	}
	for y := room.Y + 1; y < room.Y+room.H-1; y++ {
		consider(Point{X: room.X, Y: y})
		consider(Point{X: room.X + room.W - 1, Y: y})
	}
	return best
}

// shellWindows scatters windows along room walls that sit on the building
// shell.
func shellWindows(footprint Rect, rooms []Rect, rng *core.RNG) []Point {
	var windows []Point
	onShell := func(p Point) bool {
		return p.X == footprint.X || p.X == footprint.X+footprint.W-1 ||
			p.Y == footprint.Y || p.Y == footprint.Y+footprint.H-1
	}
	for _, p := range roomWalls(rooms) {
		if onShell(p) && rng.Chance(0.3) {
			windows = append(windows, p)
		}
	}
	return windows
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RandomKind draws a building archetype from the RNG.
func RandomKind(rng *core.RNG) Kind {
	return Kind(rng.IntN(int(kindCount)))
}

// GenerateBuilding lays out a single-floor building with an entrance on a
// random outer wall of a random room.
func (g *Generator) GenerateBuilding(footprint Rect, minRoomSize int, kind Kind, seed int64) (Building, error) {
	if err := validateFootprint(footprint, minRoomSize); err != nil {
		return Building{}, err
	}

	rng := core.NewRNG(seed)
	ground := g.layoutFloor(footprint, minRoomSize, kind, rng)

	return Building{
		Kind:     kind,
		Floors:   []FloorLayout{ground},
		Entrance: pickEntrance(ground, rng),
	}, nil
}

// pickEntrance chooses a tile on a random wall of a random room, falling
// back to the footprint center when the floor has no rooms.
func pickEntrance(floor FloorLayout, rng *core.RNG) Point {
	if len(floor.Rooms) == 0 {
		cx, cy := floor.Footprint.Center()
		return Point{X: cx, Y: cy}
	}

	room := floor.Rooms[rng.IntN(len(floor.Rooms))]
	switch rng.IntN(4) {
	case 0: // north
		return Point{X: room.X + rng.IntN(room.W), Y: room.Y}
	case 1: // east
		return Point{X: room.X + room.W - 1, Y: room.Y + rng.IntN(room.H)}
	case 2: // south
		return Point{X: room.X + rng.IntN(room.W), Y: room.Y + room.H - 1}
	default: // west
		return Point{X: room.X, Y: room.Y + rng.IntN(room.H)}
	}
}

// GenerateMultiFloor lays out a building with the given number of floors.
// Upper floors of houses and shops may shrink up to 30%, centered inside
// the ground footprint; every floor records its own footprint and every
// non-ground footprint stays inside the ground one. Adjacent floors are
// linked by stairs or ladders at tiles that fall inside a room on both
// floors.
func (g *Generator) GenerateMultiFloor(footprint Rect, floors, minRoomSize int, kind Kind, seed int64) (Building, error) {
	if floors < 1 {
		return Building{}, fmt.Errorf("%w: floor count %d, need at least 1", core.ErrInvalidConfig, floors)
	}
	if floors > 3 {
		return Building{}, fmt.Errorf("%w: floor count %d exceeds 3", core.ErrInvalidConfig, floors)
	}

	building, err := g.GenerateBuilding(footprint, minRoomSize, kind, seed)
	if err != nil {
		return Building{}, err
	}

	rng := core.NewRNG(seed)

	for floor := 1; floor < floors; floor++ {
		floorSeed := seed + int64(floor)*1000
		fp := footprint

		if (kind == House || kind == Shop) && rng.Chance(0.7) {
			reduction := rng.Range(0, 0.3)
			fp.W = max(minRoomSize*3, int(float64(footprint.W)*(1-reduction)))
			fp.H = max(minRoomSize*3, int(float64(footprint.H)*(1-reduction)))
			if fp.W > footprint.W {
				fp.W = footprint.W
			}
			if fp.H > footprint.H {
				fp.H = footprint.H
			}
			fp.X = footprint.X + (footprint.W-fp.W)/2
			fp.Y = footprint.Y + (footprint.H-fp.H)/2
		}

		layout, err := g.GenerateFloor(fp, minRoomSize, kind, floorSeed)
		if err != nil {
			return Building{}, err
		}
		building.Floors = append(building.Floors, layout)
	}

	building.Connections = verticalConnections(building.Kind, building.Floors, rng)
	return building, nil
}

// verticalConnections places one stair or ladder between each pair of
// adjacent floors, at positions at least one tile inside a room on each
// floor so the connection never lands in a wall.
func verticalConnections(kind Kind, floors []FloorLayout, rng *core.RNG) []VerticalConnection {
	var connections []VerticalConnection

	for floor := 0; floor < len(floors)-1; floor++ {
		lower := floors[floor].Rooms
		upper := floors[floor+1].Rooms
		if len(lower) == 0 || len(upper) == 0 {
			continue
		}

		lowerRoom := lower[rng.IntN(len(lower))]
		upperRoom := upper[rng.IntN(len(upper))]

		position := interiorPoint(lowerRoom, rng)
		target := interiorPoint(upperRoom, rng)

		stair := StairUp
		if (kind == Storage || kind == Workshop) && rng.Chance(0.7) {
			stair = LadderUp
		}

		connections = append(connections, VerticalConnection{
			Kind:           stair,
			Floor:          floor,
			Position:       position,
			TargetFloor:    floor + 1,
			TargetPosition: target,
		})
	}
	return connections
}

// interiorPoint picks a tile at least one step inside the room walls.
func interiorPoint(room Rect, rng *core.RNG) Point {
	x := room.X + 1
	y := room.Y + 1
	if room.W > 2 {
		x = room.X + rng.Between(1, room.W-2)
	}
	if room.H > 2 {
		y = room.Y + rng.Between(1, room.H-2)
	}
	return Point{X: x, Y: y}
}

func validateFootprint(footprint Rect, minRoomSize int) error {
	if footprint.W <= 0 || footprint.H <= 0 {
		return fmt.Errorf("%w: footprint %+v has no area", core.ErrInvalidConfig, footprint)
	}
	if minRoomSize < 1 {
		return fmt.Errorf("%w: min room size %d, need at least 1", core.ErrInvalidConfig, minRoomSize)
	}
	if minRoomSize > footprint.W || minRoomSize > footprint.H {
		return fmt.Errorf("%w: min room size %d exceeds footprint %dx%d",
			core.ErrInvalidConfig, minRoomSize, footprint.W, footprint.H)
	}
	return nil
}

// IsBuildable reports whether the rectangle sits fully on buildable
// ground: inside the map with a margin, no water or rock, reasonably flat
// and clear of already placed footprints.
func (g *Generator) IsBuildable(t Terrain, r Rect, placed []Rect) bool {
	w, h := t.Size()
	if r.X < 0 || r.Y < 0 || r.X+r.W >= w || r.Y+r.H >= h {
		return false
	}

	for _, other := range placed {
		if r.Overlaps(other) {
			return false
		}
	}

	minHeight, maxHeight := 1.0, 0.0
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			switch t.TileAt(x, y) {
			case terrain.Water, terrain.Rock:
				return false
			}
			height := t.HeightAt(x, y)
			if height < minHeight {
				minHeight = height
			}
			if height > maxHeight {
				maxHeight = height
			}
		}
	}
	return maxHeight-minHeight <= maxHeightSpread
}

// FindBuildableArea tries up to maxAttempts random candidate rectangles
// with sides in [minW, minW+10] (capped to a quarter of the map) and
// returns the first buildable one. Exhaustion returns ErrExhausted rather
// than an invalid placement.
func (g *Generator) FindBuildableArea(t Terrain, minW, minH, maxAttempts int, placed []Rect, rng *core.RNG) (Rect, error) {
	if maxAttempts < 1 {
		return Rect{}, fmt.Errorf("%w: max attempts %d", core.ErrInvalidConfig, maxAttempts)
	}
	mapW, mapH := t.Size()
	if minW < 1 || minH < 1 || minW >= mapW || minH >= mapH {
		return Rect{}, fmt.Errorf("%w: building size %dx%d on %dx%d map", core.ErrInvalidConfig, minW, minH, mapW, mapH)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		w := rng.Between(minW, max(minW, min(minW+10, mapW/4)))
		h := rng.Between(minH, max(minH, min(minH+10, mapH/4)))
		if w >= mapW-1 || h >= mapH-1 {
			continue
		}
		x := rng.Between(0, mapW-w-2)
		y := rng.Between(0, mapH-h-2)

		candidate := Rect{X: x, Y: y, W: w, H: h}
		if g.IsBuildable(t, candidate, placed) {
			return candidate, nil
		}
	}
	return Rect{}, fmt.Errorf("%w: no buildable %dx%d area in %d attempts", core.ErrExhausted, minW, minH, maxAttempts)
}
