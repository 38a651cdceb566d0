package terrain

import "fmt"

// Type enumerates terrain classifications. Surface types are a fixed
// function of the normalized heightmap; the cave types are applied by the
// cave generator and take precedence over height-derived classification.
type Type uint8

const (
	Water Type = iota
	Beach
	Grass
	Rock
	Forest
	CaveWall
	CaveFloor
	CaveEntrance
)

func (t Type) String() string {
	switch t {
	case Water:
		return "water"
	case Beach:
		return "beach"
	case Grass:
		return "grass"
	case Rock:
		return "rock"
	case Forest:
		return "forest"
	case CaveWall:
		return "cave wall"
	case CaveFloor:
		return "cave floor"
	case CaveEntrance:
		return "cave entrance"
	default:
		return fmt.Sprintf("terrain(%d)", uint8(t))
	}
}

// Walkable reports whether entities can occupy the tile.
func (t Type) Walkable() bool {
	return t != Water && t != CaveWall
}

// Classification thresholds on the normalized heightmap. Values below
// WaterMax are water, and so on up to forest at RockMax and above.
const (
	WaterMax = 0.30
	BeachMax = 0.35
	GrassMax = 0.70
	RockMax  = 0.80
)

// Classify maps a normalized height to a surface terrain type using the
// fixed thresholds.
func Classify(height float64) Type {
	switch {
	case height < WaterMax:
		return Water
	case height < BeachMax:
		return Beach
	case height < GrassMax:
		return Grass
	case height < RockMax:
		return Rock
	default:
		return Forest
	}
}

// ClassifyUnderground maps a height to cave terrain: low cells are floor,
// the rest wall.
func ClassifyUnderground(height float64) Type {
	if height < WaterMax {
		return CaveFloor
	}
	return CaveWall
}
