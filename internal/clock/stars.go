package clock

import (
	"math"

	"isle-sim/internal/core"
)

// Star is a normalized sky position in [0,1]² with a brightness in (0,1].
type Star struct {
	X, Y       float64
	Brightness float64
}

// StarPositions derives the night sky for the current day: background stars
// plus constellation patterns laid out on jittered rings. The result is a
// pure function of StarSeed and Day and is re-derived identically on every
// call. During daylight hours it returns nil.
func (s *System) StarPositions() []Star {
	if s.Hour >= SunriseHour && s.Hour < SunsetHour {
		return nil
	}

	rng := core.NewRNG(s.StarSeed + int64(s.Day))
	stars := make([]Star, 0, s.starCount+s.constellationCount*7)

	for i := 0; i < s.starCount; i++ {
		stars = append(stars, Star{
			X:          rng.Float64(),
			Y:          rng.Float64(),
			Brightness: rng.Range(0.1, 1.0),
		})
	}

	for i := 0; i < s.constellationCount; i++ {
		size := rng.Between(4, 7)
		cx := rng.Range(0.1, 0.9)
		cy := rng.Range(0.1, 0.9)
		for j := 0; j < size; j++ {
			angle := float64(j)*(2*math.Pi/float64(size)) + rng.Range(0, 0.5)
			distance := rng.Range(0.02, 0.1)
			stars = append(stars, Star{
				X:          cx + math.Cos(angle)*distance,
				Y:          cy + math.Sin(angle)*distance,
				Brightness: rng.Range(0.6, 1.0),
			})
		}
	}

	return stars
}
