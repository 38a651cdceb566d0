package clock

import (
	"math"

	"isle-sim/internal/core"
)

// Moon cycle constants. One full cycle spans MoonCycleDays days across
// PhaseCount phases, so the phase steps once every daysPerPhase days.
const (
	PhaseCount    = 8
	MoonCycleDays = 24
	daysPerPhase  = MoonCycleDays / PhaseCount
)

// Daylight window. The daylight factor is zero outside [SunriseHour,
// SunsetHour) and follows a sine ramp inside it.
const (
	SunriseHour = 6
	SunsetHour  = 18
)

// System tracks time of day, calendar day, moon phase and weather. All
// randomness (weather durations and transitions) flows through the RNG
// handed to New, so two systems with equal seeds evolve identically.
type System struct {
	Hour   int
	Minute int
	Day    int

	// MoonPhase is in [0, PhaseCount). Phase 0 is the full moon.
	MoonPhase int

	// StarSeed anchors the deterministic star field.
	StarSeed int64

	weather       Weather
	transition    Weather
	transitioning bool
	durationHours float64

	starCount          int
	constellationCount int

	rng *core.RNG
}

// New returns a clock starting at noon on day zero under clear skies.
func New(rng *core.RNG) *System {
	return &System{
		Hour:               12,
		StarSeed:           42,
		weather:            Clear,
		durationHours:      rng.Range(4, 12),
		starCount:          100,
		constellationCount: 12,
		rng:                rng,
	}
}

// SetTime moves the clock to the given hour and minute without advancing
// the day, moon phase or weather.
func (s *System) SetTime(hour, minute int) {
	s.Hour = hour
	s.Minute = minute
}

// Advance moves the clock forward by the given number of minutes, rolling
// over hours and days, stepping the moon phase and updating the weather.
func (s *System) Advance(minutes int) {
	if minutes <= 0 {
		return
	}
	total := s.Hour*60 + s.Minute + minutes
	days := total / (24 * 60)
	total %= 24 * 60

	s.Hour = total / 60
	s.Minute = total % 60

	for i := 0; i < days; i++ {
		s.advanceDay()
	}

	s.updateWeather(float64(minutes) / 60)
}

func (s *System) advanceDay() {
	s.Day++
	if s.Day%daysPerPhase == 0 {
		s.MoonPhase = (s.MoonPhase + 1) % PhaseCount
	}
}

// DaylightFactor returns the sun contribution in [0,1]: zero at night and a
// sine ramp peaking at noon, so there is no lighting step at sunrise or
// sunset.
func (s *System) DaylightFactor() float64 {
	if s.Hour >= SunsetHour || s.Hour < SunriseHour {
		return 0
	}
	hourOfDay := float64(s.Hour) + float64(s.Minute)/60
	progress := (hourOfDay - SunriseHour) / (SunsetHour - SunriseHour)
	return math.Sin(progress * math.Pi)
}

// MoonIllumination returns the moon contribution in [0,1]. It is zero
// during the day and otherwise combines the phase curve (full moon bright,
// new moon dark) with the moon's position in the night sky.
func (s *System) MoonIllumination() float64 {
	if s.Hour >= SunriseHour && s.Hour < SunsetHour {
		return 0
	}

	// Phase 0 is full, phase 4 is new; mirror the back half of the cycle.
	var phaseFactor float64
	if s.MoonPhase <= PhaseCount/2 {
		phaseFactor = 1 - float64(s.MoonPhase)/float64(PhaseCount/2)
	} else {
		phaseFactor = 1 - float64(PhaseCount-s.MoonPhase)/float64(PhaseCount/2)
	}
	// Boost contrast between full and new moon.
	phaseFactor = math.Sqrt(phaseFactor)

	// Position in the night sky: 0 at dusk and dawn, 1 at midnight.
	hourOfDay := float64(s.Hour) + float64(s.Minute)/60
	var nightProgress float64
	if hourOfDay < SunriseHour {
		nightProgress = (SunriseHour - hourOfDay) / SunriseHour
	} else {
		nightProgress = (hourOfDay - SunsetHour) / (24 - SunsetHour)
	}
	positionFactor := math.Sin(nightProgress * math.Pi)
	if hourOfDay == 0 {
		positionFactor = 1
	}

	return 0.4 * phaseFactor * positionFactor
}
