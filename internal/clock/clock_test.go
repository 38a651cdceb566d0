package clock

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isle-sim/internal/core"
)

func newTestClock(seed int64) *System {
	return New(core.NewRNG(seed))
}

func TestAdvanceRollsOverHoursAndDays(t *testing.T) {
	s := newTestClock(1)
	s.SetTime(23, 30)

	s.Advance(45)

	assert.Equal(t, 0, s.Hour)
	assert.Equal(t, 15, s.Minute)
	assert.Equal(t, 1, s.Day)
}

func TestAdvanceAcrossMultipleDays(t *testing.T) {
	s := newTestClock(1)
	s.SetTime(0, 0)

	s.Advance(3 * 24 * 60)

	assert.Equal(t, 0, s.Hour)
	assert.Equal(t, 0, s.Minute)
	assert.Equal(t, 3, s.Day)
}

func TestAdvanceIgnoresNonPositiveMinutes(t *testing.T) {
	s := newTestClock(1)
	s.SetTime(10, 30)

	s.Advance(0)
	s.Advance(-5)

	assert.Equal(t, 10, s.Hour)
	assert.Equal(t, 30, s.Minute)
	assert.Equal(t, 0, s.Day)
}

func TestMoonPhaseStepsEveryThreeDays(t *testing.T) {
	s := newTestClock(1)
	require.Equal(t, 0, s.MoonPhase)

	s.Advance(2 * 24 * 60)
	assert.Equal(t, 0, s.MoonPhase, "phase must hold for the first two days")

	s.Advance(24 * 60)
	assert.Equal(t, 1, s.MoonPhase, "phase must step on day three")
}

func TestMoonPhaseFullCycle(t *testing.T) {
	s := newTestClock(1)

	s.Advance(MoonCycleDays * 24 * 60)

	assert.Equal(t, 0, s.MoonPhase, "a full cycle must return to the full moon")
	assert.Equal(t, MoonCycleDays, s.Day)
}

func TestDaylightFactorCurve(t *testing.T) {
	s := newTestClock(1)

	s.SetTime(12, 0)
	assert.InDelta(t, 1.0, s.DaylightFactor(), 1e-9, "noon is full daylight")

	s.SetTime(SunriseHour, 0)
	assert.InDelta(t, 0.0, s.DaylightFactor(), 1e-9, "sunrise starts at zero")

	s.SetTime(9, 0)
	want := math.Sin(0.25 * math.Pi)
	assert.InDelta(t, want, s.DaylightFactor(), 1e-9)

	s.SetTime(0, 0)
	assert.Zero(t, s.DaylightFactor(), "midnight has no daylight")

	s.SetTime(SunsetHour, 0)
	assert.Zero(t, s.DaylightFactor(), "sunset and later has no daylight")
}

func TestMoonIlluminationPhases(t *testing.T) {
	s := newTestClock(1)

	s.SetTime(12, 0)
	assert.Zero(t, s.MoonIllumination(), "no moon light during the day")

	s.SetTime(0, 0)
	s.MoonPhase = 0
	assert.InDelta(t, 0.4, s.MoonIllumination(), 1e-9, "full moon at midnight peaks at 0.4")

	s.MoonPhase = PhaseCount / 2
	assert.Zero(t, s.MoonIllumination(), "new moon gives no light")

	s.MoonPhase = 2
	quarter := s.MoonIllumination()
	assert.Greater(t, quarter, 0.0)
	assert.Less(t, quarter, 0.4)
}

func TestMoonPhaseMirrorSymmetry(t *testing.T) {
	s := newTestClock(1)
	s.SetTime(0, 0)

	s.MoonPhase = 2
	waning := s.MoonIllumination()
	s.MoonPhase = PhaseCount - 2
	waxing := s.MoonIllumination()

	assert.InDelta(t, waning, waxing, 1e-9, "waxing and waning halves mirror each other")
}

func TestTransitionWeightsNormalized(t *testing.T) {
	for w := Weather(0); w < weatherCount; w++ {
		weights := TransitionWeights(w)

		total := 0.0
		for _, v := range weights {
			total += v
		}
		assert.InDelta(t, 1.0, total, 1e-9, "weights for %s must sum to one", w)

		for other, v := range weights {
			if Weather(other) == w {
				continue
			}
			assert.LessOrEqual(t, v, weights[w], "%s must favor persisting over switching to %s", w, Weather(other))
		}
	}
}

func TestWeatherEvolutionDeterministic(t *testing.T) {
	a := newTestClock(7)
	b := newTestClock(7)

	for i := 0; i < 200; i++ {
		a.Advance(90)
		b.Advance(90)
		require.Equal(t, a.Weather(), b.Weather(), "diverged at step %d", i)
	}
}

func TestWeatherEventuallyChanges(t *testing.T) {
	s := newTestClock(3)

	changed := false
	for i := 0; i < 2000 && !changed; i++ {
		s.Advance(60)
		if s.Weather() != Clear {
			changed = true
		}
	}
	assert.True(t, changed, "weather must not stay clear forever")
}

func TestSetWeatherCancelsTransition(t *testing.T) {
	s := newTestClock(1)
	s.transition = Stormy
	s.transitioning = true

	s.SetWeather(Foggy)

	assert.Equal(t, Foggy, s.Weather())
	assert.False(t, s.transitioning)
}

func TestWeatherLightModifiers(t *testing.T) {
	cases := []struct {
		weather Weather
		want    float64
	}{
		{Clear, 1.0},
		{PartlyCloudy, 0.8},
		{Cloudy, 0.6},
		{Foggy, 0.4},
		{Rainy, 0.5},
		{Stormy, 0.3},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, tc.weather.LightModifier(), 1e-9, "%s", tc.weather)
	}

	assert.True(t, Rainy.Wet())
	assert.True(t, Stormy.Wet())
	assert.False(t, Foggy.Wet())
}

func TestStarPositionsNilDuringDay(t *testing.T) {
	s := newTestClock(1)
	s.SetTime(12, 0)

	assert.Nil(t, s.StarPositions())
}

func TestStarPositionsDeterministicPerDay(t *testing.T) {
	s := newTestClock(1)
	s.SetTime(22, 0)

	first := s.StarPositions()
	second := s.StarPositions()
	require.NotEmpty(t, first)
	assert.Equal(t, first, second, "the same night must show the same sky")

	s.Day++
	assert.NotEqual(t, first, s.StarPositions(), "a new day rotates the sky")
	s.Day--
	assert.Equal(t, first, s.StarPositions())
}

func TestStarPositionsIncludeConstellations(t *testing.T) {
	s := newTestClock(1)
	s.SetTime(23, 0)

	stars := s.StarPositions()
	require.Greater(t, len(stars), s.starCount, "constellation stars come on top of the background")

	for _, star := range stars {
		assert.Greater(t, star.Brightness, 0.0)
		assert.LessOrEqual(t, star.Brightness, 1.0)
	}
}
