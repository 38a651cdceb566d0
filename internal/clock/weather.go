package clock

import "fmt"

// Weather enumerates sky conditions. Each condition scales ambient light
// and, when wet, raises water reflectivity.
type Weather uint8

const (
	Clear Weather = iota
	PartlyCloudy
	Cloudy
	Foggy
	Rainy
	Stormy

	weatherCount
)

func (w Weather) String() string {
	switch w {
	case Clear:
		return "clear"
	case PartlyCloudy:
		return "partly cloudy"
	case Cloudy:
		return "cloudy"
	case Foggy:
		return "foggy"
	case Rainy:
		return "rainy"
	case Stormy:
		return "stormy"
	default:
		return fmt.Sprintf("weather(%d)", uint8(w))
	}
}

// Wet reports whether the condition involves precipitation.
func (w Weather) Wet() bool { return w == Rainy || w == Stormy }

// LightModifier returns the ambient light scale for the condition, from
// clear skies down to storms.
func (w Weather) LightModifier() float64 {
	switch w {
	case Clear:
		return 1.0
	case PartlyCloudy:
		return 0.8
	case Cloudy:
		return 0.6
	case Foggy:
		return 0.4
	case Rainy:
		return 0.5
	case Stormy:
		return 0.3
	default:
		return 1.0
	}
}

// Weather returns the current condition. While a transition is pending the
// old condition still holds.
func (s *System) Weather() Weather { return s.weather }

// SetWeather forces a condition, cancelling any pending transition.
func (s *System) SetWeather(w Weather) {
	s.weather = w
	s.transitioning = false
}

// updateWeather burns down the current duration budget and, when it runs
// out, either completes a pending transition or rolls for a new one.
func (s *System) updateWeather(elapsedHours float64) {
	s.durationHours -= elapsedHours

	if s.transitioning {
		if s.durationHours <= 0 {
			s.weather = s.transition
			s.transitioning = false
			s.durationHours = s.rng.Range(4, 12)
		}
		return
	}

	if s.durationHours <= 0 {
		if s.rng.Chance(0.3) {
			s.selectNewWeather()
		} else {
			s.durationHours = s.rng.Range(2, 8)
		}
	}
}

func (s *System) selectNewWeather() {
	weights := TransitionWeights(s.weather)
	roll := s.rng.Float64()

	next := s.weather
	cumulative := 0.0
	for w := Weather(0); w < weatherCount; w++ {
		cumulative += weights[w]
		if roll < cumulative {
			next = w
			break
		}
	}

	s.transition = next
	s.transitioning = true
	s.durationHours = s.rng.Range(0.5, 2)
}

// TransitionWeights returns the normalized next-condition distribution for
// the given condition. Weather mostly persists; the remaining mass favors
// neighbors in severity (clear drifts to partly cloudy, storms ease into
// rain). The returned weights sum to 1.
func TransitionWeights(current Weather) [weatherCount]float64 {
	var weights [weatherCount]float64
	weights[current] = 0.6

	switch current {
	case Clear:
		weights[PartlyCloudy] = 0.3
		weights[Foggy] = 0.1
	case PartlyCloudy:
		weights[Clear] = 0.2
		weights[Cloudy] = 0.2
	case Cloudy:
		weights[PartlyCloudy] = 0.1
		weights[Rainy] = 0.2
		weights[Foggy] = 0.1
	case Foggy:
		weights[Clear] = 0.2
		weights[PartlyCloudy] = 0.2
	case Rainy:
		weights[Cloudy] = 0.2
		weights[Stormy] = 0.2
	case Stormy:
		weights[Rainy] = 0.4
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}
