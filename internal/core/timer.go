package core

import "time"

// MinuteTicker converts wall-clock time into whole in-game minutes at a
// configurable rate. The viewer uses it to advance the world clock steadily
// regardless of frame rate.
type MinuteTicker struct {
	perMinute   time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewMinuteTicker constructs a ticker emitting the given number of in-game
// minutes per real second.
func NewMinuteTicker(minutesPerSecond int) *MinuteTicker {
	t := &MinuteTicker{}
	t.SetRate(minutesPerSecond)
	return t
}

// SetRate changes how many in-game minutes elapse per real second.
func (t *MinuteTicker) SetRate(minutesPerSecond int) {
	if minutesPerSecond <= 0 {
		minutesPerSecond = 1
	}
	t.perMinute = time.Second / time.Duration(minutesPerSecond)
}

// Tick returns the number of whole in-game minutes that elapsed since the
// previous call.
func (t *MinuteTicker) Tick() int {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
	}
	t.accumulator += now.Sub(t.last)
	t.last = now

	minutes := 0
	for t.accumulator >= t.perMinute {
		t.accumulator -= t.perMinute
		minutes++
	}
	return minutes
}
