// Package fps smooths frame durations into a frames-per-second reading.
package fps

import (
	"math"
	"strconv"
	"time"
)

// Window is the number of recent frame durations averaged by an Estimator.
const Window = 20

// MaxSample is the longest duration an Estimator stores. A full window of
// them still sums within an int64.
const MaxSample = time.Duration(math.MaxInt64 / Window)

// Estimator keeps the most recent Window frame durations in a ring buffer.
// The zero value is ready to use.
type Estimator struct {
	buf  [Window]time.Duration
	head int // index of the most recent sample
	n    int
	sum  time.Duration
}

// Add records a frame duration, evicting the oldest sample once the window is
// full. Durations are clamped to [1ns, MaxSample].
func (e *Estimator) Add(d time.Duration) {
	d = max(time.Nanosecond, min(d, MaxSample))

	e.head = (e.head + 1) % Window
	if e.n == Window {
		e.sum -= e.buf[e.head]
	} else {
		e.n++
	}
	e.buf[e.head] = d
	e.sum += d
}

// Len reports how many samples are in the window.
func (e *Estimator) Len() int { return e.n }

// Rate returns the average frames per second over the window. ok is false
// while the window is empty.
func (e *Estimator) Rate() (rate float64, ok bool) {
	if e.n == 0 {
		return 0, false
	}
	mean := float64(e.sum.Nanoseconds()) / float64(e.n)
	return 1e9 / mean, true
}

// Samples returns the window, most recent first.
func (e *Estimator) Samples() []time.Duration {
	out := make([]time.Duration, e.n)
	for i := 0; i < e.n; i++ {
		out[i] = e.buf[(e.head-i+Window)%Window]
	}
	return out
}

// Reset empties the window.
func (e *Estimator) Reset() {
	*e = Estimator{}
}

// Label formats a rate the way the on-screen counter shows it: the floor of
// the value as a whole number.
func Label(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return "0"
	}
	return strconv.FormatInt(int64(math.Floor(rate)), 10)
}
