package diagram

import (
	"math"
	"time"
)

// Animation timings in microseconds.
const (
	FlipDuration  uint64 = 220_000
	TweenDuration uint64 = 300_000
	PulsePeriod   uint64 = 1_000_000

	flipMinScale = 0.95
)

// EaseInOutCubic maps t in [0,1] onto the standard ease-in-out cubic curve.
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Anim is a one-shot animation with its own start timestamp.
type Anim struct {
	Start    uint64
	Duration uint64
	Active   bool
}

// Begin (re)starts the animation at now.
func (a *Anim) Begin(now uint64) {
	a.Start = now
	a.Active = true
}

// Progress returns the linear progress at now and deactivates the animation once it
// reaches 1. An inactive animation reports 1.
func (a *Anim) Progress(now uint64) float64 {
	if !a.Active {
		return 1
	}
	if a.Duration == 0 {
		a.Active = false
		return 1
	}
	if now < a.Start {
		return 0
	}
	t := float64(now-a.Start) / float64(a.Duration)
	if t >= 1 {
		a.Active = false
		return 1
	}
	return t
}

// Clock supplies a monotonic timestamp in microseconds.
type Clock interface {
	NowMicros() uint64
}

var processStart = time.Now()

// MonotonicClock reads time.Since a fixed process start.
type MonotonicClock struct{}

func (MonotonicClock) NowMicros() uint64 {
	return uint64(time.Since(processStart).Microseconds())
}

// flipScale maps eased flip progress to the 1 -> 0.95 -> 1 dip.
func flipScale(t float64) float64 {
	e := EaseInOutCubic(t)
	if e < 0.5 {
		return lerp(1, flipMinScale, e*2)
	}
	return lerp(flipMinScale, 1, (e-0.5)*2)
}

func pulsePhase(now, start uint64) float64 {
	if now < start {
		return 0
	}
	return float64((now-start)%PulsePeriod) / float64(PulsePeriod)
}

func pulseWave(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}
