package diagram

import (
	"image/color"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/soar/mapview/internal/controller"
)

func TestEaseInOutCubicAnchors(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
		{-1, 0},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseInOutCubic(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EaseInOutCubic(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestEaseInOutCubicProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("monotonic non-decreasing", prop.ForAll(
		func(a, b float64) bool {
			if a > b {
				a, b = b, a
			}
			return EaseInOutCubic(a) <= EaseInOutCubic(b)
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.Property("stays in [0,1]", prop.ForAll(
		func(x float64) bool {
			v := EaseInOutCubic(x)
			return v >= 0 && v <= 1
		},
		gen.Float64Range(-2, 3),
	))

	properties.Property("symmetric around the midpoint", prop.ForAll(
		func(x float64) bool {
			return math.Abs(EaseInOutCubic(x)+EaseInOutCubic(1-x)-1) < 1e-9
		},
		gen.Float64Range(0, 1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestEaseInOutCubicContinuousAtHalf(t *testing.T) {
	const eps = 1e-9
	below := EaseInOutCubic(0.5 - eps)
	above := EaseInOutCubic(0.5 + eps)
	if math.Abs(above-below) > 1e-6 {
		t.Errorf("jump at 0.5: %v -> %v", below, above)
	}
}

func TestAnimTerminalSnap(t *testing.T) {
	a := Anim{Duration: FlipDuration}
	a.Begin(1000)
	if p := a.Progress(1000 + FlipDuration/2); p != 0.5 || !a.Active {
		t.Fatalf("mid progress = %v active=%v", p, a.Active)
	}
	if p := a.Progress(1000 + FlipDuration + 1); p != 1 || a.Active {
		t.Errorf("terminal progress = %v active=%v, want 1 inactive", p, a.Active)
	}
	if p := a.Progress(1 << 40); p != 1 {
		t.Errorf("stale progress = %v", p)
	}
}

func TestFlipScale(t *testing.T) {
	st := NewState(0)
	if st.FlipScale() != 1 {
		t.Fatalf("idle scale = %v", st.FlipScale())
	}
	st.StartFlip(0)
	st.Update(FlipDuration / 2)
	if s := st.FlipScale(); math.Abs(s-flipMinScale) > 1e-9 {
		t.Errorf("mid-flip scale = %v, want %v", s, flipMinScale)
	}
	st.Update(FlipDuration/2 + FlipDuration/4)
	if s := st.FlipScale(); s <= flipMinScale || s >= 1 {
		t.Errorf("late flip scale = %v", s)
	}
	st.Update(FlipDuration + 1)
	if st.Flip.Active || st.FlipScale() != 1 {
		t.Errorf("finished flip: active=%v scale=%v", st.Flip.Active, st.FlipScale())
	}
}

func TestPulsePhase(t *testing.T) {
	st := NewState(5_000)
	st.Update(5_000 + 250_000)
	if p := st.PulsePhase(); math.Abs(p-0.25) > 1e-12 {
		t.Errorf("phase = %v, want 0.25", p)
	}
	if v := st.Pulse(); math.Abs(v-1) > 1e-9 {
		t.Errorf("pulse = %v, want 1", v)
	}
	st.Update(5_000 + 3*PulsePeriod + 500_000)
	if p := st.PulsePhase(); math.Abs(p-0.5) > 1e-12 {
		t.Errorf("wrapped phase = %v, want 0.5", p)
	}
}

func TestPresetChangeMidPulse(t *testing.T) {
	st := NewState(0)
	st.Update(400_000)
	phase := st.PulsePhase()
	pulseStart := st.PulseStart

	if !st.SetPreset(controller.Map1, 400_000) {
		t.Fatal("SetPreset reported no change")
	}
	st.Update(400_000)

	if st.PulseStart != pulseStart || st.PulsePhase() != phase {
		t.Errorf("pulse restarted: start %d -> %d, phase %v -> %v", pulseStart, st.PulseStart, phase, st.PulsePhase())
	}
	if st.Flip.Active {
		t.Error("preset change started a flip")
	}
	if !st.Tween.Active || st.Tween.Start != 400_000 || st.TweenProgress() != 0 {
		t.Errorf("tween = %+v progress %v", st.Tween, st.TweenProgress())
	}

	st.Update(400_000 + TweenDuration + 1)
	if st.Tween.Active || st.TweenProgress() != 1 {
		t.Errorf("tween did not finish: %+v", st.Tween)
	}
	if got, want := st.AccentColor(AccentPalette), PresetAccent(AccentPalette, controller.Map1); got != want {
		t.Errorf("accent = %v, want %v", got, want)
	}
}

func TestSetPresetSameIsNoop(t *testing.T) {
	st := NewState(0)
	if st.SetPreset(controller.Map0, 10) {
		t.Error("selecting the current preset reported a change")
	}
	if st.Tween.Active {
		t.Error("tween started for an unchanged preset")
	}
}

func TestAccentColorMidTween(t *testing.T) {
	palette := []color.RGBA{{0, 0, 0, 255}, {200, 100, 50, 255}}
	st := NewState(0)
	st.SetPreset(controller.Map1, 0)
	st.Update(TweenDuration / 2)
	if got := st.AccentColor(palette); got != (color.RGBA{100, 50, 25, 255}) {
		t.Errorf("mid-tween accent = %v", got)
	}
}

func TestPresetChangeMidTweenKeepsAccent(t *testing.T) {
	st := NewState(0)
	st.SetPreset(controller.Map1, 0)
	at := TweenDuration * 9 / 10
	st.Update(at)
	before := st.AccentColor(AccentPalette)

	st.SetPreset(controller.Map2, at+1)
	st.Update(at + 1)
	after := st.AccentColor(AccentPalette)
	if d := colorDistance(before, after); d > 3 {
		t.Errorf("accent jumped from %v to %v", before, after)
	}

	st.Update(at + 1 + TweenDuration)
	if got, want := st.AccentColor(AccentPalette), PresetAccent(AccentPalette, controller.Map2); got != want {
		t.Errorf("final accent = %v, want %v", got, want)
	}
}

func TestRepeatedPresetChangesKeepAccent(t *testing.T) {
	st := NewState(0)
	var now uint64
	last := st.AccentColor(AccentPalette)
	for _, id := range []controller.MapID{controller.Map1, controller.Map2, controller.Map3, controller.Map4} {
		st.SetPreset(id, now)
		st.Update(now)
		if got := st.AccentColor(AccentPalette); colorDistance(got, last) > 3 {
			t.Fatalf("switching to %d jumped from %v to %v", id, last, got)
		}
		now += TweenDuration / 2
		st.Update(now)
		last = st.AccentColor(AccentPalette)
	}
}

func TestPresetChangeAfterTweenStartsFromPrevious(t *testing.T) {
	palette := []color.RGBA{{0, 0, 0, 255}, {200, 100, 50, 255}, {100, 100, 100, 255}}
	st := NewState(0)
	st.SetPreset(controller.Map1, 0)
	st.Update(TweenDuration)
	st.AccentColor(palette)

	st.SetPreset(controller.Map2, TweenDuration+1)
	st.Update(TweenDuration + 1)
	if got := st.AccentColor(palette); got != palette[1] {
		t.Errorf("tween start = %v, want %v", got, palette[1])
	}
}

func colorDistance(a, b color.RGBA) int {
	d := 0
	for _, v := range [][2]uint8{{a.R, b.R}, {a.G, b.G}, {a.B, b.B}} {
		if v[0] > v[1] {
			d = max(d, int(v[0]-v[1]))
		} else {
			d = max(d, int(v[1]-v[0]))
		}
	}
	return d
}

func TestSetViewFlipsOnlyOnChange(t *testing.T) {
	st := NewState(0)
	if st.SetView(ViewFront, 10) || st.Flip.Active {
		t.Error("same view started a flip")
	}
	if !st.SetView(ViewBack, 10) || !st.Flip.Active || st.Flip.Start != 10 {
		t.Errorf("view change flip = %+v", st.Flip)
	}
}
