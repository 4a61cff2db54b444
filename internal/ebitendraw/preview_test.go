package ebitendraw

import (
	"image/color"
	"testing"

	"github.com/soar/mapview/internal/session"
)

func TestKeyBindingsAreAccepted(t *testing.T) {
	sess := session.New(session.Options{Width: 360, Height: 165})
	seen := make(map[int]bool)
	for _, b := range keyBindings {
		if seen[int(b.key)] {
			t.Errorf("key %v bound twice", b.key)
		}
		seen[int(b.key)] = true
		if err := sess.Apply(b.cmd); err != nil {
			t.Errorf("key %v: %v", b.key, err)
		}
	}
}

func TestStraightKeepsChannels(t *testing.T) {
	c := color.RGBA{200, 100, 50, 128}
	got := straight(c)
	if got.R != 200 || got.G != 100 || got.B != 50 || got.A != 128 {
		t.Errorf("straight(%v) = %v", c, got)
	}
}
