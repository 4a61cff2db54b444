package gamepad

import (
	"testing"

	"github.com/soar/mapview/internal/session"
)

func TestNormalize(t *testing.T) {
	if got := NormalizeAxis(-32768); got != -1 {
		t.Errorf("NormalizeAxis(min) = %v", got)
	}
	if got := NormalizeAxis(32767); got != 1 {
		t.Errorf("NormalizeAxis(max) = %v", got)
	}
	if got := NormalizeTrigger(-32768, -32768, 32767); got != 0 {
		t.Errorf("NormalizeTrigger(min) = %v", got)
	}
	if got := NormalizeTrigger(5, 5, 5); got != 0 {
		t.Errorf("empty range = %v", got)
	}
	if got := ApplyDeadzone(0.04, deadzone); got != 0 {
		t.Errorf("ApplyDeadzone(0.04) = %v", got)
	}
	if got := ApplyDeadzone(-0.5, deadzone); got != -0.5 {
		t.Errorf("ApplyDeadzone(-0.5) = %v", got)
	}
}

func TestGetMapping(t *testing.T) {
	if m := GetMapping(0x054C, 0x0CE6); m.Name != "playstation" {
		t.Errorf("DualSense mapping = %s", m.Name)
	}
	if m := GetMapping(0x1234, 0x5678); m.Name != "generic" {
		t.Errorf("unknown mapping = %s", m.Name)
	}
}

func TestHatButtons(t *testing.T) {
	if got := hatButtons(hatUp | hatLeft); got != ButtonUp|ButtonLeft {
		t.Errorf("hatButtons = %b", got)
	}
	if got := hatButtons(0); got != 0 {
		t.Errorf("centered hat = %b", got)
	}
}

func TestDigitalHysteresis(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		prev Button
		want bool
	}{
		{"below on", 0.5, 0, false},
		{"above on", 0.7, 0, true},
		{"held above off", 0.5, ButtonUp, true},
		{"held below off", 0.3, ButtonUp, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadState{Stick: Vector{Y: tt.y}}.Digital(tt.prev)&ButtonUp != 0
			if got != tt.want {
				t.Errorf("up = %v, want %v", got, tt.want)
			}
		})
	}

	s := PadState{Stick: Vector{X: -0.9}, RT: 0.8, Buttons: ButtonA}
	if got := s.Digital(0); got != ButtonA|ButtonLeft|ButtonRT {
		t.Errorf("Digital = %b", got)
	}
}

func TestPressedEdges(t *testing.T) {
	prev := ButtonA | ButtonUp
	cur := ButtonA | ButtonB
	if got := Pressed(prev, cur); got != ButtonB {
		t.Errorf("Pressed = %b", got)
	}
}

func TestEachVisitsLowestFirst(t *testing.T) {
	var got []Button
	(ButtonRT | ButtonA | ButtonLB).Each(func(b Button) { got = append(got, b) })
	want := []Button{ButtonA, ButtonLB, ButtonRT}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCommands(t *testing.T) {
	cmds := Commands(ButtonRB | ButtonUp | ButtonHome)
	if len(cmds) != 2 {
		t.Fatalf("commands = %+v", cmds)
	}
	if cmds[0].Name != session.CmdNextPreset {
		t.Errorf("first = %+v", cmds[0])
	}
	if cmds[1].Name != session.CmdCursor || cmds[1].DRow != -1 {
		t.Errorf("second = %+v", cmds[1])
	}
}

func TestNavBindingsAreAccepted(t *testing.T) {
	sess := session.New(session.Options{})
	for b, cmd := range navBindings {
		if err := sess.Apply(cmd); err != nil {
			t.Errorf("%v: %v", b, err)
		}
	}
}

func TestChangedIgnoresNoise(t *testing.T) {
	a := PadState{Stick: Vector{X: 0.500}}
	if Changed(a, PadState{Stick: Vector{X: 0.505}}) {
		t.Error("noise reported as change")
	}
	if !Changed(a, PadState{Stick: Vector{X: 0.5}, Buttons: ButtonY}) {
		t.Error("button change missed")
	}
}

func TestNormalizeTriggerFullRange(t *testing.T) {
	if got := NormalizeTrigger(32767, -32768, 32767); got != 1 {
		t.Errorf("NormalizeTrigger(max) = %v", got)
	}
	if got := NormalizeTrigger(0, -32768, 32767); got < 0.49 || got > 0.51 {
		t.Errorf("NormalizeTrigger(mid) = %v", got)
	}
}
