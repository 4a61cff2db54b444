package tray

import (
	"bytes"
	"testing"

	"github.com/soar/mapview/internal/session"
)

func TestIconFormats(t *testing.T) {
	ico := iconFor("windows")
	if !bytes.HasPrefix(ico, []byte{0, 0, 1, 0}) {
		t.Errorf("windows icon header = %x", ico[:min(4, len(ico))])
	}
	png := iconFor("linux")
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("linux icon header = %q", png[:min(4, len(png))])
	}
}

func TestBrowserCommand(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "rundll32"},
		{"darwin", "open"},
		{"linux", "xdg-open"},
	}
	for _, tt := range tests {
		cmd := browserCommand(tt.goos, "http://localhost:8080")
		if cmd.Args[0] != tt.want || cmd.Args[len(cmd.Args)-1] != "http://localhost:8080" {
			t.Errorf("%s: args = %v", tt.goos, cmd.Args)
		}
	}
}

func TestMenuActionsAreAccepted(t *testing.T) {
	sess := session.New(session.Options{})
	tr := New("http://localhost:8080", sess, func() {})
	for _, a := range tr.actions {
		if err := sess.Apply(a.cmd); err != nil {
			t.Errorf("%s: %v", a.title, err)
		}
	}
}
