package diagram

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBoxResolvers(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"outline width at 500", NewBox(0, 0, 500, 200).RSize(0.004), 2},
		{"x truncates", NewBox(10, 0, 333, 100).RX(0.5), 10 + 166},
		{"y truncates", NewBox(0, 7, 100, 99).RY(0.333), 7 + 32},
		{"w zero ratio", NewBox(0, 0, 720, 330).RW(0), 0},
		{"h full ratio", NewBox(0, 0, 720, 330).RH(1), 330},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestLineWidthNeverZero(t *testing.T) {
	ctx := NewContext(NewBox(0, 0, 100, 40), nil)
	if ctx.LineWidth != 1 {
		t.Errorf("LineWidth = %d, want 1", ctx.LineWidth)
	}
	ctx = NewContext(NewBox(0, 0, 500, 200), nil)
	if ctx.LineWidth != 2 {
		t.Errorf("LineWidth = %d, want 2", ctx.LineWidth)
	}
}

func TestBoxScaledStaysCentred(t *testing.T) {
	b := NewBox(100, 50, 720, 330).Scaled(0.5)
	if b.W != 360 || b.H != 165 {
		t.Fatalf("scaled size = %dx%d", b.W, b.H)
	}
	if b.X != 100+180 || b.Y != 50+82 {
		t.Errorf("scaled origin = %d,%d", b.X, b.Y)
	}
	if b.Scale != 0.5 {
		t.Errorf("Scale = %v", b.Scale)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 20, Y: 5, W: 5, H: 10}
	if got := a.Union(b); got != (Rect{X: 0, Y: 0, W: 25, H: 15}) {
		t.Errorf("Union = %+v", got)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union = %+v", got)
	}
}

func TestResolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("resolved x stays inside the box", prop.ForAll(
		func(x, w, permille int) bool {
			b := NewBox(x, 0, w, 10)
			v := b.RX(float64(permille) / 1000)
			return v >= b.X && v <= b.X+b.W
		},
		gen.IntRange(-500, 500),
		gen.IntRange(0, 4000),
		gen.IntRange(0, 1000),
	))

	properties.Property("RX is monotonic in the ratio", prop.ForAll(
		func(w, a, b int) bool {
			box := NewBox(0, 0, w, 10)
			if a > b {
				a, b = b, a
			}
			return box.RX(float64(a)/1000) <= box.RX(float64(b)/1000)
		},
		gen.IntRange(1, 4000),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
