package ebitendraw

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/soar/mapview/internal/diagram"
	"github.com/soar/mapview/internal/session"
)

// keyBindings maps preview keys to session commands.
var keyBindings = []struct {
	key ebiten.Key
	cmd session.Command
}{
	{ebiten.KeyE, session.Command{Name: session.CmdNextPreset}},
	{ebiten.KeyQ, session.Command{Name: session.CmdPrevPreset}},
	{ebiten.KeyPageDown, session.Command{Name: session.CmdNextPage}},
	{ebiten.KeyPageUp, session.Command{Name: session.CmdPrevPage}},
	{ebiten.KeyF, session.Command{Name: session.CmdFlip}},
	{ebiten.KeyB, session.Command{Name: session.CmdView, View: "both"}},
	{ebiten.KeyTab, session.Command{Name: session.CmdDetail}},
	{ebiten.KeyArrowUp, session.Command{Name: session.CmdCursor, DRow: -1}},
	{ebiten.KeyArrowDown, session.Command{Name: session.CmdCursor, DRow: 1}},
	{ebiten.KeyArrowLeft, session.Command{Name: session.CmdCursor, DCol: -1}},
	{ebiten.KeyArrowRight, session.Command{Name: session.CmdCursor, DCol: 1}},
	{ebiten.KeySpace, session.Command{Name: session.CmdToggleCell}},
	{ebiten.KeyC, session.Command{Name: session.CmdClearSelection}},
}

// Game is the ebiten.Game of the preview window.
type Game struct {
	session  *session.Session
	surface  *Surface
	width    int
	height   int
	dragging bool
	title    string
}

// NewGame prepares a preview of sess.
func NewGame(sess *session.Session) (*Game, error) {
	surf, err := NewSurface()
	if err != nil {
		return nil, err
	}
	w, h := sess.Size()
	return &Game{session: sess, surface: surf, width: w, height: h}, nil
}

func (g *Game) box() diagram.Box {
	return diagram.NewBox(0, 0, g.width, g.height)
}

func (g *Game) apply(cmd session.Command) {
	if err := g.session.Apply(cmd); err != nil {
		log.Printf("Preview command failed: %v", err)
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.apply(b.cmd)
		}
	}

	x, y := ebiten.CursorPosition()
	cell, hit := g.session.CellAt(g.box(), diagram.Point{X: x, Y: y})
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && hit:
		g.dragging = true
		g.apply(session.Command{Name: session.CmdDragBegin, Cell: &cell})
	case g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if hit {
			g.apply(session.Command{Name: session.CmdDragVisit, Cell: &cell})
		}
	default:
		g.dragging = false
	}

	snap := g.session.Snapshot()
	if title := fmt.Sprintf("mapview - %s (%s)", snap.PresetName, snap.Detail); title != g.title {
		g.title = title
		ebiten.SetWindowTitle(title)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(diagram.DefaultTheme().Background)
	g.surface.Target(screen)
	g.session.Draw(g.surface, g.box())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the preview window and blocks until it is closed.
func Run(sess *session.Session) error {
	g, err := NewGame(sess)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("mapview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
