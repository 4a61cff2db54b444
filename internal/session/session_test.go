package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/soar/mapview/internal/controller"
	"github.com/soar/mapview/internal/diagram"
	"github.com/soar/mapview/internal/rasterdraw"
)

type fakeClock struct{ now uint64 }

func (c *fakeClock) NowMicros() uint64 { return c.now }

func newTestSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: 1_000_000}
	return New(Options{Width: 360, Height: 165, Clock: clk}), clk
}

func mustApply(t *testing.T, s *Session, cmd Command) {
	t.Helper()
	if err := s.Apply(cmd); err != nil {
		t.Fatalf("Apply(%+v): %v", cmd, err)
	}
}

func TestNewDefaults(t *testing.T) {
	s, _ := newTestSession(t)
	snap := s.Snapshot()
	if snap.Preset != controller.Map0 || snap.PresetName != "Default" {
		t.Errorf("preset = %d %q", snap.Preset, snap.PresetName)
	}
	if snap.View != diagram.ViewFront || snap.Detail != diagram.DetailSummary {
		t.Errorf("view/detail = %v/%v", snap.View, snap.Detail)
	}
	if snap.PageCount != 3 || snap.PageTitle == "" {
		t.Errorf("pages = %d %q", snap.PageCount, snap.PageTitle)
	}
	if snap.Selection != nil {
		t.Errorf("summary has a selection: %v", snap.Selection)
	}
}

func TestPresetWrapsBothWays(t *testing.T) {
	s, clk := newTestSession(t)
	n := len(controller.Presets())

	mustApply(t, s, Command{Name: CmdPrevPreset})
	if got := s.Snapshot().Preset; got != controller.MapCustom3 {
		t.Fatalf("prev from first = %d, want custom 3", got)
	}
	clk.now += 10_000
	for range n {
		mustApply(t, s, Command{Name: CmdNextPreset})
	}
	if got := s.Snapshot().Preset; got != controller.MapCustom3 {
		t.Errorf("after a full cycle = %d", got)
	}
}

func TestPresetChangeStartsTween(t *testing.T) {
	s, clk := newTestSession(t)
	old := s.Map()
	mustApply(t, s, Command{Name: CmdNextPreset})

	if s.Map() == old {
		t.Error("map not replaced")
	}
	if !s.Snapshot().Animating {
		t.Error("tween not running after preset change")
	}
	clk.now += diagram.TweenDuration
	if s.Snapshot().Animating {
		t.Error("tween still running after its duration")
	}
}

func TestSetPreset(t *testing.T) {
	s, _ := newTestSession(t)
	id := controller.Map100
	mustApply(t, s, Command{Name: CmdSetPreset, Preset: &id})
	if got := s.Snapshot().Preset; got != id {
		t.Errorf("preset = %d", got)
	}

	for _, id := range []controller.MapID{controller.Map25, controller.Map101, controller.Map6} {
		mustApply(t, s, Command{Name: CmdSetPreset, Preset: &id})
		if snap := s.Snapshot(); snap.Preset != id || s.Map().ID != id {
			t.Errorf("set %d: snapshot %d, map %d", id, snap.Preset, s.Map().ID)
		}
	}

	unknown := controller.MapID(42)
	if err := s.Apply(Command{Name: CmdSetPreset, Preset: &unknown}); err == nil {
		t.Error("unknown preset accepted")
	}
	if err := s.Apply(Command{Name: CmdSetPreset}); err == nil {
		t.Error("missing preset accepted")
	}
}

func TestNewAtEveryPreset(t *testing.T) {
	for _, p := range controller.Presets() {
		s := New(Options{Preset: p.ID, Clock: &fakeClock{}})
		if snap := s.Snapshot(); snap.Preset != p.ID || snap.PresetName != p.Name || s.Map().ID != p.ID {
			t.Errorf("New(%d) = preset %d %q, map %d", p.ID, snap.Preset, snap.PresetName, s.Map().ID)
		}
	}
}

func TestSamePresetDoesNotNotify(t *testing.T) {
	s, _ := newTestSession(t)
	id := controller.Map0
	mustApply(t, s, Command{Name: CmdSetPreset, Preset: &id})
	select {
	case <-s.Changes():
		t.Error("no-op preset change notified")
	default:
	}
}

func TestPagesFollowTheirFace(t *testing.T) {
	s, _ := newTestSession(t)
	want := []diagram.ViewMode{diagram.ViewBack, diagram.ViewFront, diagram.ViewFront}
	for i, v := range want {
		mustApply(t, s, Command{Name: CmdNextPage})
		snap := s.Snapshot()
		if snap.Page != (i+1)%3 {
			t.Fatalf("step %d: page = %d", i, snap.Page)
		}
		if snap.View != v {
			t.Errorf("page %d: view = %v, want %v", snap.Page, snap.View, v)
		}
	}
	mustApply(t, s, Command{Name: CmdPrevPage})
	if got := s.Snapshot().Page; got != 2 {
		t.Errorf("prev from 0 = %d, want 2", got)
	}
}

func TestDetailCycleSetsFace(t *testing.T) {
	s, _ := newTestSession(t)
	tests := []struct {
		detail diagram.DetailMode
		view   diagram.ViewMode
	}{
		{diagram.DetailFrontMapping, diagram.ViewFront},
		{diagram.DetailBackMapping, diagram.ViewBack},
		{diagram.DetailSummary, diagram.ViewFront},
	}
	for _, tt := range tests {
		mustApply(t, s, Command{Name: CmdDetail})
		snap := s.Snapshot()
		if snap.Detail != tt.detail || snap.View != tt.view {
			t.Errorf("detail/view = %v/%v, want %v/%v", snap.Detail, snap.View, tt.detail, tt.view)
		}
	}

	mustApply(t, s, Command{Name: CmdDetail, Detail: "back"})
	if got := s.Snapshot().Detail; got != diagram.DetailBackMapping {
		t.Errorf("explicit detail = %v", got)
	}
	if err := s.Apply(Command{Name: CmdDetail, Detail: "sideways"}); err == nil {
		t.Error("bad detail accepted")
	}
}

func TestFlipCarriesMappingOverlay(t *testing.T) {
	s, _ := newTestSession(t)
	mustApply(t, s, Command{Name: CmdDetail, Detail: "front"})
	mustApply(t, s, Command{Name: CmdFlip})

	snap := s.Snapshot()
	if snap.View != diagram.ViewBack || snap.Detail != diagram.DetailBackMapping {
		t.Errorf("after flip = %v/%v", snap.View, snap.Detail)
	}
	if !snap.Animating {
		t.Error("flip not animating")
	}
}

func TestViewCommand(t *testing.T) {
	s, _ := newTestSession(t)
	mustApply(t, s, Command{Name: CmdView, View: "both"})
	if got := s.Snapshot().View; got != diagram.ViewBoth {
		t.Errorf("view = %v", got)
	}
	if err := s.Apply(Command{Name: CmdView, View: "top"}); err == nil {
		t.Error("bad view accepted")
	}
}

func TestSelectionCommands(t *testing.T) {
	s, _ := newTestSession(t)

	// Ignored in summary mode.
	mustApply(t, s, Command{Name: CmdToggleCell})
	if s.Snapshot().Selection != nil {
		t.Fatal("summary selection changed")
	}

	mustApply(t, s, Command{Name: CmdDetail, Detail: "back"})
	mustApply(t, s, Command{Name: CmdCursor, DRow: 0, DCol: 1})
	mustApply(t, s, Command{Name: CmdToggleCell})
	cell := 7
	mustApply(t, s, Command{Name: CmdToggleCell, Cell: &cell})

	snap := s.Snapshot()
	if snap.Cursor != 1 {
		t.Errorf("cursor = %d", snap.Cursor)
	}
	if len(snap.Selection) != 2 || snap.Selection[0] != 1 || snap.Selection[1] != 7 {
		t.Errorf("selection = %v", snap.Selection)
	}

	mustApply(t, s, Command{Name: CmdClearSelection})
	if got := s.Snapshot().Selection; len(got) != 0 {
		t.Errorf("after clear = %v", got)
	}
}

func TestDragCommands(t *testing.T) {
	s, _ := newTestSession(t)
	mustApply(t, s, Command{Name: CmdDetail, Detail: "front"})

	start := 0
	mustApply(t, s, Command{Name: CmdDragBegin, Cell: &start})
	for _, c := range []int{1, 2, 1} {
		cell := c
		mustApply(t, s, Command{Name: CmdDragVisit, Cell: &cell})
	}
	if got := s.Snapshot().Selection; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("after backtrack = %v, want [0 1]", got)
	}
	if err := s.Apply(Command{Name: CmdDragVisit}); err == nil {
		t.Error("drag visit without a cell accepted")
	}
}

func TestSelectZone(t *testing.T) {
	s, _ := newTestSession(t)
	mustApply(t, s, Command{Name: CmdSelectZone, Zone: "rear_ul"})
	if got := s.Snapshot().SelectedZone; got != controller.InRearTouchUL {
		t.Errorf("zone = %v", got)
	}
	mustApply(t, s, Command{Name: CmdSelectZone})
	if got := s.Snapshot().SelectedZone; got != controller.InNone {
		t.Errorf("cleared zone = %v", got)
	}
	if err := s.Apply(Command{Name: CmdSelectZone, Zone: "elbow"}); err == nil {
		t.Error("bad zone accepted")
	}
}

func TestUnknownCommand(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.Apply(Command{Name: "dance"})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("err = %v", err)
	}
}

func TestChangesCoalesce(t *testing.T) {
	s, _ := newTestSession(t)
	mustApply(t, s, Command{Name: CmdNextPage})
	mustApply(t, s, Command{Name: CmdNextPage})
	<-s.Changes()
	select {
	case <-s.Changes():
		t.Error("second signal not coalesced")
	default:
	}
}

func TestCustomSlotPreset(t *testing.T) {
	storage, err := controller.ParseStorage(map[string]string{"rear_ul": "l3"}, "", "")
	if err != nil {
		t.Fatal(err)
	}
	var slots controller.CustomSlots
	slots[0] = storage
	s := New(Options{Preset: controller.MapCustom1, Slots: &slots, Clock: &fakeClock{}})
	if got := s.Map().Output(controller.InRearTouchUL); got != controller.OutL3 {
		t.Errorf("custom slot output = %v", got)
	}
}

func TestFrameSVG(t *testing.T) {
	s, _ := newTestSession(t)
	doc, err := s.FrameSVG()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(doc, []byte("<svg")) || !strings.Contains(string(doc), "L1 → L1") {
		t.Errorf("frame = %.120s", doc)
	}
}

func TestFrameImage(t *testing.T) {
	s, _ := newTestSession(t)
	data, err := s.FrameImage(rasterdraw.FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("not a png: %x", data[:8])
	}
}

func TestCellAtFollowsOverlay(t *testing.T) {
	s, clk := newTestSession(t)
	box := diagram.NewBox(0, 0, 360, 165)
	ctx := diagram.NewContext(box, nil)
	p := ctx.BackCellRect(1, 3).Center()

	if _, ok := s.CellAt(box, p); ok {
		t.Error("hit in summary mode")
	}
	mustApply(t, s, Command{Name: CmdDetail, Detail: "back"})
	clk.now += diagram.FlipDuration
	got, ok := s.CellAt(box, p)
	if !ok || got != 1*controller.RearGridCols+3 {
		t.Errorf("CellAt = %d, %v", got, ok)
	}
}

func TestSummaryCursorTurnsPages(t *testing.T) {
	s, _ := newTestSession(t)
	mustApply(t, s, Command{Name: CmdCursor, DCol: -1})
	if got := s.Snapshot().Page; got != 2 {
		t.Errorf("left from page 0 = %d, want 2", got)
	}
	mustApply(t, s, Command{Name: CmdCursor, DRow: 1})
	if got := s.Snapshot().Page; got != 2 {
		t.Errorf("vertical move changed page to %d", got)
	}
}

func TestInitialPage(t *testing.T) {
	s := New(Options{Page: 1, Clock: &fakeClock{}})
	if got := s.Snapshot().Page; got != 1 {
		t.Errorf("page = %d", got)
	}
	s = New(Options{Page: 9, Clock: &fakeClock{}})
	if got := s.Snapshot().Page; got != 0 {
		t.Errorf("out of range page = %d", got)
	}
}

func newCustomSession(t *testing.T, detail diagram.DetailMode) *Session {
	t.Helper()
	return New(Options{Width: 360, Height: 165, Preset: controller.MapCustom1, Detail: detail, Clock: &fakeClock{}})
}

func TestAssignSelectedCellsFormRegion(t *testing.T) {
	s := newCustomSession(t, diagram.DetailBackMapping)
	for _, cell := range []int{0, 1, 2} {
		mustApply(t, s, Command{Name: CmdToggleCell, Cell: &cell})
	}
	<-s.Changes()
	before := s.Map()

	mustApply(t, s, Command{Name: CmdAssign, Output: "cross"})

	select {
	case <-s.Changes():
	default:
		t.Error("assignment did not notify")
	}
	m := s.Map()
	if m == before {
		t.Fatal("map not replaced")
	}
	if got := before.Output(controller.RearGridZone(0, 0)); got != controller.OutNone {
		t.Errorf("previous map mutated: %v", got)
	}
	if snap := s.Snapshot(); len(snap.Selection) != 0 || !snap.Editable {
		t.Errorf("snapshot after assign = %+v", snap)
	}

	ctx := diagram.NewContext(diagram.NewBox(0, 0, 360, 165), nil)
	gr := diagram.GroupRegions(diagram.BackGrid(m), ctx.BackCellRect)
	if len(gr.Regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(gr.Regions))
	}
	if r := gr.Regions[0]; r.Target != controller.OutCross || r.Count != 3 {
		t.Errorf("region = %v x%d", r.Target, r.Count)
	}
	if n := len(gr.Unmapped()); n != controller.RearGridCount-3 {
		t.Errorf("unmapped cells = %d", n)
	}
}

func TestAssignCursorCellWhenNothingSelected(t *testing.T) {
	s := newCustomSession(t, diagram.DetailFrontMapping)
	mustApply(t, s, Command{Name: CmdCursor, DRow: 1, DCol: 2})
	mustApply(t, s, Command{Name: CmdAssign, Output: "Triangle"})
	if got := s.Map().Output(controller.FrontGridZone(1, 2)); got != controller.OutTriangle {
		t.Errorf("cursor cell = %v", got)
	}
}

func TestAssignResyncsTriggers(t *testing.T) {
	s := newCustomSession(t, diagram.DetailBackMapping)
	if s.Map().L2 != controller.InRearTouchLeftL1 {
		t.Fatalf("default custom L2 = %v", s.Map().L2)
	}
	mustApply(t, s, Command{Name: CmdAssign, Zone: "rear_left_l1", Output: "none"})
	cell := 4
	mustApply(t, s, Command{Name: CmdToggleCell, Cell: &cell})
	mustApply(t, s, Command{Name: CmdAssign, Output: "l2"})

	m := s.Map()
	if m.L2 != controller.RearGridZone(0, 4) {
		t.Errorf("L2 zone = %v", m.L2)
	}
	if got := m.Output(controller.InRearTouchLeftL1); got != controller.OutNone {
		t.Errorf("old L2 zone = %v", got)
	}
}

func TestAssignIsKeptPerSlot(t *testing.T) {
	s := newCustomSession(t, diagram.DetailFrontMapping)
	mustApply(t, s, Command{Name: CmdAssign, Zone: "front_grid_r0c0", Output: "square"})

	mustApply(t, s, Command{Name: CmdNextPreset})
	if got := s.Map().Output(controller.FrontGridZone(0, 0)); got != controller.OutNone {
		t.Errorf("custom 2 inherited %v", got)
	}
	mustApply(t, s, Command{Name: CmdPrevPreset})
	if got := s.Map().Output(controller.FrontGridZone(0, 0)); got != controller.OutSquare {
		t.Errorf("custom 1 lost its assignment: %v", got)
	}
}

func TestAssignErrors(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.Apply(Command{Name: CmdAssign, Zone: "rear_ul", Output: "cross"})
	if !errors.Is(err, ErrReadOnlyPreset) {
		t.Errorf("built-in preset: err = %v", err)
	}

	s = newCustomSession(t, diagram.DetailSummary)
	tests := []Command{
		{Name: CmdAssign, Output: "jump", Zone: "rear_ul"},
		{Name: CmdAssign, Output: "cross", Zone: "elbow"},
		{Name: CmdAssign, Output: "cross"},
	}
	for _, cmd := range tests {
		if err := s.Apply(cmd); err == nil {
			t.Errorf("Apply(%+v) accepted", cmd)
		}
	}
}
