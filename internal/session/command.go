package session

import (
	"errors"
	"fmt"

	"github.com/soar/mapview/internal/controller"
	"github.com/soar/mapview/internal/diagram"
)

// Command names accepted by Apply.
const (
	CmdNextPreset     = "next_preset"
	CmdPrevPreset     = "prev_preset"
	CmdSetPreset      = "set_preset"
	CmdNextPage       = "next_page"
	CmdPrevPage       = "prev_page"
	CmdFlip           = "flip"
	CmdView           = "view"
	CmdDetail         = "detail"
	CmdCursor         = "cursor"
	CmdToggleCell     = "toggle_cell"
	CmdClearSelection = "clear_selection"
	CmdDragBegin      = "drag_begin"
	CmdDragVisit      = "drag_visit"
	CmdSelectZone     = "select_zone"
	CmdAssign         = "assign"
)

var (
	// ErrUnknownCommand is returned by Apply for unrecognised command names.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrReadOnlyPreset is returned when assigning outputs on a built-in preset.
	ErrReadOnlyPreset = errors.New("built-in presets are read-only")
)

// Command is one navigation request. Only the fields used by Name are read.
type Command struct {
	Name   string            `json:"command"`
	Preset *controller.MapID `json:"preset,omitempty"`
	View   string            `json:"view,omitempty"`
	Detail string            `json:"detail,omitempty"`
	Zone   string            `json:"zone,omitempty"`
	DRow   int               `json:"dRow,omitempty"`
	DCol   int               `json:"dCol,omitempty"`
	Cell   *int              `json:"cell,omitempty"`
	Output string            `json:"output,omitempty"`
}

// Apply executes cmd against the session state.
func (s *Session) Apply(cmd Command) error {
	s.mu.Lock()
	changed, err := s.apply(cmd, s.clock.NowMicros())
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("session: %s: %w", cmd.Name, err)
	}
	if changed {
		s.notify()
	}
	return nil
}

func (s *Session) apply(cmd Command, now uint64) (bool, error) {
	st := s.state
	st.Update(now)

	switch cmd.Name {
	case CmdNextPreset:
		return s.selectPreset((s.preset+1)%len(s.presets), now), nil
	case CmdPrevPreset:
		return s.selectPreset((s.preset+len(s.presets)-1)%len(s.presets), now), nil
	case CmdSetPreset:
		if cmd.Preset == nil {
			return false, errors.New("missing preset")
		}
		if !controller.IsPreset(*cmd.Preset) {
			return false, fmt.Errorf("unknown preset %d", *cmd.Preset)
		}
		return s.selectPreset(controller.PresetIndex(*cmd.Preset), now), nil

	case CmdNextPage:
		return s.turnPage(1, now), nil
	case CmdPrevPage:
		return s.turnPage(-1, now), nil

	case CmdFlip:
		next := diagram.ViewBack
		if st.View == diagram.ViewBack {
			next = diagram.ViewFront
		}
		st.SetView(next, now)
		s.followFace()
		return true, nil

	case CmdView:
		v, err := diagram.ParseViewMode(cmd.View)
		if err != nil {
			return false, err
		}
		changed := st.SetView(v, now)
		if v != diagram.ViewBoth {
			s.followFace()
		}
		return changed, nil

	case CmdDetail:
		d := st.Detail.Next()
		if cmd.Detail != "" {
			var err error
			if d, err = diagram.ParseDetailMode(cmd.Detail); err != nil {
				return false, err
			}
		}
		st.SetDetail(d)
		switch d {
		case diagram.DetailFrontMapping:
			st.SetView(diagram.ViewFront, now)
		case diagram.DetailBackMapping:
			st.SetView(diagram.ViewBack, now)
		default:
			st.SetView(s.callouts.PageView(st.CalloutPage), now)
		}
		return true, nil

	case CmdCursor, CmdToggleCell, CmdClearSelection, CmdDragBegin, CmdDragVisit:
		sel := st.Selection()
		if sel == nil {
			// Left/right turns callout pages in summary mode.
			if cmd.Name == CmdCursor && cmd.DCol != 0 {
				return s.turnPage(cmd.DCol, now), nil
			}
			return false, nil
		}
		switch cmd.Name {
		case CmdCursor:
			sel.MoveCursor(cmd.DRow, cmd.DCol)
		case CmdToggleCell:
			if cmd.Cell != nil {
				sel.Toggle(*cmd.Cell)
			} else {
				sel.ToggleCursor()
			}
		case CmdClearSelection:
			sel.Clear()
		case CmdDragBegin:
			sel.BeginDrag()
			if cmd.Cell != nil {
				sel.DragVisit(*cmd.Cell)
			}
		case CmdDragVisit:
			if cmd.Cell == nil {
				return false, errors.New("missing cell")
			}
			sel.DragVisit(*cmd.Cell)
		}
		return true, nil

	case CmdSelectZone:
		zone := controller.InNone
		if cmd.Zone != "" {
			var err error
			if zone, err = controller.ParseInputZone(cmd.Zone); err != nil {
				return false, err
			}
		}
		st.SelectZone(zone)
		return true, nil

	case CmdAssign:
		return s.assign(cmd)
	}
	return false, ErrUnknownCommand
}

// assign binds one output to the named zone, or else to the selected grid cells (the cursor
// cell when nothing is selected), on the active custom slot. The slot is kept in memory only.
func (s *Session) assign(cmd Command) (bool, error) {
	out, err := controller.ParseOutput(cmd.Output)
	if err != nil {
		return false, err
	}
	slot, ok := controller.CustomSlot(s.state.Preset)
	if !ok {
		return false, ErrReadOnlyPreset
	}
	zones, err := s.assignTargets(cmd.Zone)
	if err != nil {
		return false, err
	}

	next := s.current.Clone()
	for _, z := range zones {
		next.Set(z, out)
	}
	next.SyncTriggers()
	s.current = next
	s.slots[slot] = next.Storage()
	if sel := s.state.Selection(); sel != nil {
		sel.Clear()
	}
	return true, nil
}

func (s *Session) assignTargets(zone string) ([]controller.InputZone, error) {
	if zone != "" {
		z, err := controller.ParseInputZone(zone)
		if err != nil {
			return nil, err
		}
		return []controller.InputZone{z}, nil
	}

	st := s.state
	sel := st.Selection()
	if sel == nil {
		return nil, errors.New("no zone or grid selection")
	}
	cells := sel.Indices()
	if len(cells) == 0 {
		cells = []int{sel.Cursor}
	}
	cellZone := controller.FrontGridZone
	if st.Detail == diagram.DetailBackMapping {
		cellZone = controller.RearGridZone
	}
	zones := make([]controller.InputZone, 0, len(cells))
	for _, i := range cells {
		zones = append(zones, cellZone(i/sel.Cols, i%sel.Cols))
	}
	return zones, nil
}

// turnPage moves step pages with wraparound. In summary mode the view follows the face the
// page is drawn on.
func (s *Session) turnPage(step int, now uint64) bool {
	n := s.callouts.PageCount()
	if n == 0 {
		return false
	}
	st := s.state
	st.CalloutPage = ((st.CalloutPage+step)%n + n) % n
	if st.Detail == diagram.DetailSummary {
		st.SetView(s.callouts.PageView(st.CalloutPage), now)
	}
	return true
}

func (s *Session) selectPreset(i int, now uint64) bool {
	s.preset = i
	if !s.state.SetPreset(s.presets[i].ID, now) {
		return false
	}
	s.current = controller.NewMap(s.state.Preset, s.slots)
	return true
}

// followFace keeps a mapping overlay on the face being shown.
func (s *Session) followFace() {
	switch {
	case s.state.Detail == diagram.DetailFrontMapping && s.state.View == diagram.ViewBack:
		s.state.SetDetail(diagram.DetailBackMapping)
	case s.state.Detail == diagram.DetailBackMapping && s.state.View == diagram.ViewFront:
		s.state.SetDetail(diagram.DetailFrontMapping)
	}
}
