package diagram

// Selection tracks the selected cells, the cursor and an in-progress drag on one touch grid.
type Selection struct {
	Rows, Cols int
	Cells      []bool
	Cursor     int

	count int
	path  []int
}

func newSelection(rows, cols int) Selection {
	return Selection{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]bool, rows*cols),
		path:  make([]int, 0, rows*cols),
	}
}

func (s *Selection) valid(i int) bool {
	return i >= 0 && i < len(s.Cells)
}

// Count returns the number of selected cells.
func (s *Selection) Count() int {
	return s.count
}

func (s *Selection) Selected(i int) bool {
	return s.valid(i) && s.Cells[i]
}

func (s *Selection) add(i int) {
	if s.valid(i) && !s.Cells[i] {
		s.Cells[i] = true
		s.count++
	}
}

func (s *Selection) remove(i int) {
	if s.valid(i) && s.Cells[i] {
		s.Cells[i] = false
		s.count--
	}
}

// Toggle flips cell i.
func (s *Selection) Toggle(i int) {
	if s.Selected(i) {
		s.remove(i)
	} else {
		s.add(i)
	}
}

// ToggleCursor flips the cell under the cursor.
func (s *Selection) ToggleCursor() {
	s.Toggle(s.Cursor)
}

// Clear drops every selected cell and the drag path.
func (s *Selection) Clear() {
	clear(s.Cells)
	s.count = 0
	s.path = s.path[:0]
}

// MoveCursor moves the cursor by (dr, dc), wrapping on both axes.
func (s *Selection) MoveCursor(dr, dc int) {
	if s.Rows <= 0 || s.Cols <= 0 {
		return
	}
	row := ((s.Cursor/s.Cols+dr)%s.Rows + s.Rows) % s.Rows
	col := ((s.Cursor%s.Cols+dc)%s.Cols + s.Cols) % s.Cols
	s.Cursor = row*s.Cols + col
}

// SetCursor places the cursor on cell i.
func (s *Selection) SetCursor(i int) {
	if s.valid(i) {
		s.Cursor = i
	}
}

// BeginDrag starts a new drag path without touching the current selection.
func (s *Selection) BeginDrag() {
	s.path = s.path[:0]
}

// DragVisit extends the drag path with cell i. Stepping back onto the previous cell of the
// path unselects the cell being left.
func (s *Selection) DragVisit(i int) {
	if !s.valid(i) {
		return
	}
	s.Cursor = i
	n := len(s.path)
	if n > 0 && s.path[n-1] == i {
		return
	}
	if n > 1 && s.path[n-2] == i {
		s.remove(s.path[n-1])
		s.path = s.path[:n-1]
		return
	}
	if !s.Cells[i] {
		s.add(i)
		s.path = append(s.path, i)
	}
}

// Indices lists the selected cells in row-major order.
func (s *Selection) Indices() []int {
	out := make([]int, 0, s.count)
	for i, on := range s.Cells {
		if on {
			out = append(out, i)
		}
	}
	return out
}
