package diagram

import "github.com/soar/mapview/internal/controller"

// MappingTable answers which output a zone is bound to.
type MappingTable interface {
	Output(zone controller.InputZone) controller.Output
}

// Grid is a row-major snapshot of the outputs bound to a touch grid.
type Grid struct {
	Rows, Cols int
	Cells      []controller.Output
}

// At returns the output of cell (row, col), OutNone when out of range.
func (g Grid) At(row, col int) controller.Output {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return controller.OutNone
	}
	return g.Cells[row*g.Cols+col]
}

// FrontGrid snapshots the front grid bindings of m.
func FrontGrid(m MappingTable) Grid {
	return snapshotGrid(m, controller.FrontGridRows, controller.FrontGridCols, controller.FrontGridZone)
}

// BackGrid snapshots the rear grid bindings of m.
func BackGrid(m MappingTable) Grid {
	return snapshotGrid(m, controller.RearGridRows, controller.RearGridCols, controller.RearGridZone)
}

func snapshotGrid(m MappingTable, rows, cols int, zone func(row, col int) controller.InputZone) Grid {
	g := Grid{Rows: rows, Cols: cols, Cells: make([]controller.Output, rows*cols)}
	if m == nil {
		return g
	}
	for r := range rows {
		for c := range cols {
			g.Cells[r*cols+c] = m.Output(zone(r, c))
		}
	}
	return g
}

// EdgeMask marks cell edges shared with a neighbour of the same region.
type EdgeMask uint8

const (
	EdgeTop EdgeMask = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Region is a 4-connected set of cells bound to the same output.
type Region struct {
	Target   controller.Output
	Cells    []int
	Count    int
	Centroid Point
	Bounds   Rect
}

// Grouping is the result of GroupRegions.
type Grouping struct {
	Regions []Region
	// RegionOf maps a cell index to its region, -1 for unmapped cells.
	RegionOf []int
	// Edges holds the suppressed (interior) edges of each mapped cell.
	Edges []EdgeMask
}

// Unmapped returns the indices of cells that belong to no region.
func (gr Grouping) Unmapped() []int {
	var out []int
	for i, r := range gr.RegionOf {
		if r < 0 {
			out = append(out, i)
		}
	}
	return out
}

var neighbours = [4]struct {
	dr, dc int
	edge   EdgeMask
}{
	{-1, 0, EdgeTop},
	{0, 1, EdgeRight},
	{1, 0, EdgeBottom},
	{0, -1, EdgeLeft},
}

// GroupRegions partitions the mapped cells of g into maximal 4-connected regions of equal
// output. Seeds are taken in row-major order, so region order is stable. cellRect supplies
// the pixel rect of each cell for centroids and bounds.
func GroupRegions(g Grid, cellRect func(row, col int) Rect) Grouping {
	n := g.Rows * g.Cols
	if g.Rows <= 0 || g.Cols <= 0 || len(g.Cells) < n {
		return Grouping{}
	}
	gr := Grouping{
		RegionOf: make([]int, n),
		Edges:    make([]EdgeMask, n),
	}
	for i := range gr.RegionOf {
		gr.RegionOf[i] = -1
	}

	queue := make([]int, 0, n)
	for seed := range n {
		target := g.Cells[seed]
		if target == controller.OutNone || gr.RegionOf[seed] >= 0 {
			continue
		}
		idx := len(gr.Regions)
		reg := Region{Target: target}
		var sumX, sumY int

		gr.RegionOf[seed] = idx
		queue = append(queue[:0], seed)
		for len(queue) > 0 {
			cell := queue[0]
			queue = queue[1:]
			row, col := cell/g.Cols, cell%g.Cols

			rect := cellRect(row, col)
			ctr := rect.Center()
			sumX += ctr.X
			sumY += ctr.Y
			reg.Cells = append(reg.Cells, cell)
			reg.Bounds = reg.Bounds.Union(rect)

			for _, nb := range neighbours {
				nr, nc := row+nb.dr, col+nb.dc
				if nr < 0 || nr >= g.Rows || nc < 0 || nc >= g.Cols {
					continue
				}
				ni := nr*g.Cols + nc
				if g.Cells[ni] != target {
					continue
				}
				gr.Edges[cell] |= nb.edge
				if gr.RegionOf[ni] < 0 {
					gr.RegionOf[ni] = idx
					queue = append(queue, ni)
				}
			}
		}
		reg.Count = len(reg.Cells)
		reg.Centroid = Point{X: sumX / reg.Count, Y: sumY / reg.Count}
		gr.Regions = append(gr.Regions, reg)
	}
	return gr
}
