package systems

import (
	"math"

	"github.com/pthm-cable/lightcycle/geom"
)

// TrailIndex buckets laid trail segments into a coarse grid so that point
// queries only test the segments near them.
type TrailIndex struct {
	cellSize float64
	width    float64 // half-thickness of a wall of light
	cols     int
	rows     int
	cells    [][]int32 // segment indices per cell
	segs     []geom.Segment
}

// NewTrailIndex creates an index covering a square arena.
func NewTrailIndex(side, cellSize, width float64) *TrailIndex {
	if cellSize <= 0 {
		cellSize = 4
	}
	cols := int(side/cellSize) + 1
	cells := make([][]int32, cols*cols)
	for i := range cells {
		cells[i] = make([]int32, 0, 4)
	}
	return &TrailIndex{
		cellSize: cellSize,
		width:    width,
		cols:     cols,
		rows:     cols,
		cells:    cells,
	}
}

// Clear removes all segments.
func (ix *TrailIndex) Clear() {
	for i := range ix.cells {
		ix.cells[i] = ix.cells[i][:0]
	}
	ix.segs = ix.segs[:0]
}

// Len returns the number of indexed segments.
func (ix *TrailIndex) Len() int {
	return len(ix.segs)
}

// Insert adds a laid segment. Every cycle's wall blocks every cycle,
// its own included, so segments carry no owner.
func (ix *TrailIndex) Insert(s geom.Segment) {
	id := int32(len(ix.segs))
	ix.segs = append(ix.segs, s)

	end := s.End()
	c0, r0 := ix.cell(math.Min(s.Start.X, end.X)-ix.width, math.Min(s.Start.Y, end.Y)-ix.width)
	c1, r1 := ix.cell(math.Max(s.Start.X, end.X)+ix.width, math.Max(s.Start.Y, end.Y)+ix.width)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			idx := r*ix.cols + c
			ix.cells[idx] = append(ix.cells[idx], id)
		}
	}
}

// Hit reports whether p lies within the trail width of any segment.
func (ix *TrailIndex) Hit(p geom.Vec) bool {
	c, r := ix.cell(p.X, p.Y)
	for _, id := range ix.cells[r*ix.cols+c] {
		if geom.PointSegmentDist(p, ix.segs[id]) < ix.width {
			return true
		}
	}
	return false
}

// cell returns the clamped grid cell containing (x, y).
func (ix *TrailIndex) cell(x, y float64) (col, row int) {
	col = int(math.Floor(x / ix.cellSize))
	row = int(math.Floor(y / ix.cellSize))
	col = min(max(col, 0), ix.cols-1)
	row = min(max(row, 0), ix.rows-1)
	return col, row
}
