package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection in a wrapping world.
// Items are inserted by position and index, then nearby items can be queried
// in O(1) per cell via a 3x3 neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding items so that all potential collisions are found within
// the 3x3 neighborhood.
type SpatialGrid struct {
	bounds      Bounds
	invCellSize float64 // 1 / cellSize
	cols        int
	rows        int
	cells       [][]int // item indices per cell, reused between frames
}

// NewSpatialGrid creates a spatial grid covering bounds.
func NewSpatialGrid(bounds Bounds, cellSize float64) *SpatialGrid {
	cols := max(int(math.Ceil(bounds.Width()/cellSize)), 1)
	rows := max(int(math.Ceil(bounds.Height()/cellSize)), 1)

	return &SpatialGrid{
		bounds:      bounds,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item (identified by index) at the given world position.
func (g *SpatialGrid) Insert(p Vector2, index int) {
	col, row := g.cellOf(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around p, wrapping at the world edges. Each index is visited at most once,
// even when the grid is narrower than three cells.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(p Vector2, fn func(index int) bool) {
	col, row := g.cellOf(p)

	var seen [9]int
	n := 0
	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			cell := r*g.cols + c

			dup := false
			for _, s := range seen[:n] {
				if s == cell {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			seen[n] = cell
			n++

			for _, item := range g.cells[cell] {
				if fn(item) {
					return
				}
			}
		}
	}
}

// cellOf converts a world position to grid cell coordinates,
// clamped to the valid range.
func (g *SpatialGrid) cellOf(p Vector2) (col, row int) {
	col = int((p.X - g.bounds.Left) * g.invCellSize)
	row = int((p.Y - g.bounds.Bottom) * g.invCellSize)
	return min(max(col, 0), g.cols-1), min(max(row, 0), g.rows-1)
}
