// Package draw provides render surfaces for the simulation: the Surface
// contract entities draw onto, a terminal raster canvas and a recorder.
package draw

import (
	"slices"

	"github.com/tomz197/vecteroids/internal/physics"
)

// Half-block characters used by the terminal canvas.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Surface is a vector render target in world coordinates (origin centered, y up).
type Surface interface {
	// Clear erases the previous frame.
	Clear()
	// DrawLine strokes a single segment.
	DrawLine(p0, p1 physics.Vector2)
	// DrawShape strokes a closed polygon through points.
	DrawShape(points []physics.Vector2)
}

// Recorder is a Surface that remembers what was drawn since the last Clear.
type Recorder struct {
	Lines  [][2]physics.Vector2
	Shapes [][]physics.Vector2
	Clears int
}

var _ Surface = (*Recorder)(nil)

// Clear implements Surface.
func (r *Recorder) Clear() {
	r.Lines = r.Lines[:0]
	r.Shapes = r.Shapes[:0]
	r.Clears++
}

// DrawLine implements Surface.
func (r *Recorder) DrawLine(p0, p1 physics.Vector2) {
	r.Lines = append(r.Lines, [2]physics.Vector2{p0, p1})
}

// DrawShape implements Surface. The points are copied.
func (r *Recorder) DrawShape(points []physics.Vector2) {
	r.Shapes = append(r.Shapes, slices.Clone(points))
}

// Empty reports whether nothing was drawn since the last Clear.
func (r *Recorder) Empty() bool {
	return len(r.Lines) == 0 && len(r.Shapes) == 0
}
