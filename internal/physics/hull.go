package physics

import "math"

// parallelTolerance is the |cross| below which two segments are treated as parallel.
const parallelTolerance = 1e-10

// Segment is a line segment between two points.
type Segment struct {
	A, B Vector2
}

// Hull is an ordered polygon outline used for the narrow collision phase.
// A closed hull has an implicit edge from the last point back to the first.
type Hull struct {
	Points []Vector2
	Closed bool
}

// Segments returns consecutive point pairs, plus the closing edge when the hull is closed.
func (h Hull) Segments() []Segment {
	n := len(h.Points)
	if n < 2 {
		return nil
	}

	segs := make([]Segment, 0, n)
	for i := 0; i+1 < n; i++ {
		segs = append(segs, Segment{A: h.Points[i], B: h.Points[i+1]})
	}
	if h.Closed && n > 2 {
		segs = append(segs, Segment{A: h.Points[n-1], B: h.Points[0]})
	}
	return segs
}

// SegmentsIntersect reports whether a and b cross, using the parametric
// cross-product test. Parallel and collinear segments never intersect.
func SegmentsIntersect(a, b Segment) bool {
	r := a.B.Sub(a.A)
	s := b.B.Sub(b.A)

	denom := r.Cross(s)
	if math.Abs(denom) < parallelTolerance {
		return false
	}

	qp := b.A.Sub(a.A)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom

	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// PointInPolygon reports whether p lies inside the closed hull using even-odd
// ray casting. Open hulls contain nothing.
func PointInPolygon(p Vector2, h Hull) bool {
	if !h.Closed || len(h.Points) < 3 {
		return false
	}

	inside := false
	pts := h.Points
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// HullsIntersect reports whether any edge of a crosses any edge of b.
func HullsIntersect(a, b Hull) bool {
	segsB := b.Segments()
	for _, sa := range a.Segments() {
		for _, sb := range segsB {
			if SegmentsIntersect(sa, sb) {
				return true
			}
		}
	}
	return false
}

// Transform returns the points of shape rotated by angle and translated to origin.
// Write into dst when it has enough capacity to avoid allocating.
func Transform(dst, shape []Vector2, angle float64, origin Vector2) []Vector2 {
	dst = dst[:0]
	sin, cos := math.Sincos(angle)
	for _, p := range shape {
		dst = append(dst, Vector2{
			X: p.X*cos - p.Y*sin + origin.X,
			Y: p.X*sin + p.Y*cos + origin.Y,
		})
	}
	return dst
}
