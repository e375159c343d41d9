// Package physics provides the geometry used by the simulation: vectors,
// world bounds with toroidal wrapping, bounding circles, polygon hulls and
// the intersection tests between them.
package physics

import "math"

// World dimensions. The play field is centered on the origin with y pointing up.
const (
	WorldWidth  = 1920.0
	WorldHeight = 1080.0
)

// Bounds is an axis-aligned rectangle in world coordinates.
type Bounds struct {
	Left, Right, Bottom, Top float64
}

// WorldBounds is the toroidal play field every entity wraps around.
var WorldBounds = Bounds{
	Left:   -WorldWidth / 2,
	Right:  WorldWidth / 2,
	Bottom: -WorldHeight / 2,
	Top:    WorldHeight / 2,
}

// Width returns the horizontal extent of b.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of b.
func (b Bounds) Height() float64 {
	return b.Top - b.Bottom
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Vector2) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Bottom && p.Y <= b.Top
}

// Wrap teleports a position that crossed an edge to the opposite edge
// (Asteroids-style). Positions already inside b are returned unchanged.
func (b Bounds) Wrap(p Vector2) Vector2 {
	if p.X < b.Left {
		p.X = b.Right
	} else if p.X > b.Right {
		p.X = b.Left
	}
	if p.Y > b.Top {
		p.Y = b.Bottom
	} else if p.Y < b.Bottom {
		p.Y = b.Top
	}
	return p
}

// Circle is a bounding circle used for the broad collision phase.
type Circle struct {
	Center Vector2
	Radius float64
}

// BoundingCircle returns the circle centered on the mean of points whose radius
// is the greatest distance from that center to any point.
func BoundingCircle(points []Vector2) Circle {
	if len(points) == 0 {
		return Circle{}
	}

	var sum Vector2
	for _, p := range points {
		sum = sum.Add(p)
	}
	center := sum.Scale(1 / float64(len(points)))

	maxSq := 0.0
	for _, p := range points {
		if d := center.DistanceSquared(p); d > maxSq {
			maxSq = d
		}
	}

	return Circle{Center: center, Radius: math.Sqrt(maxSq)}
}

// CircleCollision reports whether two circles overlap. Touching circles do not collide.
func CircleCollision(a, b Circle) bool {
	minDist := a.Radius + b.Radius
	return a.Center.DistanceSquared(b.Center) < minDist*minDist
}
