package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/physics"
)

const strokeWidth = 2

var foreground = color.RGBA{230, 230, 230, 255}

// surface draws world-space lines onto an ebiten image sized to the world.
type surface struct {
	dst *ebiten.Image
}

var _ draw.Surface = (*surface)(nil)

func (s *surface) Clear() {
	s.dst.Fill(background)
}

// toScreen maps world coordinates (origin centered, y up) to image pixels.
func toScreen(p physics.Vector2) (float32, float32) {
	b := physics.WorldBounds
	return float32(p.X - b.Left), float32(b.Top - p.Y)
}

func (s *surface) DrawLine(p0, p1 physics.Vector2) {
	if !p0.IsFinite() || !p1.IsFinite() {
		return
	}
	x0, y0 := toScreen(p0)
	x1, y1 := toScreen(p1)
	vector.StrokeLine(s.dst, x0, y0, x1, y1, strokeWidth, foreground, true)
}

func (s *surface) DrawShape(points []physics.Vector2) {
	for i := range points {
		s.DrawLine(points[i], points[(i+1)%len(points)])
	}
}
