package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/physics"
)

// ExplosionKind selects the explosion pattern.
type ExplosionKind int

const (
	ExplosionShip ExplosionKind = iota
	ExplosionAsteroid
	ExplosionUFO
)

// Initial length of every explosion line.
const explosionStartLength = 20.0

type explosionPattern int

const (
	patternRadial explosionPattern = iota // evenly spread with a little jitter
	patternSplit                          // alternating pairs pushed apart
	patternSpiral                         // angle skewed by index
)

type explosionConfig struct {
	lines     int
	maxLength float64
	speed     float64
	duration  time.Duration
	pattern   explosionPattern
}

var explosionConfigs = map[ExplosionKind]explosionConfig{
	ExplosionShip:     {lines: 12, maxLength: 70, speed: 400, duration: 500 * time.Millisecond, pattern: patternRadial},
	ExplosionAsteroid: {lines: 8, maxLength: 50, speed: 400, duration: 375 * time.Millisecond, pattern: patternSplit},
	ExplosionUFO:      {lines: 10, maxLength: 50, speed: 400, duration: 400 * time.Millisecond, pattern: patternSpiral},
}

type explosionLine struct {
	angle        float64
	rotation     float64
	rotationRate float64
	speed        float64
	maxLength    float64
}

// Explosion is a short-lived burst of lines radiating from a point.
// It is a visual effect only and never collides.
type Explosion struct {
	center   physics.Vector2
	lines    []explosionLine
	age      time.Duration
	duration time.Duration
}

// NewExplosion creates an explosion of the given kind at center.
func NewExplosion(rng *rand.Rand, kind ExplosionKind, center physics.Vector2) *Explosion {
	cfg, ok := explosionConfigs[kind]
	if !ok {
		cfg = explosionConfigs[ExplosionAsteroid]
	}

	lines := make([]explosionLine, cfg.lines)
	for i := range lines {
		frac := float64(i) / float64(cfg.lines)
		angle := frac * 2 * math.Pi

		switch cfg.pattern {
		case patternSplit:
			if i%2 == 0 {
				angle += 0.2
			} else {
				angle -= 0.2
			}
			angle += rng.Float64() * 0.1
		case patternSpiral:
			angle += frac * math.Pi
		case patternRadial:
			angle += rng.Float64()*0.3 - 0.15
		}

		lines[i] = explosionLine{
			angle:        angle,
			rotationRate: (rng.Float64() - 0.5) * 2 * math.Pi,
			speed:        cfg.speed * (0.8 + rng.Float64()*0.4),
			maxLength:    cfg.maxLength * (0.85 + rng.Float64()*0.3),
		}
	}

	return &Explosion{
		center:   center,
		lines:    lines,
		duration: cfg.duration,
	}
}

// Center returns the origin of the burst.
func (e *Explosion) Center() physics.Vector2 { return e.center }

// IsAlive reports whether the effect is still running.
func (e *Explosion) IsAlive() bool { return e.age <= e.duration }

// Update ages the effect and spins its lines.
func (e *Explosion) Update(dt time.Duration) {
	e.age += dt
	for i := range e.lines {
		e.lines[i].rotation += e.lines[i].rotationRate * dt.Seconds()
	}
}

// Draw renders each line from the center, growing with an ease-out curve.
func (e *Explosion) Draw(s draw.Surface) {
	if !e.IsAlive() {
		return
	}
	t := math.Min(1, e.age.Seconds()*2)
	expansion := t * (2 - t)

	for _, l := range e.lines {
		length := math.Min(explosionStartLength+l.speed*expansion, l.maxLength)
		end := e.center.Add(physics.FromAngle(l.angle+l.rotation, length))
		s.DrawLine(e.center, end)
	}
}
