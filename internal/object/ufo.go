package object

import (
	"fmt"
	"time"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/physics"
)

// UFOSize is the size class of a UFO.
type UFOSize int

const (
	UFOLarge UFOSize = iota
	UFOSmall
)

// UFOSpeed is the travel speed of every UFO.
const UFOSpeed = 200.0

func (s UFOSize) String() string {
	switch s {
	case UFOLarge:
		return "large"
	case UFOSmall:
		return "small"
	default:
		return fmt.Sprintf("UFOSize(%d)", int(s))
	}
}

// Width returns the saucer width in world units.
func (s UFOSize) Width() float64 {
	if s == UFOSmall {
		return 16.875
	}
	return 33.75
}

// FireDelay is the minimum time between shots.
func (s UFOSize) FireDelay() time.Duration {
	if s == UFOSmall {
		return 1000 * time.Millisecond
	}
	return 2000 * time.Millisecond
}

// ShotSpeed is the speed of the UFO's projectiles.
func (s UFOSize) ShotSpeed() float64 {
	if s == UFOSmall {
		return 2000
	}
	return 1200
}

// ufoShape returns the saucer outline in local coordinates: the upper hull
// quad, the three dome points and the two bottom-line points.
func ufoShape(size UFOSize) []physics.Vector2 {
	w := size.Width()
	h := w / 2
	return []physics.Vector2{
		{X: -w / 2, Y: h / 4},
		{X: -w / 4, Y: -h / 2},
		{X: w / 4, Y: -h / 2},
		{X: w / 2, Y: h / 4},

		{X: -0.375 * w, Y: h / 4},
		{X: 0, Y: h / 2},
		{X: 0.375 * w, Y: h / 4},

		{X: -w / 4, Y: -h / 2},
		{X: w / 4, Y: -h / 2},
	}
}

// UFO is a flying saucer that drifts across the field shooting at the ship.
type UFO struct {
	pos      physics.Vector2
	vel      physics.Vector2
	size     UFOSize
	shape    []physics.Vector2
	lastFire time.Duration
	alive    bool
}

// NewUFO creates a live UFO. Its first shot comes one fire delay after now.
func NewUFO(size UFOSize, pos, vel physics.Vector2, now time.Duration) *UFO {
	return &UFO{
		pos:      pos,
		vel:      vel,
		size:     size,
		shape:    ufoShape(size),
		lastFire: now,
		alive:    true,
	}
}

func (u *UFO) sealed() {}

// Kind implements Entity.
func (u *UFO) Kind() Kind { return KindUFO }

// Size returns the size class.
func (u *UFO) Size() UFOSize { return u.size }

// Position implements Entity.
func (u *UFO) Position() physics.Vector2 { return u.pos }

// Velocity implements Entity.
func (u *UFO) Velocity() physics.Vector2 { return u.vel }

// IsAlive implements Entity.
func (u *UFO) IsAlive() bool { return u.alive }

// Destroy implements Entity.
func (u *UFO) Destroy() { u.alive = false }

// Update moves the UFO and fires at the target when the delay has passed.
// Without a spawner or a target the UFO only moves.
func (u *UFO) Update(ctx UpdateContext) error {
	if !u.alive {
		return nil
	}
	u.pos = ctx.bounds().Wrap(u.pos.Add(u.vel.Scale(ctx.Delta.Seconds())))

	if ctx.Spawner != nil && ctx.Target != nil && ctx.Now-u.lastFire >= u.size.FireDelay() {
		dir := ctx.Target.Position.Sub(u.pos).Normalize()
		ctx.Spawner.SpawnProjectile(ProjectileIntent{
			Position: u.pos,
			Velocity: dir.Scale(u.size.ShotSpeed()),
			Owner:    KindUFO,
		})
		u.lastFire = ctx.Now
	}

	return checkFinite(KindUFO, u.pos, u.vel)
}

// points returns the full outline translated to the UFO's position.
func (u *UFO) points() []physics.Vector2 {
	return physics.Transform(make([]physics.Vector2, 0, len(u.shape)), u.shape, 0, u.pos)
}

// Hull implements Entity; the hull is the closed upper quad.
func (u *UFO) Hull() (physics.Hull, bool) {
	return physics.Hull{Points: u.points()[:4], Closed: true}, true
}

// BoundingCircle implements Entity.
func (u *UFO) BoundingCircle() physics.Circle {
	return physics.BoundingCircle(u.points())
}

// Draw renders the saucer body, dome and bottom line.
func (u *UFO) Draw(s draw.Surface) {
	if !u.alive {
		return
	}
	pts := u.points()
	s.DrawShape(pts[:4])
	s.DrawLine(pts[4], pts[5])
	s.DrawLine(pts[5], pts[6])
	s.DrawLine(pts[7], pts[8])
}
