package object

import (
	"math"
	"time"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/physics"
)

// Ship tuning.
const (
	ShipThrust          = 400.0 // units/s²
	ShipDrag            = 0.7   // units/s², opposite to velocity
	ShipMaxSpeed        = 600.0 // units/s
	ShipRotationSpeed   = 4.0   // radians/s
	ShipSize            = 22.5
	ShipNoseOffset      = 30.0 // projectile spawn distance ahead of the center
	ShipProjectileSpeed = 1200.0

	ShipFireCooldown    = 250 * time.Millisecond
	ShipInvulnerability = 3000 * time.Millisecond
	ShipFlashPeriod     = 100 * time.Millisecond
)

// shipShape is the hull triangle in local coordinates, nose up.
var shipShape = []physics.Vector2{
	{X: 0, Y: ShipSize},
	{X: -0.75 * ShipSize, Y: -ShipSize},
	{X: 0.75 * ShipSize, Y: -ShipSize},
}

// flameShape is drawn behind the hull while thrusting.
var flameShape = []physics.Vector2{
	{X: -0.4 * ShipSize, Y: -ShipSize},
	{X: 0, Y: -1.6 * ShipSize},
	{X: 0.4 * ShipSize, Y: -ShipSize},
}

// Ship is the player-controlled spaceship.
type Ship struct {
	pos      physics.Vector2
	vel      physics.Vector2
	rotation float64 // radians, 0 = facing up, increases counter-clockwise

	alive     bool
	thrusting bool

	fired             bool
	lastFire          time.Duration
	invulnerableUntil time.Duration
	now               time.Duration // clock of the last update, for flashing
}

// NewShip creates a live ship at pos facing up.
func NewShip(pos physics.Vector2) *Ship {
	return &Ship{pos: pos, alive: true}
}

func (s *Ship) sealed() {}

// Kind implements Entity.
func (s *Ship) Kind() Kind { return KindShip }

// Position implements Entity.
func (s *Ship) Position() physics.Vector2 { return s.pos }

// Velocity implements Entity.
func (s *Ship) Velocity() physics.Vector2 { return s.vel }

// Rotation returns the heading in radians.
func (s *Ship) Rotation() float64 { return s.rotation }

// Facing returns the unit vector the nose points along.
func (s *Ship) Facing() physics.Vector2 {
	return physics.Vec(-math.Sin(s.rotation), math.Cos(s.rotation))
}

// IsAlive implements Entity.
func (s *Ship) IsAlive() bool { return s.alive }

// Destroy implements Entity.
func (s *Ship) Destroy() {
	s.alive = false
	s.thrusting = false
}

// Thrusting reports whether thrust was applied in the last update.
func (s *Ship) Thrusting() bool { return s.thrusting }

// IsInvulnerable reports whether collisions ignore the ship at now.
func (s *Ship) IsInvulnerable(now time.Duration) bool {
	return now < s.invulnerableUntil
}

// Respawn revives the ship at pos with zero velocity and opens an
// invulnerability window of the given length starting at now.
func (s *Ship) Respawn(pos physics.Vector2, rotation float64, now, invulnerableFor time.Duration) {
	s.pos = pos
	s.vel = physics.Vector2{}
	s.rotation = rotation
	s.alive = true
	s.thrusting = false
	s.invulnerableUntil = now + invulnerableFor
	s.now = now
}

// Update handles rotation, shooting, thrust, drag, speed clamp and wrapping.
func (s *Ship) Update(ctx UpdateContext) error {
	s.now = ctx.Now
	if !s.alive {
		return nil
	}
	dt := ctx.Delta.Seconds()
	in := ctx.Controls

	// Left wins when both are held.
	switch {
	case in.RotateLeft:
		s.rotation += ShipRotationSpeed * dt
	case in.RotateRight:
		s.rotation -= ShipRotationSpeed * dt
	}

	if in.Fire {
		s.fire(ctx)
	}

	s.thrusting = in.Thrust
	if in.Thrust {
		s.vel = s.vel.Add(s.Facing().Scale(ShipThrust * dt))
	}

	// Drag never reverses the direction of travel.
	if speed := s.vel.Length(); speed > 0 {
		s.vel = s.vel.Scale(math.Max(speed-ShipDrag*dt, 0) / speed)
	}

	if speed := s.vel.Length(); speed > ShipMaxSpeed {
		s.vel = s.vel.Scale(ShipMaxSpeed / speed)
	}

	s.pos = ctx.bounds().Wrap(s.pos.Add(s.vel.Scale(dt)))

	return checkFinite(KindShip, s.pos, s.vel)
}

// fire emits a projectile intent from the nose, at most once per cooldown.
func (s *Ship) fire(ctx UpdateContext) {
	if ctx.Spawner == nil {
		return
	}
	if s.fired && ctx.Now-s.lastFire < ShipFireCooldown {
		return
	}

	facing := s.Facing()
	ctx.Spawner.SpawnProjectile(ProjectileIntent{
		Position: s.pos.Add(facing.Scale(ShipNoseOffset)),
		Velocity: facing.Scale(ShipProjectileSpeed),
		Owner:    KindShip,
	})
	s.fired = true
	s.lastFire = ctx.Now
}

// Hull implements Entity.
func (s *Ship) Hull() (physics.Hull, bool) {
	return physics.Hull{
		Points: physics.Transform(make([]physics.Vector2, 0, len(shipShape)), shipShape, s.rotation, s.pos),
		Closed: true,
	}, true
}

// BoundingCircle implements Entity.
func (s *Ship) BoundingCircle() physics.Circle {
	h, _ := s.Hull()
	return physics.BoundingCircle(h.Points)
}

// Visible reports whether the ship renders at now; invulnerable ships flash.
func (s *Ship) Visible(now time.Duration) bool {
	if !s.alive {
		return false
	}
	if !s.IsInvulnerable(now) {
		return true
	}
	return (now/ShipFlashPeriod)%2 != 0
}

// Draw renders the hull, plus the exhaust flame while thrusting.
func (s *Ship) Draw(surface draw.Surface) {
	if !s.Visible(s.now) {
		return
	}
	h, _ := s.Hull()
	surface.DrawShape(h.Points)

	if s.thrusting {
		var buf [3]physics.Vector2
		flame := physics.Transform(buf[:0], flameShape, s.rotation, s.pos)
		surface.DrawLine(flame[0], flame[1])
		surface.DrawLine(flame[1], flame[2])
	}
}
