package object

import (
	"time"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/physics"
)

// Projectile tuning.
const (
	ProjectileLifetime = 2000 * time.Millisecond
	ProjectileLength   = 13.33
)

// Projectile is a shot fired by the ship or a UFO.
type Projectile struct {
	pos       physics.Vector2
	vel       physics.Vector2
	owner     Kind
	spawnedAt time.Duration
	alive     bool
}

// NewProjectile creates a live projectile fired by owner at now.
func NewProjectile(pos, vel physics.Vector2, owner Kind, now time.Duration) *Projectile {
	return &Projectile{
		pos:       pos,
		vel:       vel,
		owner:     owner,
		spawnedAt: now,
		alive:     true,
	}
}

func (p *Projectile) sealed() {}

// Kind implements Entity.
func (p *Projectile) Kind() Kind { return KindProjectile }

// Owner returns the kind of entity that fired the projectile.
func (p *Projectile) Owner() Kind { return p.owner }

// Position implements Entity.
func (p *Projectile) Position() physics.Vector2 { return p.pos }

// Velocity implements Entity.
func (p *Projectile) Velocity() physics.Vector2 { return p.vel }

// IsAlive implements Entity.
func (p *Projectile) IsAlive() bool { return p.alive }

// Destroy implements Entity.
func (p *Projectile) Destroy() { p.alive = false }

// Update expires the projectile once its lifetime has passed, otherwise moves it.
func (p *Projectile) Update(ctx UpdateContext) error {
	if !p.alive {
		return nil
	}
	if ctx.Now-p.spawnedAt > ProjectileLifetime {
		p.alive = false
		return nil
	}
	p.pos = ctx.bounds().Wrap(p.pos.Add(p.vel.Scale(ctx.Delta.Seconds())))
	return checkFinite(KindProjectile, p.pos, p.vel)
}

// Tip returns the leading end of the projectile's streak.
func (p *Projectile) Tip() physics.Vector2 {
	return p.pos.Add(p.vel.Normalize().Scale(ProjectileLength))
}

// Hull implements Entity; a projectile's hull is its open streak segment.
func (p *Projectile) Hull() (physics.Hull, bool) {
	return physics.Hull{Points: []physics.Vector2{p.pos, p.Tip()}}, true
}

// BoundingCircle is centered on the streak's midpoint with half its length as radius.
func (p *Projectile) BoundingCircle() physics.Circle {
	tip := p.Tip()
	return physics.Circle{
		Center: p.pos.Add(tip).Scale(0.5),
		Radius: ProjectileLength / 2,
	}
}

// Draw renders the projectile as a short streak.
func (p *Projectile) Draw(s draw.Surface) {
	if !p.alive {
		return
	}
	s.DrawLine(p.pos, p.Tip())
}
