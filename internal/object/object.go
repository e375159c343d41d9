// Package object implements the simulated entities: the ship, asteroids,
// projectiles, UFOs and the explosion effect.
package object

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/physics"
)

// ErrInvalidState is returned by Update when an entity's kinematics stop being finite.
var ErrInvalidState = errors.New("invalid entity state")

// Kind identifies the concrete entity variant.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindProjectile
	KindUFO
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindProjectile:
		return "projectile"
	case KindUFO:
		return "ufo"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entity is a simulated game object. The set of implementations is closed:
// *Ship, *Asteroid, *Projectile and *UFO.
type Entity interface {
	Kind() Kind

	// Update advances the entity by ctx.Delta. An error means the entity is in
	// an unrecoverable state and should be destroyed.
	Update(ctx UpdateContext) error

	// Draw renders the entity; dead entities draw nothing.
	Draw(s draw.Surface)

	Position() physics.Vector2
	Velocity() physics.Vector2
	BoundingCircle() physics.Circle

	// Hull returns the narrow-phase outline in world coordinates.
	Hull() (physics.Hull, bool)

	IsAlive() bool
	Destroy()

	sealed()
}

// Controls is the held-key snapshot the ship reads each frame.
type Controls struct {
	Thrust      bool
	RotateLeft  bool
	RotateRight bool
	Fire        bool
}

// ProjectileIntent asks the world to create a projectile after the update pass.
type ProjectileIntent struct {
	Position physics.Vector2
	Velocity physics.Vector2
	Owner    Kind
}

// Spawner receives spawn intents emitted during update.
type Spawner interface {
	SpawnProjectile(intent ProjectileIntent)
}

// Target is a snapshot of the entity UFOs aim at.
type Target struct {
	Position physics.Vector2
	Velocity physics.Vector2
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta    time.Duration
	Now      time.Duration // simulation clock, already advanced by Delta
	Controls Controls
	Bounds   physics.Bounds
	Spawner  Spawner // nil disables firing
	Target   *Target // nil when there is nothing to aim at
}

// bounds returns the wrap bounds, defaulting to the world.
func (ctx UpdateContext) bounds() physics.Bounds {
	if ctx.Bounds == (physics.Bounds{}) {
		return physics.WorldBounds
	}
	return ctx.Bounds
}

// checkFinite reports ErrInvalidState for a kind whose position or velocity went non-finite.
func checkFinite(k Kind, pos, vel physics.Vector2) error {
	if !pos.IsFinite() || !vel.IsFinite() {
		return fmt.Errorf("%s at %v moving %v: %w", k, pos, vel, ErrInvalidState)
	}
	return nil
}
