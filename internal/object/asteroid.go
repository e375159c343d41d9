package object

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/physics"
)

// AsteroidSize represents the size category of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall  AsteroidSize = 1
	AsteroidMedium AsteroidSize = 2
	AsteroidLarge  AsteroidSize = 3
)

// Child velocity and spin multiplier applied on split.
const asteroidSplitBoost = 1.5

func (s AsteroidSize) String() string {
	switch s {
	case AsteroidSmall:
		return "small"
	case AsteroidMedium:
		return "medium"
	case AsteroidLarge:
		return "large"
	default:
		return fmt.Sprintf("AsteroidSize(%d)", int(s))
	}
}

// Valid reports whether s is one of the three known sizes.
func (s AsteroidSize) Valid() bool {
	return s >= AsteroidSmall && s <= AsteroidLarge
}

// Radius returns the nominal radius in world units, 0 for unknown sizes.
func (s AsteroidSize) Radius() float64 {
	switch s {
	case AsteroidSmall:
		return 11.25
	case AsteroidMedium:
		return 22.5
	case AsteroidLarge:
		return 45
	default:
		return 0
	}
}

// Weight is the size's contribution to the background beat tempo.
// Unknown sizes weigh nothing and are reported.
func (s AsteroidSize) Weight() float64 {
	switch s {
	case AsteroidLarge:
		return 1
	case AsteroidMedium:
		return 0.5
	case AsteroidSmall:
		return 0.25
	default:
		log.Warn("unknown asteroid size", "size", int(s))
		return 0
	}
}

// splitAngle is how far each child's heading turns away from the parent's.
func (s AsteroidSize) splitAngle() float64 {
	if s == AsteroidLarge {
		return math.Pi / 4
	}
	return math.Pi / 3
}

// Asteroid is a drifting, spinning rock that splits when destroyed.
type Asteroid struct {
	pos          physics.Vector2
	vel          physics.Vector2
	rotation     float64
	rotationRate float64 // radians/s
	size         AsteroidSize
	shape        []physics.Vector2 // local outline, generated once
	alive        bool
	rng          *rand.Rand
}

// NewAsteroid creates an asteroid with a freshly generated irregular outline.
// rng drives the outline and is reused for the children on split.
func NewAsteroid(rng *rand.Rand, size AsteroidSize, pos, vel physics.Vector2, rotationRate float64) *Asteroid {
	return &Asteroid{
		pos:          pos,
		vel:          vel,
		rotationRate: rotationRate,
		size:         size,
		shape:        asteroidShape(rng, size.Radius()),
		alive:        true,
		rng:          rng,
	}
}

// asteroidShape generates 8-12 vertices with ±30% radius and ±15° angle jitter.
func asteroidShape(rng *rand.Rand, radius float64) []physics.Vector2 {
	n := 8 + rng.Intn(5)
	shape := make([]physics.Vector2, n)
	for i := range shape {
		angle := float64(i)/float64(n)*2*math.Pi + (rng.Float64()-0.5)*math.Pi/6
		shape[i] = physics.FromAngle(angle, radius*(0.7+rng.Float64()*0.6))
	}
	return shape
}

func (a *Asteroid) sealed() {}

// Kind implements Entity.
func (a *Asteroid) Kind() Kind { return KindAsteroid }

// Size returns the size category.
func (a *Asteroid) Size() AsteroidSize { return a.size }

// Position implements Entity.
func (a *Asteroid) Position() physics.Vector2 { return a.pos }

// Velocity implements Entity.
func (a *Asteroid) Velocity() physics.Vector2 { return a.vel }

// Rotation returns the current spin angle in radians.
func (a *Asteroid) Rotation() float64 { return a.rotation }

// RotationRate returns the spin in radians per second.
func (a *Asteroid) RotationRate() float64 { return a.rotationRate }

// IsAlive implements Entity.
func (a *Asteroid) IsAlive() bool { return a.alive }

// Destroy implements Entity. Use Split to also obtain the fragments.
func (a *Asteroid) Destroy() { a.alive = false }

// Update spins and moves the asteroid.
func (a *Asteroid) Update(ctx UpdateContext) error {
	if !a.alive {
		return nil
	}
	dt := ctx.Delta.Seconds()
	a.rotation += a.rotationRate * dt
	a.pos = ctx.bounds().Wrap(a.pos.Add(a.vel.Scale(dt)))
	return checkFinite(KindAsteroid, a.pos, a.vel)
}

// Split destroys the asteroid and returns its fragments: none for small
// asteroids, otherwise two of the next size down, spawned at the death
// position with headings turned either way and boosted speed and spin.
func (a *Asteroid) Split() []*Asteroid {
	a.alive = false
	if a.size <= AsteroidSmall || !a.size.Valid() {
		return nil
	}

	childSize := a.size - 1
	turn := a.size.splitAngle()
	children := make([]*Asteroid, 0, 2)
	for _, sign := range [2]float64{1, -1} {
		vel := a.vel.Rotate(sign * turn).Scale(asteroidSplitBoost)
		children = append(children, NewAsteroid(a.rng, childSize, a.pos, vel, a.rotationRate*asteroidSplitBoost))
	}
	return children
}

// Hull implements Entity.
func (a *Asteroid) Hull() (physics.Hull, bool) {
	return physics.Hull{
		Points: physics.Transform(make([]physics.Vector2, 0, len(a.shape)), a.shape, a.rotation, a.pos),
		Closed: true,
	}, true
}

// BoundingCircle implements Entity.
func (a *Asteroid) BoundingCircle() physics.Circle {
	h, _ := a.Hull()
	return physics.BoundingCircle(h.Points)
}

// Draw renders the asteroid as an irregular polygon.
func (a *Asteroid) Draw(s draw.Surface) {
	if !a.alive {
		return
	}
	h, _ := a.Hull()
	s.DrawShape(h.Points)
}
