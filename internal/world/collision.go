package world

import (
	"cmp"
	"slices"

	"github.com/tomz197/vecteroids/internal/audio"
	"github.com/tomz197/vecteroids/internal/game"
	"github.com/tomz197/vecteroids/internal/object"
	"github.com/tomz197/vecteroids/internal/physics"
)

// collidables holds the live entities of one collision pass, in list order.
type collidables struct {
	asteroids   []*object.Asteroid
	projectiles []*object.Projectile
	ufos        []*object.UFO
}

func (w *World) collect() collidables {
	var c collidables
	for _, e := range w.entities {
		if !e.IsAlive() {
			continue
		}
		switch o := e.(type) {
		case *object.Asteroid:
			c.asteroids = append(c.asteroids, o)
		case *object.Projectile:
			c.projectiles = append(c.projectiles, o)
		case *object.UFO:
			c.ufos = append(c.ufos, o)
		}
	}
	return c
}

// collide runs every collision category once. Asteroid fragments are added
// to the world after the pass so they cannot be hit in the frame they appear.
func (w *World) collide() {
	c := w.collect()

	w.grid.Clear()
	for i, a := range c.asteroids {
		w.grid.Insert(a.Position(), i)
	}

	var fragments []*object.Asteroid
	hits := 0
	shipHittable := w.ship != nil && w.ship.IsAlive() && !w.ship.IsInvulnerable(w.now)

	// Ship against asteroids.
	if shipHittable {
		shipBounds := w.ship.BoundingCircle()
		shipHull, _ := w.ship.Hull()
		for _, i := range w.asteroidsNear(w.ship.Position()) {
			a := c.asteroids[i]
			if !a.IsAlive() || !physics.CircleCollision(shipBounds, a.BoundingCircle()) {
				continue
			}
			if hull, ok := a.Hull(); ok && physics.HullsIntersect(shipHull, hull) {
				w.destroyShip()
				fragments = append(fragments, w.destroyAsteroid(a)...)
				hits++
				break
			}
		}
	}

	// UFOs against asteroids; the asteroid survives.
	for _, u := range c.ufos {
		ufoBounds := u.BoundingCircle()
		ufoHull, _ := u.Hull()
		for _, i := range w.asteroidsNear(u.Position()) {
			a := c.asteroids[i]
			if !u.IsAlive() {
				break
			}
			if !a.IsAlive() || !physics.CircleCollision(ufoBounds, a.BoundingCircle()) {
				continue
			}
			if hull, ok := a.Hull(); ok && physics.HullsIntersect(ufoHull, hull) {
				w.destroyUFO(u)
			}
		}
	}

	// Projectiles against asteroids, asteroid order first.
	for _, pair := range w.projectileAsteroidPairs(c) {
		a, p := c.asteroids[pair.asteroid], c.projectiles[pair.projectile]
		if !a.IsAlive() || !p.IsAlive() {
			continue
		}
		if !physics.CircleCollision(p.BoundingCircle(), a.BoundingCircle()) {
			continue
		}
		if hull, ok := a.Hull(); ok && physics.PointInPolygon(p.Position(), hull) {
			p.Destroy()
			fragments = append(fragments, w.destroyAsteroid(a)...)
			hits++
		}
	}

	// UFO fire against the ship.
	if shipHittable && w.ship.IsAlive() {
		shipBounds := w.ship.BoundingCircle()
		shipHull, _ := w.ship.Hull()
		for _, p := range c.projectiles {
			if !p.IsAlive() || p.Owner() != object.KindUFO {
				continue
			}
			if physics.CircleCollision(p.BoundingCircle(), shipBounds) && physics.PointInPolygon(p.Position(), shipHull) {
				p.Destroy()
				w.destroyShip()
				break
			}
		}
	}

	// Ship fire against UFOs.
	for _, u := range c.ufos {
		if !u.IsAlive() {
			continue
		}
		ufoBounds := u.BoundingCircle()
		ufoHull, _ := u.Hull()
		for _, p := range c.projectiles {
			if !p.IsAlive() || p.Owner() != object.KindShip {
				continue
			}
			if physics.CircleCollision(p.BoundingCircle(), ufoBounds) && physics.PointInPolygon(p.Position(), ufoHull) {
				p.Destroy()
				w.destroyUFO(u)
				break
			}
		}
	}

	for _, f := range fragments {
		w.entities = append(w.entities, f)
	}
	if hits > 0 && w.state.Status.Active() {
		w.playBeat()
	}
}

// asteroidsNear returns the indices of asteroids in the grid neighborhood of
// p in ascending list order.
func (w *World) asteroidsNear(p physics.Vector2) []int {
	var idx []int
	w.grid.QueryAround(p, func(i int) bool {
		idx = append(idx, i)
		return false
	})
	slices.Sort(idx)
	return idx
}

type hitPair struct {
	asteroid   int
	projectile int
}

// projectileAsteroidPairs lists the grid candidates ordered by asteroid then projectile.
func (w *World) projectileAsteroidPairs(c collidables) []hitPair {
	var pairs []hitPair
	for j, p := range c.projectiles {
		w.grid.QueryAround(p.BoundingCircle().Center, func(i int) bool {
			pairs = append(pairs, hitPair{asteroid: i, projectile: j})
			return false
		})
	}
	slices.SortFunc(pairs, func(a, b hitPair) int {
		return cmp.Or(cmp.Compare(a.asteroid, b.asteroid), cmp.Compare(a.projectile, b.projectile))
	})
	return pairs
}

// destroyShip explodes the ship and costs a life.
func (w *World) destroyShip() {
	w.effects = append(w.effects, object.NewExplosion(w.rng, object.ExplosionShip, w.ship.Position()))
	w.sink.PlaySound(audio.CueExplosion)
	w.Dispatch(game.ShipDestroyed(w.now))
	w.ship.Destroy()
}

// destroyAsteroid explodes and scores a, returning its fragments.
func (w *World) destroyAsteroid(a *object.Asteroid) []*object.Asteroid {
	w.effects = append(w.effects, object.NewExplosion(w.rng, object.ExplosionAsteroid, a.Position()))
	w.sink.PlaySound(audio.CueExplosion)
	w.Dispatch(game.AsteroidDestroyed(a.Size()))
	return a.Split()
}

func (w *World) destroyUFO(u *object.UFO) {
	w.effects = append(w.effects, object.NewExplosion(w.rng, object.ExplosionUFO, u.Position()))
	w.sink.PlaySound(audio.CueExplosion)
	w.Dispatch(game.UFODestroyed(u.Size()))
	u.Destroy()
}
