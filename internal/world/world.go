// Package world runs the simulation: it owns the entities, advances them,
// resolves collisions and keeps game state, effects and sound in step.
package world

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vecteroids/internal/audio"
	"github.com/tomz197/vecteroids/internal/game"
	"github.com/tomz197/vecteroids/internal/object"
	"github.com/tomz197/vecteroids/internal/physics"
)

// Session tuning.
const (
	MaxShipProjectiles = 4
	MaxUFOProjectiles  = 2

	StagePause    = 2 * time.Second
	GameOverPause = 10 * time.Second

	FirstUFODelay  = 20 * time.Second
	UFOMinInterval = 15 * time.Second
	UFOMaxInterval = 30 * time.Second
	SmallUFOScore  = 40000

	// gridCellSize covers the largest asteroid bounding circle plus the largest
	// ship or UFO bounding circle.
	gridCellSize = 128.0
)

// ufoAvoidRadius is how close to the ship a UFO may spawn before its spawn
// point is mirrored through the origin.
var ufoAvoidRadius = 0.2 * math.Max(physics.WorldWidth, physics.WorldHeight)

// Options configures a World. Zero values select defaults.
type Options struct {
	Rand   *rand.Rand  // nil seeds from the clock
	Sink   audio.Sink  // nil plays nothing
	Logger *log.Logger // nil uses the default logger
}

// Snapshot is the drawable content of a world at one instant.
type Snapshot struct {
	Entities []object.Entity
	Effects  []*object.Explosion
}

// World is a single game session. It is not safe for concurrent use.
type World struct {
	rng    *rand.Rand
	sink   audio.Sink
	logger *log.Logger

	state game.State
	now   time.Duration

	ship     *object.Ship // nil in attract mode
	entities []object.Entity
	effects  []*object.Explosion
	intents  []object.ProjectileIntent
	grid     *physics.SpatialGrid

	statusSince    time.Duration
	stageCleared   bool // a stage-complete has been dispatched and its layout not spawned yet
	stageClearedAt time.Duration
	nextUFOAt      time.Duration

	thrustOn bool
	siren    audio.Cue // looping UFO cue, empty when silent
	disposed bool
}

// New creates a world in attract mode with a drifting demo field.
func New(opts Options) *World {
	w := &World{
		rng:    opts.Rand,
		sink:   opts.Sink,
		logger: opts.Logger,
		state:  game.InitialState(),
		grid:   physics.NewSpatialGrid(physics.WorldBounds, gridCellSize),
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if w.sink == nil {
		w.sink = audio.Nop{}
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	w.spawnDemo()
	return w
}

// State returns the current game state.
func (w *World) State() game.State { return w.state }

// Now returns the simulation clock.
func (w *World) Now() time.Duration { return w.now }

// Ship returns the player's ship, or nil outside a game session.
func (w *World) Ship() *object.Ship { return w.ship }

// Entities returns the live entities and running effects in draw order.
func (w *World) Entities() Snapshot {
	snap := Snapshot{
		Entities: make([]object.Entity, 0, len(w.entities)),
		Effects:  make([]*object.Explosion, 0, len(w.effects)),
	}
	for _, e := range w.entities {
		if e.IsAlive() {
			snap.Entities = append(snap.Entities, e)
		}
	}
	for _, fx := range w.effects {
		if fx.IsAlive() {
			snap.Effects = append(snap.Effects, fx)
		}
	}
	return snap
}

// Dispatch applies a to the game state and reacts to the transition.
func (w *World) Dispatch(a game.Action) {
	if w.disposed {
		return
	}
	prev := w.state
	w.state = game.Reduce(prev, a, w.rng)
	if w.state.Status != prev.Status {
		w.logger.Debug("state change", "action", a.Type, "from", prev.Status, "to", w.state.Status)
	}
	w.handleStateChange(prev, w.state, a)
}

// Start performs the discrete start input: it begins a game from attract or
// game-over and skips the pause after a cleared stage.
func (w *World) Start() {
	switch w.state.Status {
	case game.StatusAttract, game.StatusGameOver:
		w.Dispatch(game.StartGame())
	case game.StatusStageComplete:
		w.Dispatch(game.StartStage(w.state.Stage))
	}
}

func (w *World) handleStateChange(prev, next game.State, a game.Action) {
	if next.Score > prev.Score && next.Lives > prev.Lives {
		w.sink.PlaySound(audio.CueExtraLife)
	}
	if next.Status != prev.Status {
		w.statusSince = w.now
	}

	switch {
	case next.Status == game.StatusPlaying &&
		(a.Type == game.ActionStartGame || prev.Status == game.StatusAttract || prev.Status == game.StatusGameOver):
		w.resetSession(next)
	case a.Type == game.ActionStartStage:
		w.stageCleared = false
		w.spawnAsteroids(next.AsteroidConfigs)
		w.playBeat()
	case next.Status == prev.Status:
	case next.Status == game.StatusRespawning, next.Status == game.StatusStageComplete:
		w.playBeat()
	case next.Status == game.StatusGameOver:
		w.sink.StopAll()
		w.thrustOn = false
		w.siren = ""
	case next.Status == game.StatusAttract:
		w.sink.StopBackgroundBeat()
		w.stopLoops()
		w.spawnDemo()
	}
}

// resetSession starts a fresh game field for s.
func (w *World) resetSession(s game.State) {
	w.stopLoops()
	w.ship = object.NewShip(physics.Vector2{})
	w.entities = []object.Entity{w.ship}
	w.effects = w.effects[:0]
	w.intents = w.intents[:0]
	w.stageCleared = false
	w.spawnAsteroids(s.AsteroidConfigs)
	w.nextUFOAt = w.now + FirstUFODelay
	w.playBeat()
}

// spawnDemo replaces the field with a stage-one layout and no ship.
func (w *World) spawnDemo() {
	w.ship = nil
	w.entities = w.entities[:0]
	w.intents = w.intents[:0]
	w.stageCleared = false
	w.spawnAsteroids(game.GenerateAsteroidsForStage(1, w.rng))
}

func (w *World) spawnAsteroids(configs []game.AsteroidConfig) {
	for _, c := range configs {
		w.entities = append(w.entities, object.NewAsteroid(w.rng, c.Size, c.Position, c.Velocity, c.RotationRate))
	}
}

// stopLoops silences the thrust and siren loops if they are playing.
func (w *World) stopLoops() {
	if w.thrustOn {
		w.sink.StopSound(audio.CueThrust)
		w.thrustOn = false
	}
	if w.siren != "" {
		w.sink.StopSound(w.siren)
		w.siren = ""
	}
}

// playBeat starts or retunes the background beat for the live asteroids.
func (w *World) playBeat() {
	var weights []float64
	for _, e := range w.entities {
		if a, ok := e.(*object.Asteroid); ok && a.IsAlive() {
			weights = append(weights, a.Size().Weight())
		}
	}
	w.sink.PlayBackgroundBeat(weights, w.state.Stage)
}

// Update advances the simulation by deltaTime with the given held controls.
func (w *World) Update(deltaTime time.Duration, controls object.Controls) {
	if w.disposed {
		return
	}
	if deltaTime < 0 {
		deltaTime = 0
	}
	w.now += deltaTime

	if w.state.RespawnDue(w.now) {
		w.respawnShip()
	}

	active := w.state.Status.Active()
	ctx := object.UpdateContext{
		Delta:  deltaTime,
		Now:    w.now,
		Bounds: physics.WorldBounds,
	}
	if active {
		ctx.Controls = controls
		ctx.Spawner = w
		ctx.Target = w.target()
		w.updateThrustCue(controls.Thrust)
	}

	for _, e := range w.entities {
		w.updateEntity(e, ctx)
	}

	if active {
		w.flushIntents()
		w.prune()
		w.collide()
	}
	w.prune()

	w.advanceStatus()

	kept := w.effects[:0]
	for _, fx := range w.effects {
		fx.Update(deltaTime)
		if fx.IsAlive() {
			kept = append(kept, fx)
		}
	}
	clear(w.effects[len(kept):])
	w.effects = kept
}

// advanceStatus runs the timed transitions of the current status.
func (w *World) advanceStatus() {
	switch w.state.Status {
	case game.StatusPlaying:
		if !w.stageCleared && w.liveAsteroids() == 0 {
			w.stageCleared = true
			w.stageClearedAt = w.now
			w.Dispatch(game.StageComplete())
			return
		}
		if w.stageCleared && w.now-w.stageClearedAt >= StagePause {
			w.Dispatch(game.StartStage(w.state.Stage))
			return
		}
		if w.now >= w.nextUFOAt && w.liveUFO() == nil {
			w.spawnUFO()
		}
	case game.StatusStageComplete:
		if w.now-w.stageClearedAt >= StagePause {
			w.Dispatch(game.StartStage(w.state.Stage))
		}
	case game.StatusGameOver:
		if w.now-w.statusSince >= GameOverPause {
			w.Dispatch(game.EnterAttract())
		}
	}
}

// updateEntity advances one entity, destroying it if it fails.
func (w *World) updateEntity(e object.Entity, ctx object.UpdateContext) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("entity update panicked", "kind", e.Kind(), "panic", r)
			w.quarantine(e)
		}
	}()
	if err := e.Update(ctx); err != nil {
		w.logger.Error("entity update failed", "kind", e.Kind(), "err", err)
		w.quarantine(e)
	}
}

// quarantine removes a faulty entity. The ship is never removed; it is put
// back at the origin instead, without costing a life.
func (w *World) quarantine(e object.Entity) {
	if e == object.Entity(w.ship) {
		if w.ship.IsAlive() {
			w.ship.Respawn(physics.Vector2{}, 0, w.now, object.ShipInvulnerability)
		}
		return
	}
	e.Destroy()
}

func (w *World) respawnShip() {
	if w.ship == nil {
		return
	}
	w.ship.Respawn(physics.Vector2{}, w.rng.Float64()*2*math.Pi, w.now, object.ShipInvulnerability)
	w.Dispatch(game.RespawnComplete())
}

// target is what UFOs aim at: the ship while it is alive.
func (w *World) target() *object.Target {
	if w.ship == nil || !w.ship.IsAlive() {
		return nil
	}
	return &object.Target{Position: w.ship.Position(), Velocity: w.ship.Velocity()}
}

func (w *World) updateThrustCue(thrust bool) {
	want := thrust && w.ship != nil && w.ship.IsAlive()
	switch {
	case want && !w.thrustOn:
		w.sink.PlaySound(audio.CueThrust)
	case !want && w.thrustOn:
		w.sink.StopSound(audio.CueThrust)
	}
	w.thrustOn = want
}

// SpawnProjectile queues a projectile; it is created after the update pass.
func (w *World) SpawnProjectile(intent object.ProjectileIntent) {
	w.intents = append(w.intents, intent)
}

// flushIntents creates the queued projectiles that fit their owner's quota.
func (w *World) flushIntents() {
	if len(w.intents) == 0 {
		return
	}
	counts := make(map[object.Kind]int, 2)
	for _, e := range w.entities {
		if p, ok := e.(*object.Projectile); ok && p.IsAlive() {
			counts[p.Owner()]++
		}
	}
	for _, in := range w.intents {
		if counts[in.Owner] >= projectileQuota(in.Owner) {
			continue
		}
		counts[in.Owner]++
		w.entities = append(w.entities, object.NewProjectile(physics.WorldBounds.Wrap(in.Position), in.Velocity, in.Owner, w.now))
		w.sink.PlaySound(audio.CueFire)
	}
	w.intents = w.intents[:0]
}

func projectileQuota(owner object.Kind) int {
	switch owner {
	case object.KindShip:
		return MaxShipProjectiles
	case object.KindUFO:
		return MaxUFOProjectiles
	default:
		return 0
	}
}

// prune drops dead entities, keeping the ship, and silences the siren once
// no UFO is left.
func (w *World) prune() {
	kept := w.entities[:0]
	for _, e := range w.entities {
		if e.IsAlive() || e == object.Entity(w.ship) {
			kept = append(kept, e)
		}
	}
	clear(w.entities[len(kept):])
	w.entities = kept

	if w.siren != "" && w.liveUFO() == nil {
		w.sink.StopSound(w.siren)
		w.siren = ""
	}
}

func (w *World) liveAsteroids() int {
	n := 0
	for _, e := range w.entities {
		if e.Kind() == object.KindAsteroid && e.IsAlive() {
			n++
		}
	}
	return n
}

func (w *World) liveUFO() *object.UFO {
	for _, e := range w.entities {
		if u, ok := e.(*object.UFO); ok && u.IsAlive() {
			return u
		}
	}
	return nil
}

// spawnUFO places a UFO on a random edge heading for the center.
func (w *World) spawnUFO() {
	size := object.UFOLarge
	if w.state.Score >= SmallUFOScore {
		size = object.UFOSmall
	}

	pos := w.randomEdge()
	if w.ship != nil && w.ship.IsAlive() && pos.Distance(w.ship.Position()) < ufoAvoidRadius {
		pos = pos.Scale(-1)
	}
	vel := pos.Scale(-1).Normalize().Scale(object.UFOSpeed)

	w.entities = append(w.entities, object.NewUFO(size, pos, vel, w.now))
	w.nextUFOAt = w.now + UFOMinInterval + time.Duration(w.rng.Int63n(int64(UFOMaxInterval-UFOMinInterval)+1))

	cue := audio.CueLargeUFO
	if size == object.UFOSmall {
		cue = audio.CueSmallUFO
	}
	w.sink.PlaySound(cue)
	w.siren = cue
	w.logger.Debug("ufo spawned", "size", size, "pos", pos, "next", w.nextUFOAt)
}

func (w *World) randomEdge() physics.Vector2 {
	b := physics.WorldBounds
	switch w.rng.Intn(4) {
	case 0:
		return physics.Vec(b.Left+w.rng.Float64()*b.Width(), b.Top)
	case 1:
		return physics.Vec(b.Right, b.Bottom+w.rng.Float64()*b.Height())
	case 2:
		return physics.Vec(b.Left+w.rng.Float64()*b.Width(), b.Bottom)
	default:
		return physics.Vec(b.Left, b.Bottom+w.rng.Float64()*b.Height())
	}
}

// Dispose stops all sound. The world ignores further updates.
func (w *World) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true
	w.sink.StopBackgroundBeat()
	w.sink.StopAll()
	w.thrustOn = false
	w.siren = ""
}
