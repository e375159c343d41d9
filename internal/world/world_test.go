package world

import (
	"bytes"
	"io"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/tomz197/vecteroids/internal/audio"
	"github.com/tomz197/vecteroids/internal/audio/mock"
	"github.com/tomz197/vecteroids/internal/game"
	"github.com/tomz197/vecteroids/internal/object"
	"github.com/tomz197/vecteroids/internal/physics"
)

const frame = 16 * time.Millisecond

func newTestWorld(sink audio.Sink) *World {
	return New(Options{
		Rand:   rand.New(rand.NewSource(1)),
		Sink:   sink,
		Logger: log.New(io.Discard),
	})
}

// startedWorld returns a playing world whose field holds only the ship and a
// motionless asteroid in the far corner, so the stage never clears by itself.
func startedWorld(t *testing.T, sink audio.Sink) (*World, *object.Asteroid) {
	t.Helper()
	w := newTestWorld(sink)
	w.Start()
	if w.State().Status != game.StatusPlaying {
		t.Fatalf("Status = %v after Start, want playing", w.State().Status)
	}
	anchor := w.still(object.AsteroidLarge, physics.Vec(880, 480))
	w.entities = []object.Entity{w.ship, anchor}
	return w, anchor
}

// still creates an asteroid that neither moves nor spins.
func (w *World) still(size object.AsteroidSize, pos physics.Vector2) *object.Asteroid {
	return object.NewAsteroid(w.rng, size, pos, physics.Vector2{}, 0)
}

func countKind(snap Snapshot, k object.Kind) int {
	n := 0
	for _, e := range snap.Entities {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

func TestNewWorldStartsInAttract(t *testing.T) {
	w := newTestWorld(nil)

	if got := w.State().Status; got != game.StatusAttract {
		t.Errorf("Status = %v, want attract", got)
	}
	if w.Ship() != nil {
		t.Error("attract mode has a ship")
	}
	snap := w.Entities()
	if got, want := countKind(snap, object.KindAsteroid), game.StageAsteroidCount(1); got != want || len(snap.Entities) != want {
		t.Errorf("entities = %d (%d asteroids), want %d asteroids", len(snap.Entities), got, want)
	}
}

func TestAttractDriftsWithoutCollisions(t *testing.T) {
	w := newTestWorld(nil)
	before := make([]physics.Vector2, 0)
	for _, e := range w.entities {
		before = append(before, e.Position())
	}

	for range 120 {
		w.Update(frame, object.Controls{Fire: true, Thrust: true})
	}

	if len(w.entities) != len(before) {
		t.Fatalf("entities = %d, want %d", len(w.entities), len(before))
	}
	moved := false
	for i, e := range w.entities {
		if e.Position() != before[i] {
			moved = true
		}
	}
	if !moved {
		t.Error("demo asteroids did not drift")
	}
	if w.State().Score != 0 || w.State().Status != game.StatusAttract {
		t.Errorf("state = %+v, want untouched attract", w.State())
	}
}

func TestStartGameResetsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().PlayBackgroundBeat(gomock.Len(game.StageAsteroidCount(1)), 1).Times(1)

	w := newTestWorld(sink)
	w.Start()

	s := w.State()
	if s.Status != game.StatusPlaying || s.Stage != 1 || s.Lives != game.InitialLives || s.Score != 0 {
		t.Errorf("state = %+v, want fresh stage 1", s)
	}
	if w.Ship() == nil || w.Ship().Position() != (physics.Vector2{}) {
		t.Fatal("ship not placed at the origin")
	}
	if w.entities[0] != object.Entity(w.Ship()) {
		t.Error("ship is not the first entity")
	}
	if got := w.liveAsteroids(); got != game.StageAsteroidCount(1) {
		t.Errorf("asteroids = %d, want %d", got, game.StageAsteroidCount(1))
	}
	if w.nextUFOAt != FirstUFODelay {
		t.Errorf("first UFO at %v, want %v", w.nextUFOAt, FirstUFODelay)
	}
}

func TestShipInvulnerableAfterRespawn(t *testing.T) {
	w, anchor := startedWorld(t, nil)
	ship := w.Ship()

	// A medium asteroid centered on the nose cuts through the hull.
	w.entities = append(w.entities, w.still(object.AsteroidMedium, physics.Vec(0, object.ShipSize)))

	w.Update(0, object.Controls{})
	s := w.State()
	if s.Status != game.StatusRespawning || s.Lives != 2 || s.RespawnAt != game.RespawnDelay {
		t.Fatalf("after hit: state = %+v, want respawning with 2 lives at %v", s, game.RespawnDelay)
	}
	if ship.IsAlive() || countKind(w.Entities(), object.KindShip) != 0 {
		t.Error("destroyed ship still in the snapshot")
	}

	w.Update(game.RespawnDelay-time.Millisecond, object.Controls{})
	if w.State().Status != game.StatusRespawning {
		t.Fatalf("respawned early at %v", w.Now())
	}
	w.Update(time.Millisecond, object.Controls{})
	if w.State().Status != game.StatusPlaying || !ship.IsAlive() {
		t.Fatalf("at %v: status %v alive %v, want respawned", w.Now(), w.State().Status, ship.IsAlive())
	}
	if ship.Position() != (physics.Vector2{}) || ship.Velocity() != (physics.Vector2{}) {
		t.Errorf("respawned at %v moving %v, want at rest on the origin", ship.Position(), ship.Velocity())
	}

	nose := ship.Position().Add(ship.Facing().Scale(object.ShipSize))
	w.entities = []object.Entity{ship, anchor, w.still(object.AsteroidMedium, nose)}

	for w.Now() < 4900*time.Millisecond {
		w.Update(100*time.Millisecond, object.Controls{})
		if !ship.IsAlive() {
			t.Fatalf("ship destroyed at %v while invulnerable", w.Now())
		}
	}

	w.Update(100*time.Millisecond, object.Controls{})
	if ship.IsAlive() || w.State().Lives != 1 {
		t.Errorf("at %v: alive %v lives %d, want the hit to land", w.Now(), ship.IsAlive(), w.State().Lives)
	}
}

func TestProjectileQuota(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().PlaySound(audio.CueFire).Times(MaxShipProjectiles)
	sink.EXPECT().PlayBackgroundBeat(gomock.Any(), gomock.Any()).AnyTimes()

	w, _ := startedWorld(t, sink)
	for w.Now() < 1500*time.Millisecond {
		w.Update(50*time.Millisecond, object.Controls{Fire: true})
	}

	if got := countKind(w.Entities(), object.KindProjectile); got != MaxShipProjectiles {
		t.Errorf("projectiles = %d, want %d", got, MaxShipProjectiles)
	}
}

func TestProjectileQuotaPerOwner(t *testing.T) {
	w, _ := startedWorld(t, nil)
	for range 5 {
		w.SpawnProjectile(object.ProjectileIntent{Owner: object.KindUFO, Velocity: physics.Vec(0, 1)})
		w.SpawnProjectile(object.ProjectileIntent{Owner: object.KindShip, Velocity: physics.Vec(0, 1)})
	}
	w.flushIntents()

	counts := map[object.Kind]int{}
	for _, e := range w.entities {
		if p, ok := e.(*object.Projectile); ok {
			counts[p.Owner()]++
		}
	}
	if counts[object.KindShip] != MaxShipProjectiles || counts[object.KindUFO] != MaxUFOProjectiles {
		t.Errorf("projectiles by owner = %v, want ship %d ufo %d", counts, MaxShipProjectiles, MaxUFOProjectiles)
	}
	if len(w.intents) != 0 {
		t.Errorf("%d intents left queued", len(w.intents))
	}
}

func TestProjectileSplitsAsteroid(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().PlayBackgroundBeat(gomock.Len(game.StageAsteroidCount(1)), 1)
	sink.EXPECT().PlaySound(audio.CueExplosion).Times(1)
	sink.EXPECT().PlayBackgroundBeat([]float64{1, 0.5, 0.5}, 1).Times(1)

	w, _ := startedWorld(t, sink)
	target := w.still(object.AsteroidLarge, physics.Vec(0, 300))
	shot := object.NewProjectile(physics.Vec(0, 300), physics.Vector2{}, object.KindShip, w.Now())
	w.entities = append(w.entities, target, shot)

	w.Update(frame, object.Controls{})

	if target.IsAlive() || shot.IsAlive() {
		t.Error("hit did not destroy both")
	}
	if got := w.State().Score; got != game.ScoreLargeAsteroid {
		t.Errorf("Score = %d, want %d", got, game.ScoreLargeAsteroid)
	}
	snap := w.Entities()
	mediums := 0
	for _, e := range snap.Entities {
		if a, ok := e.(*object.Asteroid); ok && a.Size() == object.AsteroidMedium {
			mediums++
		}
	}
	if mediums != 2 {
		t.Errorf("medium fragments = %d, want 2", mediums)
	}
	if len(snap.Effects) != 1 {
		t.Errorf("effects = %d, want 1 explosion", len(snap.Effects))
	}
}

func TestUFOShotDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().PlayBackgroundBeat(gomock.Any(), gomock.Any()).AnyTimes()
	sink.EXPECT().PlaySound(audio.CueExplosion).Times(1)
	sink.EXPECT().StopSound(audio.CueLargeUFO).Times(1)

	w, _ := startedWorld(t, sink)
	ufo := object.NewUFO(object.UFOLarge, physics.Vec(-300, 300), physics.Vector2{}, w.Now())
	w.entities = append(w.entities, ufo, object.NewProjectile(physics.Vec(-300, 300), physics.Vector2{}, object.KindShip, w.Now()))
	w.siren = audio.CueLargeUFO

	w.Update(frame, object.Controls{})

	if ufo.IsAlive() {
		t.Fatal("UFO survived the hit")
	}
	if got := w.State().Score; got != game.ScoreLargeUFO {
		t.Errorf("Score = %d, want %d", got, game.ScoreLargeUFO)
	}
	if w.siren != "" {
		t.Errorf("siren = %q after the UFO died", w.siren)
	}
}

func TestUFOFireIgnoresUFOs(t *testing.T) {
	w, _ := startedWorld(t, nil)
	ufo := object.NewUFO(object.UFOLarge, physics.Vec(-300, 300), physics.Vector2{}, w.Now())
	shot := object.NewProjectile(physics.Vec(-300, 300), physics.Vector2{}, object.KindUFO, w.Now())
	w.entities = append(w.entities, ufo, shot)

	w.Update(frame, object.Controls{})

	if !ufo.IsAlive() || !shot.IsAlive() {
		t.Error("UFO was hit by its own fire")
	}
}

func TestUFOCollidesWithAsteroid(t *testing.T) {
	w, _ := startedWorld(t, nil)
	// The saucer's top edge runs out past every vertex of a small asteroid
	// sharing its center, so the outlines always cross.
	ufo := object.NewUFO(object.UFOLarge, physics.Vec(-300, 300), physics.Vector2{}, w.Now())
	rock := w.still(object.AsteroidSmall, physics.Vec(-300, 300))
	w.entities = append(w.entities, ufo, rock)

	w.Update(frame, object.Controls{})

	if ufo.IsAlive() {
		t.Error("UFO survived flying into an asteroid")
	}
	if !rock.IsAlive() {
		t.Error("asteroid destroyed by a UFO")
	}
	if got := w.State().Score; got != game.ScoreLargeUFO {
		t.Errorf("Score = %d, want %d", got, game.ScoreLargeUFO)
	}
}

func TestUFOShotHitsShip(t *testing.T) {
	w, _ := startedWorld(t, nil)
	ship := w.Ship()
	shot := object.NewProjectile(ship.Position(), physics.Vector2{}, object.KindUFO, w.Now())
	w.entities = append(w.entities, shot)

	w.Update(frame, object.Controls{})

	if ship.IsAlive() || shot.IsAlive() {
		t.Errorf("ship alive %v, shot alive %v, want both destroyed", ship.IsAlive(), shot.IsAlive())
	}
	if s := w.State(); s.Status != game.StatusRespawning || s.Lives != game.InitialLives-1 {
		t.Errorf("state = %+v, want respawning with %d lives", s, game.InitialLives-1)
	}
}

func TestAsteroidDestroyedOncePerFrame(t *testing.T) {
	w, _ := startedWorld(t, nil)
	rock := w.still(object.AsteroidSmall, physics.Vec(0, 300))
	first := object.NewProjectile(physics.Vec(0, 300), physics.Vector2{}, object.KindShip, w.Now())
	second := object.NewProjectile(physics.Vec(0, 300), physics.Vector2{}, object.KindShip, w.Now())
	w.entities = append(w.entities, rock, first, second)

	w.Update(frame, object.Controls{})

	if rock.IsAlive() {
		t.Fatal("asteroid survived two shots")
	}
	if first.IsAlive() || !second.IsAlive() {
		t.Errorf("first alive %v, second alive %v, want only the first spent", first.IsAlive(), second.IsAlive())
	}
	if got := w.State().Score; got != game.ScoreSmallAsteroid {
		t.Errorf("Score = %d, want %d", got, game.ScoreSmallAsteroid)
	}
}

func TestStageCompletes(t *testing.T) {
	w, _ := startedWorld(t, nil)
	w.entities = []object.Entity{w.ship}

	w.Update(frame, object.Controls{})
	s := w.State()
	if s.Status != game.StatusStageComplete || s.Stage != 2 {
		t.Fatalf("state = %+v, want stage-complete into stage 2", s)
	}
	if w.liveAsteroids() != 0 {
		t.Fatal("next layout spawned before the pause")
	}

	w.Update(StagePause-frame, object.Controls{})
	if w.State().Status != game.StatusStageComplete {
		t.Fatalf("pause ended early at %v", w.Now())
	}
	w.Update(frame, object.Controls{})
	if w.State().Status != game.StatusPlaying {
		t.Fatalf("Status = %v after the pause, want playing", w.State().Status)
	}
	if got, want := w.liveAsteroids(), game.StageAsteroidCount(2); got != want {
		t.Errorf("asteroids = %d, want %d", got, want)
	}
}

func TestStartSkipsStagePause(t *testing.T) {
	w, _ := startedWorld(t, nil)
	w.entities = []object.Entity{w.ship}
	w.Update(frame, object.Controls{})

	w.Start()

	if w.State().Status != game.StatusPlaying || w.State().Stage != 2 {
		t.Fatalf("state = %+v, want stage 2 playing", w.State())
	}
	if got, want := w.liveAsteroids(), game.StageAsteroidCount(2); got != want {
		t.Errorf("asteroids = %d, want %d", got, want)
	}
	// The cleared flag is reset, so the timer must not start stage 3.
	w.Update(StagePause, object.Controls{})
	if w.State().Stage != 2 {
		t.Errorf("Stage = %d, want 2", w.State().Stage)
	}
}

func TestGameOverReturnsToAttract(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().PlayBackgroundBeat(gomock.Any(), gomock.Any()).AnyTimes()
	sink.EXPECT().StopAll().Times(1)
	sink.EXPECT().StopBackgroundBeat().Times(1)

	w, _ := startedWorld(t, sink)
	w.state.Score = 1234
	for range game.InitialLives {
		w.Dispatch(game.ShipDestroyed(w.Now()))
	}
	if w.State().Status != game.StatusGameOver {
		t.Fatalf("Status = %v, want game-over", w.State().Status)
	}

	w.Update(GameOverPause-frame, object.Controls{})
	if w.State().Status != game.StatusGameOver {
		t.Fatalf("left game-over early at %v", w.Now())
	}
	w.Update(frame, object.Controls{})

	s := w.State()
	if s.Status != game.StatusAttract || s.Score != 1234 {
		t.Errorf("state = %+v, want attract keeping the score", s)
	}
	if w.Ship() != nil || w.liveAsteroids() != game.StageAsteroidCount(1) {
		t.Error("attract mode did not restore the demo field")
	}
}

func TestExtraLifeCue(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().PlayBackgroundBeat(gomock.Any(), gomock.Any()).AnyTimes()
	sink.EXPECT().PlaySound(audio.CueExtraLife).Times(1)

	w, _ := startedWorld(t, sink)
	w.state.Score = game.ExtraLifeInterval - 10
	w.Dispatch(game.AsteroidDestroyed(object.AsteroidLarge))
	w.Dispatch(game.AsteroidDestroyed(object.AsteroidLarge))

	if got := w.State().Lives; got != game.InitialLives+1 {
		t.Errorf("Lives = %d, want %d", got, game.InitialLives+1)
	}
}

func TestThrustCueEdges(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().PlayBackgroundBeat(gomock.Any(), gomock.Any()).AnyTimes()
	gomock.InOrder(
		sink.EXPECT().PlaySound(audio.CueThrust),
		sink.EXPECT().StopSound(audio.CueThrust),
	)

	w, _ := startedWorld(t, sink)
	w.Update(frame, object.Controls{Thrust: true})
	w.Update(frame, object.Controls{Thrust: true})
	w.Update(frame, object.Controls{})
	w.Update(frame, object.Controls{})

	if !w.Ship().IsAlive() {
		t.Fatal("ship died")
	}
}

func TestUFOSpawn(t *testing.T) {
	tests := []struct {
		name  string
		score int
		size  object.UFOSize
		cue   audio.Cue
	}{
		{"large", 0, object.UFOLarge, audio.CueLargeUFO},
		{"small", SmallUFOScore, object.UFOSmall, audio.CueSmallUFO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sink := mock.NewMockSink(ctrl)
			sink.EXPECT().PlayBackgroundBeat(gomock.Any(), gomock.Any()).AnyTimes()
			sink.EXPECT().PlaySound(tt.cue).Times(1)

			w, _ := startedWorld(t, sink)
			w.state.Score = tt.score

			w.Update(FirstUFODelay-frame, object.Controls{})
			if w.liveUFO() != nil {
				t.Fatalf("UFO spawned early at %v", w.Now())
			}
			w.Update(frame, object.Controls{})

			u := w.liveUFO()
			if u == nil {
				t.Fatal("no UFO after the first delay")
			}
			if u.Size() != tt.size {
				t.Errorf("Size = %v, want %v", u.Size(), tt.size)
			}
			if speed := u.Velocity().Length(); math.Abs(speed-object.UFOSpeed) > 1e-9 {
				t.Errorf("speed = %f, want %f", speed, object.UFOSpeed)
			}
			if u.Velocity().Dot(u.Position()) >= 0 {
				t.Errorf("UFO at %v heads %v, not toward the center", u.Position(), u.Velocity())
			}
			if next := w.nextUFOAt - w.Now(); next < UFOMinInterval || next > UFOMaxInterval {
				t.Errorf("next UFO in %v, want 15-30s", next)
			}

			// Only one UFO at a time.
			w.nextUFOAt = w.Now()
			w.advanceStatus()
			if countKind(w.Entities(), object.KindUFO) != 1 {
				t.Error("second UFO spawned while one is alive")
			}
		})
	}
}

func TestUFOSpawnAvoidsShip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := New(Options{
			Rand:   rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed"))),
			Logger: log.New(io.Discard),
		})
		w.Start()
		pos := physics.Vec(rapid.Float64Range(-960, 960).Draw(t, "x"), rapid.Float64Range(-540, 540).Draw(t, "y"))
		w.Ship().Respawn(pos, 0, w.Now(), 0)

		w.spawnUFO()

		u := w.liveUFO()
		if d := u.Position().Distance(pos); d < ufoAvoidRadius {
			t.Fatalf("UFO spawned %f from the ship at %v", d, pos)
		}
		if !physics.WorldBounds.Contains(u.Position()) {
			t.Fatalf("UFO spawned outside the world at %v", u.Position())
		}
	})
}

func TestFaultyEntityIsRemoved(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Rand: rand.New(rand.NewSource(1)), Logger: log.New(&buf)})
	bad := object.NewAsteroid(w.rng, object.AsteroidLarge, physics.Vector2{}, physics.Vec(math.NaN(), 0), 0)
	w.entities = append(w.entities, bad)

	w.Update(frame, object.Controls{})

	if bad.IsAlive() {
		t.Error("invalid asteroid still alive")
	}
	if got, want := len(w.entities), game.StageAsteroidCount(1); got != want {
		t.Errorf("entities = %d, want %d", got, want)
	}
	if !strings.Contains(buf.String(), "entity update failed") {
		t.Errorf("log = %q, want the failure reported", buf.String())
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockSink(ctrl)
	sink.EXPECT().StopBackgroundBeat().Times(1)
	sink.EXPECT().StopAll().Times(1)

	w := newTestWorld(sink)
	w.Dispose()
	w.Dispose()

	w.Update(time.Second, object.Controls{})
	if w.Now() != 0 {
		t.Errorf("Now = %v after Dispose, want 0", w.Now())
	}
}

func TestEntitiesStayInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := New(Options{
			Rand:   rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed"))),
			Logger: log.New(io.Discard),
		})
		w.Start()

		lastScore := 0
		steps := rapid.IntRange(1, 300).Draw(t, "steps")
		for range steps {
			w.Update(time.Duration(rapid.IntRange(1, 50).Draw(t, "ms"))*time.Millisecond, object.Controls{
				Thrust:      rapid.Bool().Draw(t, "thrust"),
				RotateLeft:  rapid.Bool().Draw(t, "left"),
				RotateRight: rapid.Bool().Draw(t, "right"),
				Fire:        rapid.Bool().Draw(t, "fire"),
			})
			for _, e := range w.Entities().Entities {
				if !physics.WorldBounds.Contains(e.Position()) {
					t.Fatalf("%v at %v outside the world", e.Kind(), e.Position())
				}
			}
			if s := w.State().Score; s < lastScore {
				t.Fatalf("Score dropped from %d to %d", lastScore, s)
			}
			lastScore = w.State().Score
		}
	})
}
