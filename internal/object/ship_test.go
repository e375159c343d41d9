package object

import (
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/physics"
)

// intentRecorder is a Spawner that keeps every intent it receives.
type intentRecorder struct {
	intents []ProjectileIntent
}

func (r *intentRecorder) SpawnProjectile(intent ProjectileIntent) {
	r.intents = append(r.intents, intent)
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearVec(a, b physics.Vector2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestShipRotationLeftWins(t *testing.T) {
	s := NewShip(physics.Vector2{})
	if err := s.Update(UpdateContext{
		Delta:    time.Second,
		Controls: Controls{RotateLeft: true, RotateRight: true},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !near(s.Rotation(), ShipRotationSpeed) {
		t.Errorf("Rotation() = %f, want %f", s.Rotation(), ShipRotationSpeed)
	}
}

func TestShipThrustAndDrag(t *testing.T) {
	s := NewShip(physics.Vector2{})
	if err := s.Update(UpdateContext{
		Delta:    500 * time.Millisecond,
		Controls: Controls{Thrust: true},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// 400 * 0.5 of thrust, minus 0.7 * 0.5 of drag, straight up.
	wantVel := physics.Vec(0, 199.65)
	if !nearVec(s.Velocity(), wantVel) {
		t.Errorf("Velocity() = %v, want %v", s.Velocity(), wantVel)
	}
	if !nearVec(s.Position(), wantVel.Scale(0.5)) {
		t.Errorf("Position() = %v, want %v", s.Position(), wantVel.Scale(0.5))
	}
	if !s.Thrusting() {
		t.Error("Thrusting() = false while thrust held")
	}
}

func TestShipMaxSpeed(t *testing.T) {
	s := NewShip(physics.Vector2{})
	for range 10 {
		_ = s.Update(UpdateContext{Delta: time.Second, Controls: Controls{Thrust: true}})
	}
	if got := s.Velocity().Length(); got > ShipMaxSpeed+1e-9 {
		t.Errorf("speed = %f, want <= %f", got, ShipMaxSpeed)
	}
}

func TestShipDragStopsWithoutReversing(t *testing.T) {
	s := NewShip(physics.Vector2{})
	_ = s.Update(UpdateContext{Delta: 10 * time.Millisecond, Controls: Controls{Thrust: true}})
	if s.Velocity().Y <= 0 {
		t.Fatalf("Velocity() = %v, want moving up", s.Velocity())
	}
	for range 20 {
		_ = s.Update(UpdateContext{Delta: time.Second})
	}
	if s.Velocity() != (physics.Vector2{}) {
		t.Errorf("Velocity() = %v, want zero after coasting", s.Velocity())
	}
}

func TestShipFireRate(t *testing.T) {
	s := NewShip(physics.Vector2{})
	rec := &intentRecorder{}

	for _, at := range []time.Duration{0, 100 * time.Millisecond, 300 * time.Millisecond} {
		_ = s.Update(UpdateContext{
			Now:      at,
			Controls: Controls{Fire: true},
			Spawner:  rec,
		})
	}

	if len(rec.intents) != 2 {
		t.Fatalf("intents = %d, want 2", len(rec.intents))
	}
	first := rec.intents[0]
	if !nearVec(first.Position, physics.Vec(0, ShipNoseOffset)) {
		t.Errorf("Position = %v, want nose at (0, %v)", first.Position, ShipNoseOffset)
	}
	if !nearVec(first.Velocity, physics.Vec(0, ShipProjectileSpeed)) {
		t.Errorf("Velocity = %v, want (0, %v)", first.Velocity, ShipProjectileSpeed)
	}
	if first.Owner != KindShip {
		t.Errorf("Owner = %v, want ship", first.Owner)
	}
}

func TestShipFireWithoutSpawner(t *testing.T) {
	s := NewShip(physics.Vector2{})
	if err := s.Update(UpdateContext{Controls: Controls{Fire: true}}); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestShipFacing(t *testing.T) {
	s := NewShip(physics.Vector2{})
	s.Respawn(physics.Vector2{}, -math.Pi/2, 0, 0)
	if !nearVec(s.Facing(), physics.Vec(1, 0)) {
		t.Errorf("Facing() = %v, want (1, 0)", s.Facing())
	}
	h, ok := s.Hull()
	if !ok || !h.Closed || len(h.Points) != 3 {
		t.Fatalf("Hull() = %v, %v; want closed triangle", h, ok)
	}
	if !nearVec(h.Points[0], physics.Vec(ShipSize, 0)) {
		t.Errorf("nose = %v, want (%v, 0)", h.Points[0], ShipSize)
	}
}

func TestShipInvulnerabilityAndFlashing(t *testing.T) {
	s := NewShip(physics.Vector2{})
	s.Destroy()
	s.Respawn(physics.Vector2{}, 0, 0, ShipInvulnerability)

	if !s.IsInvulnerable(2999 * time.Millisecond) {
		t.Error("IsInvulnerable(2999ms) = false, want true")
	}
	if s.IsInvulnerable(3000 * time.Millisecond) {
		t.Error("IsInvulnerable(3000ms) = true, want false")
	}

	var rec draw.Recorder
	_ = s.Update(UpdateContext{Now: 50 * time.Millisecond})
	s.Draw(&rec)
	if !rec.Empty() {
		t.Error("ship drawn during the hidden flash phase")
	}

	_ = s.Update(UpdateContext{Now: 150 * time.Millisecond})
	s.Draw(&rec)
	if len(rec.Shapes) != 1 {
		t.Errorf("shapes = %d, want 1 during the visible flash phase", len(rec.Shapes))
	}

	rec.Clear()
	_ = s.Update(UpdateContext{Now: 3100 * time.Millisecond})
	s.Draw(&rec)
	if len(rec.Shapes) != 1 {
		t.Errorf("shapes = %d, want 1 after invulnerability", len(rec.Shapes))
	}
}

func TestDeadShipIsInert(t *testing.T) {
	s := NewShip(physics.Vector2{})
	s.Destroy()
	rec := &intentRecorder{}
	_ = s.Update(UpdateContext{Delta: time.Second, Controls: Controls{Thrust: true, Fire: true}, Spawner: rec})

	if s.Position() != (physics.Vector2{}) || len(rec.intents) != 0 {
		t.Errorf("dead ship moved to %v and fired %d shots", s.Position(), len(rec.intents))
	}
	var r draw.Recorder
	s.Draw(&r)
	if !r.Empty() {
		t.Error("dead ship was drawn")
	}
}

func TestShipStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewShip(physics.Vector2{})
		steps := rapid.IntRange(1, 200).Draw(t, "steps")
		for range steps {
			ctx := UpdateContext{
				Delta: time.Duration(rapid.IntRange(1, 100).Draw(t, "ms")) * time.Millisecond,
				Controls: Controls{
					Thrust:      rapid.Bool().Draw(t, "thrust"),
					RotateLeft:  rapid.Bool().Draw(t, "left"),
					RotateRight: rapid.Bool().Draw(t, "right"),
				},
			}
			if err := s.Update(ctx); err != nil {
				t.Fatalf("Update: %v", err)
			}
			if !physics.WorldBounds.Contains(s.Position()) {
				t.Fatalf("Position() = %v, outside world bounds", s.Position())
			}
		}
	})
}
