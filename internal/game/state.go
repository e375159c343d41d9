// Package game holds the progression model: the game state, the actions
// that change it and the pure reducer applying them.
package game

import (
	"fmt"
	"time"

	"github.com/tomz197/vecteroids/internal/object"
	"github.com/tomz197/vecteroids/internal/physics"
)

// Progression tuning.
const (
	InitialLives      = 3
	RespawnDelay      = 2000 * time.Millisecond
	ExtraLifeInterval = 10000 // points per bonus life

	ScoreLargeAsteroid  = 20
	ScoreMediumAsteroid = 50
	ScoreSmallAsteroid  = 100
	ScoreLargeUFO       = 200
	ScoreSmallUFO       = 100
)

// Status is the phase of the game.
type Status int

const (
	StatusAttract Status = iota
	StatusPlaying
	StatusRespawning
	StatusStageComplete
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusAttract:
		return "attract"
	case StatusPlaying:
		return "playing"
	case StatusRespawning:
		return "respawning"
	case StatusStageComplete:
		return "stage-complete"
	case StatusGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// AsteroidConfig describes one asteroid of a stage layout.
type AsteroidConfig struct {
	Size         object.AsteroidSize
	Position     physics.Vector2
	Velocity     physics.Vector2
	RotationRate float64
}

// State is an immutable snapshot of the progression. Reduce returns new
// values and never writes through a State it was given.
type State struct {
	Stage           int
	Lives           int
	Score           int
	Status          Status
	AsteroidConfigs []AsteroidConfig

	// RespawnAt is the simulation time the ship returns; only meaningful
	// while Status is StatusRespawning.
	RespawnAt time.Duration
}

// InitialState is the attract-mode state a fresh world starts in.
func InitialState() State {
	return State{
		Lives:  InitialLives,
		Status: StatusAttract,
	}
}

// RespawnDue reports whether a pending respawn should happen at now.
func (s State) RespawnDue(now time.Duration) bool {
	return s.Status == StatusRespawning && now >= s.RespawnAt
}

// Active reports whether the simulation runs collisions in this status.
func (s Status) Active() bool {
	return s == StatusPlaying || s == StatusRespawning || s == StatusStageComplete
}
