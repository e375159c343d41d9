package game

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vecteroids/internal/object"
)

// Reduce returns the state that results from applying a to s. It reads
// randomness from rng only to generate stage layouts. Unknown actions leave
// the state unchanged.
func Reduce(s State, a Action, rng *rand.Rand) State {
	switch a.Type {
	case ActionStartGame:
		return State{
			Stage:           1,
			Lives:           InitialLives,
			Status:          StatusPlaying,
			AsteroidConfigs: GenerateAsteroidsForStage(1, rng),
		}

	case ActionStartStage:
		s.Status = StatusPlaying
		s.Stage = a.Stage
		s.AsteroidConfigs = GenerateAsteroidsForStage(a.Stage, rng)
		return s

	case ActionAsteroidDestroyed:
		return addScore(s, asteroidScore(a.Size))

	case ActionLargeUFODestroyed:
		return addScore(s, ScoreLargeUFO)

	case ActionSmallUFODestroyed:
		return addScore(s, ScoreSmallUFO)

	case ActionShipDestroyed:
		s.Lives--
		if s.Lives <= 0 {
			s.Lives = 0
			s.Status = StatusGameOver
			s.RespawnAt = 0
			return s
		}
		s.Status = StatusRespawning
		s.RespawnAt = a.At + RespawnDelay
		return s

	case ActionRespawnComplete:
		s.Status = StatusPlaying
		s.RespawnAt = 0
		return s

	case ActionStageComplete:
		s.Stage++
		s.Status = StatusStageComplete
		s.AsteroidConfigs = GenerateAsteroidsForStage(s.Stage, rng)
		return s

	case ActionEnterAttract:
		return State{
			Lives:  InitialLives,
			Score:  s.Score,
			Status: StatusAttract,
		}

	default:
		log.Warn("ignoring unknown action", "action", a.Type)
		return s
	}
}

// addScore adds points and grants a life for every ExtraLifeInterval crossed.
func addScore(s State, points int) State {
	before := s.Score / ExtraLifeInterval
	s.Score += points
	if gained := s.Score/ExtraLifeInterval - before; gained > 0 {
		s.Lives += gained
	}
	return s
}

// asteroidScore is the point value of destroying an asteroid of size.
func asteroidScore(size object.AsteroidSize) int {
	switch size {
	case object.AsteroidLarge:
		return ScoreLargeAsteroid
	case object.AsteroidMedium:
		return ScoreMediumAsteroid
	case object.AsteroidSmall:
		return ScoreSmallAsteroid
	default:
		log.Warn("no score for unknown asteroid size", "size", int(size))
		return 0
	}
}
