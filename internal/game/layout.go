package game

import (
	"math"
	"math/rand"

	"github.com/tomz197/vecteroids/internal/object"
	"github.com/tomz197/vecteroids/internal/physics"
)

// Stage layout tuning.
const (
	MaxStageAsteroids = 12

	layoutMaxX        = 860.0 // placement bounds keep a 100 unit margin from the edges
	layoutMaxY        = 440.0
	layoutInner       = 400.0 // distance from the axes kept clear around the ship
	layoutMinDistance = 200.0
	layoutRetries     = 10

	layoutMinSpeed = 30.0
	layoutMaxSpeed = 60.0
)

// StageAsteroidCount returns how many large asteroids open stage.
func StageAsteroidCount(stage int) int {
	return min(4+2*stage, MaxStageAsteroids)
}

// GenerateAsteroidsForStage returns the opening layout for stage: large
// asteroids placed in random quadrants away from the center, spread at least
// layoutMinDistance apart when a spot can be found, drifting roughly toward
// the center.
func GenerateAsteroidsForStage(stage int, rng *rand.Rand) []AsteroidConfig {
	count := StageAsteroidCount(stage)
	configs := make([]AsteroidConfig, 0, count)
	placed := make([]physics.Vector2, 0, count)

	for range count {
		var pos physics.Vector2
		for attempt := 0; attempt <= layoutRetries; attempt++ {
			pos = quadrantPosition(rng)
			if farFromAll(pos, placed) {
				break
			}
		}
		placed = append(placed, pos)

		heading := math.Atan2(-pos.Y, -pos.X) + (rng.Float64()-0.5)*math.Pi
		speed := layoutMinSpeed + rng.Float64()*(layoutMaxSpeed-layoutMinSpeed)

		configs = append(configs, AsteroidConfig{
			Size:         object.AsteroidLarge,
			Position:     pos,
			Velocity:     physics.FromAngle(heading, speed),
			RotationRate: (rng.Float64() - 0.5) * 2,
		})
	}
	return configs
}

// quadrantPosition picks a random quadrant and a point in its outer band.
func quadrantPosition(rng *rand.Rand) physics.Vector2 {
	sx, sy := 1.0, 1.0
	switch rng.Intn(4) {
	case 1:
		sx = -1
	case 2:
		sx, sy = -1, -1
	case 3:
		sy = -1
	}
	return physics.Vec(
		sx*(layoutInner+rng.Float64()*(layoutMaxX-layoutInner)),
		sy*(layoutInner+rng.Float64()*(layoutMaxY-layoutInner)),
	)
}

func farFromAll(p physics.Vector2, others []physics.Vector2) bool {
	for _, o := range others {
		if p.Distance(o) < layoutMinDistance {
			return false
		}
	}
	return true
}
