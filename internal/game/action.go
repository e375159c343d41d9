package game

import (
	"fmt"
	"time"

	"github.com/tomz197/vecteroids/internal/object"
)

// ActionType identifies a state transition request.
type ActionType int

const (
	ActionStartGame ActionType = iota
	ActionStartStage
	ActionAsteroidDestroyed
	ActionLargeUFODestroyed
	ActionSmallUFODestroyed
	ActionShipDestroyed
	ActionRespawnComplete
	ActionStageComplete
	ActionEnterAttract
)

func (t ActionType) String() string {
	switch t {
	case ActionStartGame:
		return "START_GAME"
	case ActionStartStage:
		return "START_STAGE"
	case ActionAsteroidDestroyed:
		return "ASTEROID_DESTROYED"
	case ActionLargeUFODestroyed:
		return "LARGE_UFO_DESTROYED"
	case ActionSmallUFODestroyed:
		return "SMALL_UFO_DESTROYED"
	case ActionShipDestroyed:
		return "SHIP_DESTROYED"
	case ActionRespawnComplete:
		return "RESPAWN_COMPLETE"
	case ActionStageComplete:
		return "STAGE_COMPLETE"
	case ActionEnterAttract:
		return "ENTER_ATTRACT"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}

// Action is a transition request. Only the fields relevant to Type are read.
type Action struct {
	Type  ActionType
	Stage int                 // ActionStartStage
	Size  object.AsteroidSize // ActionAsteroidDestroyed
	At    time.Duration       // ActionShipDestroyed: simulation time of death
}

// StartGame begins a new game at stage 1.
func StartGame() Action { return Action{Type: ActionStartGame} }

// StartStage begins the given stage.
func StartStage(stage int) Action { return Action{Type: ActionStartStage, Stage: stage} }

// AsteroidDestroyed scores an asteroid of the given size.
func AsteroidDestroyed(size object.AsteroidSize) Action {
	return Action{Type: ActionAsteroidDestroyed, Size: size}
}

// UFODestroyed scores a UFO of the given size.
func UFODestroyed(size object.UFOSize) Action {
	if size == object.UFOSmall {
		return Action{Type: ActionSmallUFODestroyed}
	}
	return Action{Type: ActionLargeUFODestroyed}
}

// ShipDestroyed costs a life; at is the simulation time of death.
func ShipDestroyed(at time.Duration) Action { return Action{Type: ActionShipDestroyed, At: at} }

// RespawnComplete returns to play after a respawn.
func RespawnComplete() Action { return Action{Type: ActionRespawnComplete} }

// StageComplete advances to the next stage.
func StageComplete() Action { return Action{Type: ActionStageComplete} }

// EnterAttract returns to the demo screen.
func EnterAttract() Action { return Action{Type: ActionEnterAttract} }
