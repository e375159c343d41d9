package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/vecteroids/internal/game"
	"github.com/tomz197/vecteroids/internal/object"
	"github.com/tomz197/vecteroids/internal/physics"
	"github.com/tomz197/vecteroids/internal/world"
)

// maxFrameDelta clamps the step after a stall, e.g. while the window is dragged.
const maxFrameDelta = 100 * time.Millisecond

var background = color.RGBA{0, 0, 0, 255}

// Game adapts a world to ebiten's update/draw cycle.
type Game struct {
	world    *world.World
	lastTick time.Time
}

func newGame(w *world.World) *Game {
	return &Game{world: w, lastTick: time.Now()}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	dt := min(now.Sub(g.lastTick), maxFrameDelta)
	g.lastTick = now

	enter := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	space := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	switch g.world.State().Status {
	case game.StatusAttract, game.StatusGameOver:
		if enter || space {
			g.world.Start()
		}
	case game.StatusStageComplete:
		if enter {
			g.world.Start()
		}
	}

	g.world.Update(dt, controls())
	return nil
}

// controls reads the held keys.
func controls() object.Controls {
	return object.Controls{
		Thrust:      ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		RotateLeft:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		RotateRight: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Fire:        ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	s := &surface{dst: screen}
	s.Clear()

	snap := g.world.Entities()
	for _, e := range snap.Entities {
		e.Draw(s)
	}
	for _, fx := range snap.Effects {
		fx.Draw(s)
	}

	drawHUD(screen, g.world.State())
}

// Layout implements ebiten.Game; the logical screen is the world.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return physics.WorldWidth, physics.WorldHeight
}

func drawHUD(screen *ebiten.Image, s game.State) {
	cx, cy := int(physics.WorldWidth/2), int(physics.WorldHeight/2)
	switch s.Status {
	case game.StatusAttract:
		ebitenutil.DebugPrintAt(screen, "V E C T E R O I D S", cx-57, cy-40)
		ebitenutil.DebugPrintAt(screen, "Press SPACE to Start", cx-60, cy)
		if s.Score > 0 {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Last score: %d", s.Score), cx-50, cy+40)
		}
	case game.StatusGameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER", cx-27, cy-40)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", s.Score), cx-40, cy)
	default:
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Score: %d  Stage: %d  Lives: %d", s.Score, s.Stage, s.Lives))
		if s.Status == game.StatusStageComplete {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("STAGE %d", s.Stage), cx-24, cy-40)
		}
	}
}
