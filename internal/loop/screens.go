package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/game"
)

const controlsHelp = "A/D or Arrows rotate, W or Up thrust, SPACE shoot, Q quit"

// overlay is the text drawn over the canvas for one frame.
type overlay struct {
	state  game.State
	width  int
	height int

	shuttingDown bool
	shutdownIn   time.Duration
	idleIn       time.Duration // > 0 shows the idle warning
}

func (o overlay) draw(cw *draw.ChunkWriter) {
	centerY := o.height / 2

	if o.shuttingDown {
		o.drawShutdownScreen(cw, centerY)
		return
	}

	switch o.state.Status {
	case game.StatusAttract:
		o.drawAttractScreen(cw, centerY)
	case game.StatusPlaying:
		o.drawHUD(cw)
	case game.StatusRespawning:
		o.drawHUD(cw)
		cw.WriteCentered(o.width, centerY+3, "GET READY")
	case game.StatusStageComplete:
		o.drawHUD(cw)
		cw.WriteCentered(o.width, centerY-2, fmt.Sprintf("STAGE %d", o.state.Stage))
		cw.WriteCentered(o.width, centerY, "Press ENTER to continue")
	case game.StatusGameOver:
		o.drawGameOverScreen(cw, centerY)
	}

	if o.idleIn > 0 {
		cw.WriteCentered(o.width, o.height, fmt.Sprintf("Idle, disconnecting in %d seconds", int(o.idleIn.Seconds())+1))
	}
}

// drawAttractScreen draws the title over the demo field.
func (o overlay) drawAttractScreen(cw *draw.ChunkWriter, centerY int) {
	cw.WriteCentered(o.width, centerY-2, "V E C T E R O I D S")
	cw.WriteCentered(o.width, centerY+1, "Press SPACE to Start")
	cw.WriteCentered(o.width, centerY+4, controlsHelp)
	if o.state.Score > 0 {
		cw.WriteCentered(o.width, centerY+6, fmt.Sprintf("Last score: %d", o.state.Score))
	}
}

// drawHUD draws score, stage and lives along the top row.
func (o overlay) drawHUD(cw *draw.ChunkWriter) {
	cw.WriteAt(2, 1, fmt.Sprintf("Score: %d", o.state.Score))

	stage := fmt.Sprintf("Stage %d", o.state.Stage)
	cw.WriteCentered(o.width, 1, stage)

	lives := fmt.Sprintf("Lives: %d", o.state.Lives)
	cw.WriteAt(o.width-len(lives)-1, 1, lives)
}

func (o overlay) drawGameOverScreen(cw *draw.ChunkWriter, centerY int) {
	cw.WriteCentered(o.width, centerY-2, "GAME OVER")
	cw.WriteCentered(o.width, centerY, fmt.Sprintf("Score: %d", o.state.Score))
	cw.WriteCentered(o.width, centerY+2, "Press SPACE to Restart")
}

// drawShutdownScreen draws the server shutdown notice.
func (o overlay) drawShutdownScreen(cw *draw.ChunkWriter, centerY int) {
	cw.WriteCentered(o.width, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(o.width, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(o.width, centerY, "Please reconnect in a moment.")
	cw.WriteCentered(o.width, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", int(o.shutdownIn.Seconds())+1))
	cw.WriteCentered(o.width, centerY+4, "Press Q to disconnect now")
}
