// Package loop drives a world on a terminal: input, update, draw, repeat.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vecteroids/internal/draw"
	"github.com/tomz197/vecteroids/internal/game"
	"github.com/tomz197/vecteroids/internal/input"
	"github.com/tomz197/vecteroids/internal/physics"
	"github.com/tomz197/vecteroids/internal/world"
)

const (
	defaultFPS = 60

	// maxFrameDelta caps a single simulation step after a stall.
	maxFrameDelta = 100 * time.Millisecond

	// idleWarning is how long before an idle disconnect the warning shows.
	idleWarning = 30 * time.Second
)

// Options configures a terminal session.
type Options struct {
	FPS      int               // frames per second, 0 means 60
	TermSize draw.TermSizeFunc // nil reads the size of stdout
	World    world.Options
	Logger   *log.Logger

	// ShutdownGrace is how long the shutdown notice stays up after the
	// context is cancelled. Zero returns immediately.
	ShutdownGrace time.Duration

	// IdleTimeout ends the session after this long without a key press.
	// Zero disables it.
	IdleTimeout time.Duration
}

// session is the per-terminal state of one running game.
type session struct {
	opts   Options
	world  *world.World
	stream *input.Stream
	canvas *draw.Canvas
	out    *draw.ChunkWriter
	logger *log.Logger

	prev       input.Input
	lastInput  time.Time
	shutdownAt time.Time // zero until the context is cancelled
}

// Run plays a game on the terminal behind r and w until the player quits,
// the input ends, the session idles out or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.TermSize == nil {
		opts.TermSize = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.World.Logger == nil {
		opts.World.Logger = opts.Logger
	}

	termWidth, termHeight, err := opts.TermSize()
	if err != nil {
		opts.Logger.Warn("terminal size unavailable", "err", err)
		termWidth, termHeight = 80, 24
	}

	s := &session{
		opts:      opts,
		world:     world.New(opts.World),
		stream:    input.StartStream(r, input.DefaultHoldDuration),
		canvas:    draw.NewCanvas(termWidth, termHeight, physics.WorldBounds),
		out:       draw.NewChunkWriter(w),
		logger:    opts.Logger,
		lastInput: time.Now(),
	}
	defer s.world.Dispose()

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	frameTime := time.Second / time.Duration(opts.FPS)
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			if s.shutdownAt.IsZero() {
				s.shutdownAt = time.Now()
				s.logger.Info("session shutting down", "grace", opts.ShutdownGrace)
			}
		case <-ticker.C:
		}

		now := time.Now()
		done, err := s.step(now, now.Sub(last))
		last = now
		if err != nil {
			return err
		}
		if done {
			draw.ClearScreen(w)
			return nil
		}
		if !s.shutdownAt.IsZero() {
			// ctx stays cancelled, so wait on the ticker from here on.
			<-ticker.C
		}
	}
}

// step runs one frame. It reports true when the session should end.
func (s *session) step(now time.Time, dt time.Duration) (bool, error) {
	in := s.stream.Read(now)
	if in.Quit || s.stream.Closed() {
		return true, nil
	}
	if len(in.Pressed) > 0 {
		s.lastInput = now
	}

	if !s.shutdownAt.IsZero() && now.Sub(s.shutdownAt) >= s.opts.ShutdownGrace {
		return true, nil
	}
	if s.opts.IdleTimeout > 0 && now.Sub(s.lastInput) >= s.opts.IdleTimeout {
		s.logger.Info("session idle, disconnecting", "idle", now.Sub(s.lastInput))
		return true, nil
	}

	if s.shutdownAt.IsZero() {
		if startPressed(s.world.State().Status, in, s.prev) {
			s.world.Start()
		}
		s.world.Update(min(dt, maxFrameDelta), in.Controls())
	}
	s.prev = in

	return false, s.render(now)
}

// startPressed reports a start edge: Space or Enter begins a game, while
// only Enter skips the pause after a cleared stage since Space also fires.
func startPressed(status game.Status, in, prev input.Input) bool {
	enter := in.Enter && !prev.Enter
	space := in.Space && !prev.Space
	switch status {
	case game.StatusAttract, game.StatusGameOver:
		return enter || space
	case game.StatusStageComplete:
		return enter
	default:
		return false
	}
}

// render draws the world and the text overlay, then flushes the frame.
func (s *session) render(now time.Time) error {
	width, height, err := s.opts.TermSize()
	if err == nil {
		s.canvas.Resize(width, height)
	}

	s.canvas.Clear()
	snap := s.world.Entities()
	for _, e := range snap.Entities {
		e.Draw(s.canvas)
	}
	for _, fx := range snap.Effects {
		fx.Draw(s.canvas)
	}

	s.out.ClearScreen()
	if err := s.canvas.Render(s.out); err != nil {
		return err
	}

	o := overlay{
		state:  s.world.State(),
		width:  s.canvas.TerminalWidth(),
		height: s.canvas.TerminalHeight(),
	}
	if !s.shutdownAt.IsZero() {
		o.shutdownIn = max(s.opts.ShutdownGrace-now.Sub(s.shutdownAt), 0)
		o.shuttingDown = true
	}
	if s.opts.IdleTimeout > 0 {
		if left := s.opts.IdleTimeout - now.Sub(s.lastInput); left <= idleWarning {
			o.idleIn = left
		}
	}
	o.draw(s.out)

	return s.out.Flush()
}
