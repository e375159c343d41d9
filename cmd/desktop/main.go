// Command desktop plays vecteroids in a window.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/vecteroids/internal/audio"
	"github.com/tomz197/vecteroids/internal/audio/speaker"
	"github.com/tomz197/vecteroids/internal/config"
	"github.com/tomz197/vecteroids/internal/physics"
	"github.com/tomz197/vecteroids/internal/world"
)

func main() {
	if err := run(); err != nil {
		log.Error("game error", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: cfg.LogLevel, ReportTimestamp: true})
	if err != nil {
		logger.Warn("ignoring invalid configuration", "err", err)
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	var sink audio.Sink = audio.Nop{}
	if cfg.Audio {
		sink, err = speaker.Open(1)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer speaker.Close()
		}
	}

	g := newGame(world.New(world.Options{Rand: rng, Sink: sink, Logger: logger}))
	defer g.world.Dispose()

	ebiten.SetWindowSize(physics.WorldWidth/2, physics.WorldHeight/2)
	ebiten.SetWindowTitle("Vecteroids")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
