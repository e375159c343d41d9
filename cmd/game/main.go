// Command game plays vecteroids in the local terminal.
package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/vecteroids/internal/audio"
	"github.com/tomz197/vecteroids/internal/audio/speaker"
	"github.com/tomz197/vecteroids/internal/config"
	"github.com/tomz197/vecteroids/internal/loop"
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

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		FPS:    cfg.FPS,
		Logger: logger,
		World: world.Options{
			Rand:   rng,
			Sink:   sink,
			Logger: logger,
		},
	})
}
