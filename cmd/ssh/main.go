// Command ssh serves vecteroids over SSH, one private game per session.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/vecteroids/internal/config"
	"github.com/tomz197/vecteroids/internal/loop"
	"github.com/tomz197/vecteroids/internal/world"
)

const (
	shutdownGrace   = 10 * time.Second // how long players see the shutdown notice
	shutdownTimeout = shutdownGrace + 5*time.Second
	idleTimeout     = 120 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatal("server error", "err", err)
	}
}

func run() error {
	cfg, err := config.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: cfg.LogLevel, ReportTimestamp: true, Prefix: "ssh"})
	if err != nil {
		logger.Warn("ignoring invalid configuration", "err", err)
	}
	workingDir, err := os.Getwd()
	if err != nil {
		logger.Warn("failed to get working directory", "err", err)
	}
	logger.Info("SSH config", "host", cfg.SSHHost, "port", cfg.SSHPort, "hostKeyPath", cfg.HostKeyPath, "workingDir", workingDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSHHost, cfg.SSHPort)),
		wish.WithMiddleware(
			gameMiddleware(ctx, cfg, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting SSH server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", "grace", shutdownGrace)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// gameMiddleware runs a private game for each session. Cancelling server
// shows every player the shutdown notice before their session closes.
func gameMiddleware(server context.Context, cfg config.Config, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLog := logger.With("session", uuid.NewString(), "user", sess.User())
			sessLog.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizes := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizes.update(win.Width, win.Height)
				}
			}()

			ctx, cancel := context.WithCancel(sess.Context())
			defer cancel()
			defer context.AfterFunc(server, cancel)()

			var rng *rand.Rand
			if cfg.Seed != 0 {
				rng = rand.New(rand.NewSource(cfg.Seed))
			}

			err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
				FPS:           cfg.FPS,
				TermSize:      sizes.size,
				Logger:        sessLog,
				ShutdownGrace: shutdownGrace,
				IdleTimeout:   idleTimeout,
				World: world.Options{
					Rand:   rng,
					Logger: sessLog,
				},
			})
			if err != nil {
				sessLog.Error("game error", "err", err)
			}

			sessLog.Info("session ended")
			next(sess)
		}
	}
}
