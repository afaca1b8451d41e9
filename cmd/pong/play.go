package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pong/cmd/pong/shared"
	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/pong"
	"github.com/lox/pong/internal/spectate"
	"github.com/lox/pong/internal/tui"
)

type PlayCmd struct {
	SpectateAddr string `name:"spectate-addr" help:"Also serve the game to websocket spectators on this address"`
	NoColor      bool   `name:"no-color" help:"Disable colours"`
	LogFile      string `name:"log-file" help:"Override the configured log file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.NoColor || cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logFile, err := shared.OpenLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger, err := shared.SetupLogger(logFile, cfg.UI.LogLevel, g.Debug)
	if err != nil {
		return err
	}
	logger.Info("Starting game", "config", g.Config, "win_score", cfg.Game.WinScore, "tick_rate", cfg.Game.TickRate)

	engine, err := pong.New(cfg.Game)
	if err != nil {
		return err
	}
	runner := loop.New(engine, quartz.NewReal(), logger)

	ctx, cancel := context.WithCancel(shared.SetupSignalHandler(logger))
	defer cancel()

	model := tui.NewModel(runner, runner.Snapshot(), tui.Options{
		PaddleSpeed: cfg.Game.PaddleSpeed,
		KeyRelease:  cfg.UI.KeyRelease(),
	}, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send blocks until the program reads the message, which throttles the
	// tick loop to what the terminal can draw.
	runner.Subscribe(func(f loop.Frame) { program.Send(tui.FrameMsg(f)) })

	group, gctx := errgroup.WithContext(ctx)

	if c.SpectateAddr != "" {
		hub := spectate.NewHub(logger)
		runner.Subscribe(hub.Publish)
		group.Go(func() error {
			return serveSpectators(gctx, c.SpectateAddr, hub, logger)
		})
	}

	group.Go(func() error {
		return runner.Run(gctx)
	})

	group.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("terminal UI failed: %w", err)
		}
		return nil
	})

	err = group.Wait()
	logger.Info("Game finished", "scores", runner.Snapshot().Scores)
	return err
}

// serveSpectators runs the spectator HTTP server until ctx is done.
func serveSpectators(ctx context.Context, addr string, hub *spectate.Hub, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           spectate.NewMux(hub),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving spectators", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		hub.Close()
		return fmt.Errorf("spectator server failed: %w", err)
	case <-ctx.Done():
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectator server shutdown: %w", err)
	}
	return nil
}
