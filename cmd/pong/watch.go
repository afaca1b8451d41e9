package main

import (
	"os"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pong/cmd/pong/shared"
	"github.com/lox/pong/internal/bot"
	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/pong"
	"github.com/lox/pong/internal/randutil"
	"github.com/lox/pong/internal/spectate"
)

type WatchCmd struct {
	Addr         string        `help:"Listen address for spectators (defaults to the configured one)"`
	Policy       string        `default:"sloppy" enum:"idle,tracker,sloppy" help:"Autopilot for the right paddle (${enum})"`
	Seed         int64         `default:"1" help:"Seed for randomised policies"`
	RestartDelay time.Duration `name:"restart-delay" default:"3s" help:"Pause between a game ending and the next one starting"`
}

func (c *WatchCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	addr := c.Addr
	if addr == "" {
		addr = cfg.Spectate.Addr
	}

	logger, err := shared.SetupLogger(os.Stderr, cfg.UI.LogLevel, g.Debug)
	if err != nil {
		return err
	}

	policy, err := bot.New(c.Policy, cfg.Game, randutil.New(c.Seed))
	if err != nil {
		return err
	}
	engine, err := pong.New(cfg.Game)
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	runner := loop.New(engine, clock, logger)
	autopilot(runner, policy, clock, c.RestartDelay)

	hub := spectate.NewHub(logger)
	runner.Subscribe(hub.Publish)

	ctx := shared.SetupSignalHandler(logger)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return runner.Run(gctx) })
	group.Go(func() error { return serveSpectators(gctx, addr, hub, logger) })

	logger.Info("Watching", "policy", policy.Name(), "addr", addr, "ws", "/ws", "state", "/state")
	return group.Wait()
}

// autopilot steers the right paddle from every frame and starts a new game
// restartDelay after one ends.
func autopilot(runner *loop.Runner, policy bot.Policy, clock quartz.Clock, restartDelay time.Duration) {
	runner.Subscribe(func(f loop.Frame) {
		runner.SetInput(policy.Velocity(f.Snapshot))
		for _, ev := range f.Events {
			if ev.Type == pong.EventGameOver {
				clock.AfterFunc(restartDelay, runner.Reset, "watch", "restart")
			}
		}
	})
}
