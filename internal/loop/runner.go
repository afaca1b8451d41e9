// Package loop drives a pong engine at a fixed cadence and serializes every
// access to it.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pong/internal/pong"
)

// Notice is a lifecycle change requested from outside the tick loop.
type Notice string

const (
	NoticeNone    Notice = ""
	NoticePaused  Notice = "paused"
	NoticeResumed Notice = "resumed"
	NoticeReset   Notice = "reset"
)

// Frame is what subscribers receive: the state after a tick or a lifecycle
// command, plus whatever happened to produce it.
type Frame struct {
	Snapshot pong.Snapshot `json:"snapshot"`
	Events   []pong.Event  `json:"events,omitempty"`
	Notice   Notice        `json:"notice,omitempty"`
}

// Runner owns an engine. It is the only thing that touches the engine, and
// all of its methods are safe for concurrent use.
type Runner struct {
	mu     sync.Mutex
	engine *pong.Engine

	clock  quartz.Clock
	period time.Duration
	logger *log.Logger

	subMu       sync.RWMutex
	subscribers []func(Frame)

	ready     chan struct{}
	readyOnce sync.Once
}

// Option configures a Runner
type Option func(*Runner)

// WithPeriod overrides the tick period derived from the engine's tick rate.
func WithPeriod(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.period = d
		}
	}
}

// New creates a runner for engine. The runner takes ownership: callers must
// not use engine directly afterwards.
func New(engine *pong.Engine, clock quartz.Clock, logger *log.Logger, opts ...Option) *Runner {
	r := &Runner{
		engine: engine,
		clock:  clock,
		period: engine.Config().TickPeriod(),
		logger: logger.WithPrefix("loop"),
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Period returns the interval between ticks
func (r *Runner) Period() time.Duration { return r.period }

// Ready is closed once Run has registered its ticker.
func (r *Runner) Ready() <-chan struct{} { return r.ready }

// Subscribe registers fn to receive every frame. fn runs on the ticking
// goroutine and must not block.
func (r *Runner) Subscribe(fn func(Frame)) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// Run ticks until ctx is cancelled. Each tick advances the engine exactly
// once; missed ticks are not caught up.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("Starting tick loop", "period", r.period)

	w := r.clock.TickerFunc(ctx, r.period, func() error {
		r.Tick()
		return nil
	}, "loop", "tick")
	r.readyOnce.Do(func() { close(r.ready) })

	err := w.Wait()
	r.logger.Info("Tick loop stopped")
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Tick advances the engine once and publishes the resulting frame. Run calls
// it on every clock tick; it is exported for drivers that bring their own
// cadence.
func (r *Runner) Tick() Frame {
	r.mu.Lock()
	events := r.engine.Step()
	frame := Frame{Snapshot: r.engine.Snapshot(), Events: events}
	r.mu.Unlock()

	for _, ev := range events {
		switch ev.Type {
		case pong.EventPointScored:
			r.logger.Debug("Point scored", "side", ev.Side, "left", ev.Scores[pong.Left], "right", ev.Scores[pong.Right], "tick", ev.Tick)
		case pong.EventGameOver:
			r.logger.Info("Game over", "winner", ev.Winner, "left", ev.Scores[pong.Left], "right", ev.Scores[pong.Right], "tick", ev.Tick)
		}
	}

	r.publish(frame)
	return frame
}

// SetInput sets the right paddle's input velocity. Only the latest value
// matters; it is picked up by the next tick.
func (r *Runner) SetInput(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine.SetInputVelocity(pong.Right, v)
}

// Pause pauses a running game
func (r *Runner) Pause() {
	r.command(NoticePaused, (*pong.Engine).Pause)
}

// Resume resumes a paused game
func (r *Runner) Resume() {
	r.command(NoticeResumed, (*pong.Engine).Resume)
}

// Reset starts a new game from any state
func (r *Runner) Reset() {
	r.command(NoticeReset, (*pong.Engine).Reset)
}

// TogglePause pauses a running game or resumes a paused one.
func (r *Runner) TogglePause() {
	r.mu.Lock()
	paused := r.engine.Paused()
	r.mu.Unlock()

	if paused {
		r.Resume()
	} else {
		r.Pause()
	}
}

func (r *Runner) command(notice Notice, apply func(*pong.Engine)) {
	r.mu.Lock()
	before := r.engine.Status()
	apply(r.engine)
	frame := Frame{Snapshot: r.engine.Snapshot(), Notice: notice}
	r.mu.Unlock()

	if notice != NoticeReset && before == frame.Snapshot.Status {
		return
	}
	r.logger.Info("Game "+string(notice), "status", frame.Snapshot.Status)
	r.publish(frame)
}

// Snapshot returns the current state
func (r *Runner) Snapshot() pong.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Snapshot()
}

// Config returns the engine's parameters
func (r *Runner) Config() pong.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Config()
}

func (r *Runner) publish(frame Frame) {
	r.subMu.RLock()
	defer r.subMu.RUnlock()
	for _, fn := range r.subscribers {
		fn(frame)
	}
}
