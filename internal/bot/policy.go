// Package bot provides input policies that drive the right paddle when no
// human is at the keyboard.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/lox/pong/internal/pong"
)

// Policy decides the right paddle's input velocity from the current state.
type Policy interface {
	Name() string
	Velocity(s pong.Snapshot) int
}

// SloppyMissRate is the chance that the sloppy policy ignores the ball on a
// given tick.
const SloppyMissRate = 0.3

var constructors = map[string]func(cfg pong.Config, rng *rand.Rand) Policy{
	"idle": func(pong.Config, *rand.Rand) Policy { return Idle{} },
	"tracker": func(cfg pong.Config, _ *rand.Rand) Policy {
		return NewTracker(cfg)
	},
	"sloppy": func(cfg pong.Config, rng *rand.Rand) Policy {
		return NewSloppy(cfg, rng, SloppyMissRate)
	},
}

// Names lists the registered policies in sorted order
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named policy. rng is only consulted by randomised policies
// and may be nil otherwise.
func New(name string, cfg pong.Config, rng *rand.Rand) (Policy, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (available: %v)", name, Names())
	}
	if name == "sloppy" && rng == nil {
		return nil, fmt.Errorf("policy %q requires a random source", name)
	}
	return ctor(cfg, rng), nil
}

// Idle never moves.
type Idle struct{}

func (Idle) Name() string               { return "idle" }
func (Idle) Velocity(pong.Snapshot) int { return 0 }

// Tracker mirrors the AI rule for the right paddle: it chases the ball's
// centre once the ball is in the right half.
type Tracker struct {
	speed    int
	deadZone int
}

// NewTracker creates a tracker moving at the configured paddle speed.
func NewTracker(cfg pong.Config) *Tracker {
	return &Tracker{speed: cfg.PaddleSpeed, deadZone: cfg.AIDeadZone}
}

func (t *Tracker) Name() string { return "tracker" }

func (t *Tracker) Velocity(s pong.Snapshot) int {
	if s.Ball.X < s.FieldWidth/2 {
		return 0
	}
	delta := s.Ball.CenterY() - s.Right.CenterY()
	switch {
	case delta > t.deadZone:
		return t.speed
	case delta < -t.deadZone:
		return -t.speed
	default:
		return 0
	}
}

// Sloppy is a tracker that sometimes doesn't react.
type Sloppy struct {
	tracker  *Tracker
	rng      *rand.Rand
	missRate float64
}

// NewSloppy creates a sloppy tracker that idles on a missRate fraction of
// ticks.
func NewSloppy(cfg pong.Config, rng *rand.Rand, missRate float64) *Sloppy {
	return &Sloppy{tracker: NewTracker(cfg), rng: rng, missRate: missRate}
}

func (s *Sloppy) Name() string { return "sloppy" }

func (s *Sloppy) Velocity(snap pong.Snapshot) int {
	if s.rng.Float64() < s.missRate {
		return 0
	}
	return s.tracker.Velocity(snap)
}
