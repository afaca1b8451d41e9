package pong

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the fixed parameters of a game. All distances are pixels and
// all speeds are pixels per tick.
type Config struct {
	// Playfield
	FieldWidth  int `yaml:"field_width"`
	FieldHeight int `yaml:"field_height"`

	// Ball
	BallSize  int `yaml:"ball_size"`  // Diameter of the ball's bounding box
	BallSpeed int `yaml:"ball_speed"` // Magnitude of each velocity component at serve

	// Paddles
	PaddleWidth  int `yaml:"paddle_width"`
	PaddleHeight int `yaml:"paddle_height"`
	PaddleSpeed  int `yaml:"paddle_speed"` // Input velocity while a key is held

	// AI (left paddle)
	AISpeed    int `yaml:"ai_speed"`
	AIDeadZone int `yaml:"ai_dead_zone"` // No reaction while the ball is this close to the paddle centre

	// Rules
	WinScore int `yaml:"win_score"`
	TickRate int `yaml:"tick_rate"` // Ticks per second for real-time drivers

	// Labels used for the winner banner
	LeftName  string `yaml:"left_name"`
	RightName string `yaml:"right_name"`
}

// DefaultConfig returns the classic 800x600 first-to-three game.
func DefaultConfig() Config {
	return Config{
		FieldWidth:  800,
		FieldHeight: 600,

		BallSize:  20,
		BallSpeed: 5,

		PaddleWidth:  10,
		PaddleHeight: 100,
		PaddleSpeed:  8,

		AISpeed:    8,
		AIDeadZone: 10,

		WinScore: 3,
		TickRate: 60,

		LeftName:  "Player 1",
		RightName: "Player 2",
	}
}

// Validate reports the first parameter that would make the simulation
// meaningless. The returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"field width", c.FieldWidth},
		{"field height", c.FieldHeight},
		{"ball size", c.BallSize},
		{"ball speed", c.BallSpeed},
		{"paddle width", c.PaddleWidth},
		{"paddle height", c.PaddleHeight},
		{"paddle speed", c.PaddleSpeed},
		{"ai speed", c.AISpeed},
		{"win score", c.WinScore},
		{"tick rate", c.TickRate},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.AIDeadZone < 0 {
		return fmt.Errorf("%w: ai dead zone must not be negative, got %d", ErrInvalidConfig, c.AIDeadZone)
	}
	if c.PaddleHeight > c.FieldHeight {
		return fmt.Errorf("%w: paddle height %d exceeds field height %d", ErrInvalidConfig, c.PaddleHeight, c.FieldHeight)
	}
	if c.BallSize >= c.FieldHeight || c.BallSize >= c.FieldWidth {
		return fmt.Errorf("%w: ball size %d does not fit a %dx%d field", ErrInvalidConfig, c.BallSize, c.FieldWidth, c.FieldHeight)
	}
	if 2*c.PaddleWidth+c.BallSize >= c.FieldWidth {
		return fmt.Errorf("%w: paddles of width %d leave no room for the ball", ErrInvalidConfig, c.PaddleWidth)
	}
	if c.LeftName == "" || c.RightName == "" {
		return fmt.Errorf("%w: player names must not be empty", ErrInvalidConfig)
	}
	return nil
}

// TickPeriod is the wall-clock interval between ticks for real-time drivers.
func (c Config) TickPeriod() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Name returns the display label of a side.
func (c Config) Name(s Side) string {
	if s == Left {
		return c.LeftName
	}
	return c.RightName
}
