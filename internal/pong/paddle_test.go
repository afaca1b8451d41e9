package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaddle_MoveAndClamp(t *testing.T) {
	testCases := []struct {
		name     string
		y        int
		velocity int
		expected int
	}{
		{"up", 200, -8, 192},
		{"down", 200, 8, 208},
		{"still", 200, 0, 200},
		{"past top", 4, -8, 0},
		{"past bottom", 496, 8, 500},
		{"large jump up", 300, -1000, 0},
		{"large jump down", 300, 1000, 500},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paddle := Paddle{Y: tc.y, Height: 100, Velocity: tc.velocity}
			paddle.Move()
			paddle.Clamp(600)
			if paddle.Y != tc.expected {
				t.Errorf("Expected paddle starting at %d with velocity %d to end at %d, got %d", tc.y, tc.velocity, tc.expected, paddle.Y)
			}
		})
	}
}

func TestNewPaddlePlacement(t *testing.T) {
	cfg := DefaultConfig()

	left := newPaddle(cfg, Left)
	right := newPaddle(cfg, Right)

	assert.Equal(t, Paddle{X: 0, Y: 250, Width: 10, Height: 100}, left)
	assert.Equal(t, Paddle{X: 790, Y: 250, Width: 10, Height: 100}, right)
	assert.Equal(t, 300, left.CenterY())
}
