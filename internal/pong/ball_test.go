package pong

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBall_Move(t *testing.T) {
	ball := Ball{X: 10, Y: 20, VX: 3, VY: -4, Size: 20}
	ball.Move()

	assert.Equal(t, 13, ball.X)
	assert.Equal(t, 16, ball.Y)
	assert.Equal(t, 3, ball.VX)
	assert.Equal(t, -4, ball.VY)
}

func TestBall_Reflect(t *testing.T) {
	ball := Ball{VX: 5, VY: -7}

	ball.ReflectX()
	assert.Equal(t, -5, ball.VX)
	assert.Equal(t, -7, ball.VY)

	ball.ReflectY()
	assert.Equal(t, -5, ball.VX)
	assert.Equal(t, 7, ball.VY)
}

func TestBall_OverlapsVertically(t *testing.T) {
	paddle := &Paddle{Y: 100, Height: 100}

	testCases := []struct {
		name string
		y    int
		want bool
	}{
		{"fully inside", 150, true},
		{"straddles top", 85, true},
		{"straddles bottom", 195, true},
		{"touches top edge", 80, false},
		{"touches bottom edge", 200, false},
		{"far above", 0, false},
		{"far below", 400, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ball := Ball{Y: tc.y, Size: 20}
			assert.Equal(t, tc.want, ball.OverlapsVertically(paddle))
		})
	}
}

func TestBall_Serve(t *testing.T) {
	ball := Ball{X: -3, Y: 411, VX: -5, VY: -5, Size: 20}
	ball.Serve(800, 600, 5)

	assert.Equal(t, Ball{X: 390, Y: 290, VX: 5, VY: 5, Size: 20}, ball)

	ball.Serve(800, 600, 5)
	assert.Equal(t, -5, ball.VX, "each serve negates the horizontal direction")
	assert.Equal(t, 5, ball.VY)
}
