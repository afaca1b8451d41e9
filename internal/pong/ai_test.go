package pong

import "testing"

func TestTrackBall(t *testing.T) {
	paddle := &Paddle{Y: 250, Height: 100} // centre 300

	testCases := []struct {
		name     string
		ball     Ball
		deadZone int
		expected int
	}{
		{"ball far below", Ball{X: 100, Y: 400, Size: 20}, 10, 8},
		{"ball far above", Ball{X: 100, Y: 100, Size: 20}, 10, -8},
		{"edge of dead zone below", Ball{X: 100, Y: 300, Size: 20}, 10, 0},
		{"just past dead zone below", Ball{X: 100, Y: 301, Size: 20}, 10, 8},
		{"just past dead zone above", Ball{X: 100, Y: 279, Size: 20}, 10, -8},
		{"ball on centre line", Ball{X: 400, Y: 500, Size: 20}, 10, 0},
		{"ball in far half", Ball{X: 700, Y: 0, Size: 20}, 10, 0},
		{"no dead zone", Ball{X: 100, Y: 291, Size: 20}, 0, 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TrackBall(&tc.ball, paddle, 800, 8, tc.deadZone)
			if got != tc.expected {
				t.Errorf("TrackBall(%+v) = %d, want %d", tc.ball, got, tc.expected)
			}
		})
	}
}
