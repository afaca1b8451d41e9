package pong

// TrackBall is the reactive rule that drives the left paddle. It returns the
// vertical displacement for this tick: zero while the ball is in the far half
// or within deadZone of the paddle centre, otherwise speed toward the ball.
//
// No prediction or smoothing: only the current ball and paddle positions are
// consulted.
func TrackBall(ball *Ball, paddle *Paddle, fieldWidth, speed, deadZone int) int {
	if ball.X >= fieldWidth/2 {
		return 0
	}
	delta := ball.CenterY() - paddle.CenterY()
	if abs(delta) <= deadZone {
		return 0
	}
	if delta < 0 {
		return -speed
	}
	return speed
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
