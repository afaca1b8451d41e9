package pong

// Ball is the square bounding box of the ball. X and Y locate its top-left
// corner.
type Ball struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	VX   int `json:"vx"`
	VY   int `json:"vy"`
	Size int `json:"size"`
}

// Move advances the ball by one tick of velocity
func (b *Ball) Move() {
	b.X += b.VX
	b.Y += b.VY
}

func (b *Ball) Top() int    { return b.Y }
func (b *Ball) Bottom() int { return b.Y + b.Size }
func (b *Ball) Left() int   { return b.X }
func (b *Ball) Right() int  { return b.X + b.Size }

// CenterY is the vertical midpoint of the ball.
func (b *Ball) CenterY() int { return b.Y + b.Size/2 }

// ReflectX inverts horizontal velocity, keeping its magnitude.
func (b *Ball) ReflectX() { b.VX = -b.VX }

// ReflectY inverts vertical velocity, keeping its magnitude.
func (b *Ball) ReflectY() { b.VY = -b.VY }

// TouchesHorizontalWall reports whether the ball reached the top or bottom
// edge of a field of the given height. The ball is allowed to overlap the
// wall by up to one tick of velocity.
func (b *Ball) TouchesHorizontalWall(fieldHeight int) bool {
	return b.Top() <= 0 || b.Bottom() >= fieldHeight
}

// OverlapsVertically reports whether the ball's vertical span intersects the
// paddle's.
func (b *Ball) OverlapsVertically(p *Paddle) bool {
	return b.Bottom() > p.Top() && b.Top() < p.Bottom()
}

// Serve recentres the ball in the field and relaunches it. The horizontal
// direction is the negation of the current one; the vertical component is
// always +speed.
func (b *Ball) Serve(fieldWidth, fieldHeight, speed int) {
	b.X = fieldWidth/2 - b.Size/2
	b.Y = fieldHeight/2 - b.Size/2
	b.VX = -b.VX
	b.VY = speed
}

// newBall places a ball at the centre of the field moving down and right.
func newBall(cfg Config) Ball {
	return Ball{
		X:    cfg.FieldWidth/2 - cfg.BallSize/2,
		Y:    cfg.FieldHeight/2 - cfg.BallSize/2,
		VX:   cfg.BallSpeed,
		VY:   cfg.BallSpeed,
		Size: cfg.BallSize,
	}
}
