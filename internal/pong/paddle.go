package pong

// Paddle is a vertical bar fixed against one side wall.
type Paddle struct {
	X        int `json:"x"`
	Y        int `json:"y"`
	Width    int `json:"width"`
	Height   int `json:"height"`
	Velocity int `json:"velocity"` // Input velocity; only the right paddle uses it
}

func (p *Paddle) Top() int    { return p.Y }
func (p *Paddle) Bottom() int { return p.Y + p.Height }

// CenterY is the vertical midpoint of the paddle.
func (p *Paddle) CenterY() int { return p.Y + p.Height/2 }

// Move shifts the paddle by its input velocity. Clamp must follow.
func (p *Paddle) Move() {
	p.Y += p.Velocity
}

// Clamp keeps the paddle inside [0, fieldHeight-Height].
func (p *Paddle) Clamp(fieldHeight int) {
	maxY := fieldHeight - p.Height
	if p.Y > maxY {
		p.Y = maxY
	}
	if p.Y < 0 {
		p.Y = 0
	}
}

// newPaddle centres a paddle vertically against the given side.
func newPaddle(cfg Config, side Side) Paddle {
	x := 0
	if side == Right {
		x = cfg.FieldWidth - cfg.PaddleWidth
	}
	return Paddle{
		X:      x,
		Y:      cfg.FieldHeight/2 - cfg.PaddleHeight/2,
		Width:  cfg.PaddleWidth,
		Height: cfg.PaddleHeight,
	}
}
