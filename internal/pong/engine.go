package pong

import "fmt"

// Engine owns all mutable game state and advances it one tick at a time.
type Engine struct {
	cfg Config

	ball   Ball
	left   Paddle
	right  Paddle
	scores [2]int

	status Status
	winner Side
	tick   uint64
}

// New validates cfg and returns an engine in its initial state.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	e.Reset()
	return e, nil
}

// MustNew is like New but panics on an invalid config.
func MustNew(cfg Config) *Engine {
	e, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("pong: %v", err))
	}
	return e
}

// Step advances the game by one tick and returns the events it raised. It is
// a no-op returning nil unless the game is running.
func (e *Engine) Step() []Event {
	if e.status != Running {
		return nil
	}
	e.tick++

	var events []Event
	cfg := &e.cfg
	ball := &e.ball

	ball.Move()

	// Reflection only: the ball may sink into a wall by up to one tick.
	if ball.TouchesHorizontalWall(cfg.FieldHeight) {
		ball.ReflectY()
	}

	if ball.Left() <= cfg.PaddleWidth && ball.OverlapsVertically(&e.left) {
		ball.ReflectX()
	}
	if ball.Right() >= cfg.FieldWidth-cfg.PaddleWidth && ball.OverlapsVertically(&e.right) {
		ball.ReflectX()
	}

	if ball.Left() <= 0 {
		events = append(events, e.scorePoint(Right))
	}
	if ball.Right() >= cfg.FieldWidth {
		events = append(events, e.scorePoint(Left))
	}

	if e.scores[Left] >= cfg.WinScore {
		events = append(events, e.end(Left))
	} else if e.scores[Right] >= cfg.WinScore {
		events = append(events, e.end(Right))
	}

	// The AI still gets its move on the tick that ends the game.
	e.left.Y += TrackBall(ball, &e.left, cfg.FieldWidth, cfg.AISpeed, cfg.AIDeadZone)
	e.right.Move()

	e.left.Clamp(cfg.FieldHeight)
	e.right.Clamp(cfg.FieldHeight)

	return events
}

func (e *Engine) scorePoint(scorer Side) Event {
	e.scores[scorer]++
	e.ball.Serve(e.cfg.FieldWidth, e.cfg.FieldHeight, e.cfg.BallSpeed)
	return Event{Type: EventPointScored, Tick: e.tick, Side: scorer, Scores: e.scores}
}

func (e *Engine) end(winner Side) Event {
	e.status = Ended
	e.winner = winner
	return Event{
		Type:   EventGameOver,
		Tick:   e.tick,
		Side:   winner,
		Scores: e.scores,
		Winner: e.cfg.Name(winner),
	}
}

// SetInputVelocity sets the vertical velocity of an input-controlled paddle.
// The left paddle is AI controlled, so calls for Left are ignored.
func (e *Engine) SetInputVelocity(side Side, v int) {
	if side != Right {
		return
	}
	e.right.Velocity = v
}

// Pause stops the simulation until Resume. Only a running game can pause.
func (e *Engine) Pause() {
	if e.status == Running {
		e.status = Paused
	}
}

// Resume continues a paused game. It does not restart an ended one.
func (e *Engine) Resume() {
	if e.status == Paused {
		e.status = Running
	}
}

// Reset returns every entity to its initial value, including the input
// velocity, and starts a new running game. Safe to call from any state.
func (e *Engine) Reset() {
	e.ball = newBall(e.cfg)
	e.left = newPaddle(e.cfg, Left)
	e.right = newPaddle(e.cfg, Right)
	e.scores = [2]int{}
	e.status = Running
	e.winner = Left
	e.tick = 0
}

// Config returns the parameters the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Ball returns a copy of the ball.
func (e *Engine) Ball() Ball { return e.ball }

// Paddle returns a copy of the paddle defending side.
func (e *Engine) Paddle(side Side) Paddle {
	if side == Left {
		return e.left
	}
	return e.right
}

// Score returns the points won by side.
func (e *Engine) Score(side Side) int { return e.scores[side] }

// Scores returns both scores indexed by Side.
func (e *Engine) Scores() [2]int { return e.scores }

func (e *Engine) Status() Status { return e.status }
func (e *Engine) Paused() bool   { return e.status == Paused }
func (e *Engine) Ended() bool    { return e.status == Ended }

// Tick is the number of steps taken since the last reset.
func (e *Engine) Tick() uint64 { return e.tick }

// Winner returns the winner's label, or "" while no one has won.
func (e *Engine) Winner() string {
	if e.status != Ended {
		return ""
	}
	return e.cfg.Name(e.winner)
}

// WinnerSide returns the winning side; ok is false until the game has ended.
func (e *Engine) WinnerSide() (side Side, ok bool) {
	return e.winner, e.status == Ended
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Tick        uint64 `json:"tick"`
	FieldWidth  int    `json:"fieldWidth"`
	FieldHeight int    `json:"fieldHeight"`
	Ball        Ball   `json:"ball"`
	Left        Paddle `json:"left"`
	Right       Paddle `json:"right"`
	Scores      [2]int `json:"scores"`
	Status      Status `json:"status"`
	Winner      string `json:"winner,omitempty"`
	LeftName    string `json:"leftName"`
	RightName   string `json:"rightName"`
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:        e.tick,
		FieldWidth:  e.cfg.FieldWidth,
		FieldHeight: e.cfg.FieldHeight,
		Ball:        e.ball,
		Left:        e.left,
		Right:       e.right,
		Scores:      e.scores,
		Status:      e.status,
		Winner:      e.Winner(),
		LeftName:    e.cfg.LeftName,
		RightName:   e.cfg.RightName,
	}
}
