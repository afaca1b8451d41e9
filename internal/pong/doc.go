// Package pong implements the simulation core of a two-paddle ball game.
//
// The main type is Engine, which owns the ball, both paddles, the score pair
// and the game status. It knows nothing about clocks, terminals or sockets:
// a driving loop calls Step once per tick and a renderer reads Snapshot.
//
// # Basic Usage
//
//	e, err := pong.New(pong.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	e.SetInputVelocity(pong.Right, -e.Config().PaddleSpeed) // "up" held
//	for !e.Ended() {
//	    for _, ev := range e.Step() {
//	        fmt.Println(ev)
//	    }
//	}
//	fmt.Println(e.Winner(), "wins")
//
// # Sides
//
// The Left paddle is driven by a reactive tracking rule (see TrackBall) and is
// recomputed every tick. The Right paddle moves by the input velocity set with
// SetInputVelocity.
//
// # Concurrency
//
// Engine is not safe for concurrent use. Callers serialize access, either by
// confining the engine to one goroutine or by guarding it with a single mutex
// (see internal/loop).
package pong
