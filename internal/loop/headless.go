package loop

import "github.com/lox/pong/internal/pong"

// InputFunc picks the right paddle's velocity before each step.
type InputFunc func(pong.Snapshot) int

// Result summarises a headless game.
type Result struct {
	Events    []pong.Event
	Ticks     uint64
	Completed bool // false when maxTicks ran out first
	Final     pong.Snapshot
}

// PlayHeadless steps e as fast as possible until the game ends or maxTicks
// steps have run (0 means no limit). The engine must not be shared.
func PlayHeadless(e *pong.Engine, input InputFunc, maxTicks uint64) Result {
	var res Result
	for !e.Ended() && (maxTicks == 0 || e.Tick() < maxTicks) {
		if input != nil {
			e.SetInputVelocity(pong.Right, input(e.Snapshot()))
		}
		if e.Paused() {
			e.Resume()
		}
		res.Events = append(res.Events, e.Step()...)
	}
	res.Ticks = e.Tick()
	res.Completed = e.Ended()
	res.Final = e.Snapshot()
	return res
}
