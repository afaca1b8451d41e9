package main

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pong/internal/bot"
	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/pong"
)

func TestAutopilotSteersAndRestarts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := pong.DefaultConfig()
	cfg.WinScore = 1
	mock := quartz.NewMock(t)
	runner := loop.New(pong.MustNew(cfg), mock, testLogger())

	// idle keeps the paddle still so the opening serve ends the game
	autopilot(runner, bot.Idle{}, mock, time.Second)

	var frame loop.Frame
	for i := 0; i < 200 && frame.Snapshot.Status != pong.Ended; i++ {
		frame = runner.Tick()
	}
	require.Equal(t, pong.Ended, frame.Snapshot.Status)
	assert.Equal(t, pong.Ended, runner.Snapshot().Status, "restart waits for the delay")

	mock.Advance(time.Second).MustWait(ctx)

	snap := runner.Snapshot()
	assert.Equal(t, pong.Running, snap.Status)
	assert.Equal(t, [2]int{0, 0}, snap.Scores)
	assert.Equal(t, uint64(0), snap.Tick)
}

func TestAutopilotSetsInput(t *testing.T) {
	cfg := pong.DefaultConfig()
	runner := loop.New(pong.MustNew(cfg), quartz.NewMock(t), testLogger())
	autopilot(runner, bot.NewTracker(cfg), quartz.NewMock(t), time.Second)

	// The tracker starts chasing once the ball crosses the centre line.
	for i := 0; i < 3; i++ {
		runner.Tick()
	}
	assert.Equal(t, cfg.PaddleSpeed, runner.Snapshot().Right.Velocity)
}
