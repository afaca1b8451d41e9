package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pong/cmd/pong/shared"
	"github.com/lox/pong/internal/bot"
	"github.com/lox/pong/internal/gameid"
	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/pong"
	"github.com/lox/pong/internal/randutil"
	"github.com/lox/pong/internal/telemetry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
)

type SimulateCmd struct {
	Matches  int    `short:"n" default:"100" help:"Number of matches to play"`
	Parallel int    `short:"p" default:"0" help:"Matches to run concurrently (0 = number of CPUs)"`
	Policy   string `default:"tracker" enum:"idle,tracker,sloppy" help:"Autopilot for the right paddle (${enum})"`
	Seed     int64  `default:"1" help:"Seed for randomised policies"`
	MaxTicks uint64 `name:"max-ticks" default:"100000" help:"Abandon a match after this many ticks (0 = never)"`
	Out      string `type:"path" help:"Directory for matches.csv, points.csv, config.yaml and summary.json"`

	out io.Writer `kong:"-"`
}

// simulation is one fully described batch of matches.
type simulation struct {
	Game     pong.Config
	Matches  int
	Parallel int
	Policy   string
	Seed     int64
	MaxTicks uint64
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, err := shared.SetupLogger(os.Stderr, cfg.UI.LogLevel, g.Debug)
	if err != nil {
		return err
	}
	if c.Matches <= 0 {
		return fmt.Errorf("matches must be positive, got %d", c.Matches)
	}

	parallel := c.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	recorder, err := telemetry.NewRecorder(c.Out)
	if err != nil {
		return err
	}
	if err := recorder.WriteConfig(cfg.Game); err != nil {
		_ = recorder.Close()
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	start := time.Now()
	summary, err := runSimulation(ctx, simulation{
		Game:     cfg.Game,
		Matches:  c.Matches,
		Parallel: parallel,
		Policy:   c.Policy,
		Seed:     c.Seed,
		MaxTicks: c.MaxTicks,
	}, recorder, logger)
	if closeErr := recorder.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d matches: %s vs %s (%s)", summary.Matches, cfg.Game.LeftName, cfg.Game.RightName, c.Policy)))
	fmt.Fprintln(out, renderSummary(summary, cfg.Game))
	logger.Info("Simulation complete", "matches", summary.Matches, "elapsed", time.Since(start).Round(time.Millisecond), "out", recorder.Dir())
	return nil
}

// runSimulation plays every match on a bounded pool of goroutines. Each
// match owns its engine, so nothing is shared but the recorder.
func runSimulation(ctx context.Context, sim simulation, recorder *telemetry.Recorder, logger *log.Logger) (telemetry.Summary, error) {
	if _, err := bot.New(sim.Policy, sim.Game, randutil.New(sim.Seed)); err != nil {
		return telemetry.Summary{}, err
	}

	results := make([]telemetry.MatchRecord, sim.Matches)
	points := make([]int, sim.Matches)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(sim.Parallel)

	for i := 0; i < sim.Matches; i++ {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, pts, err := playMatch(sim, i)
			if err != nil {
				return err
			}
			logger.Debug("Match finished", "match", rec.MatchID, "winner", rec.Winner, "left", rec.LeftScore, "right", rec.RightScore, "ticks", rec.Ticks)
			if !rec.Completed {
				logger.Warn("Match hit the tick cap", "match", rec.MatchID, "ticks", rec.Ticks)
			}
			results[i] = rec
			points[i] = len(pts)
			return recorder.RecordMatch(rec, pts)
		})
	}

	if err := group.Wait(); err != nil {
		return telemetry.Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return telemetry.Summary{}, err
	}

	var summary telemetry.Summary
	for i, rec := range results {
		summary.Add(rec, points[i])
	}
	return summary, nil
}

// playMatch runs match n of sim to completion or the tick cap.
func playMatch(sim simulation, n int) (telemetry.MatchRecord, []telemetry.PointRecord, error) {
	id, err := gameid.New()
	if err != nil {
		return telemetry.MatchRecord{}, nil, err
	}
	engine, err := pong.New(sim.Game)
	if err != nil {
		return telemetry.MatchRecord{}, nil, err
	}

	seed := randutil.Stream(sim.Seed, n)
	policy, err := bot.New(sim.Policy, sim.Game, randutil.New(seed))
	if err != nil {
		return telemetry.MatchRecord{}, nil, err
	}

	res := loop.PlayHeadless(engine, policy.Velocity, sim.MaxTicks)

	var pts []telemetry.PointRecord
	for _, ev := range res.Events {
		if ev.Type == pong.EventPointScored {
			pts = append(pts, telemetry.PointFromEvent(id, ev))
		}
	}

	rec := telemetry.MatchRecord{
		MatchID:    id,
		LeftScore:  res.Final.Scores[pong.Left],
		RightScore: res.Final.Scores[pong.Right],
		Ticks:      res.Ticks,
		Policy:     policy.Name(),
		Seed:       seed,
		Completed:  res.Completed,
	}
	if side, ok := engine.WinnerSide(); ok {
		rec.Winner = side.String()
		rec.WinnerName = res.Final.Winner
	}
	return rec, pts, nil
}

func renderSummary(s telemetry.Summary, cfg pong.Config) string {
	pct := func(n int) string {
		if s.Matches == 0 {
			return "0.0%"
		}
		return fmt.Sprintf("%.1f%%", float64(n)*100/float64(s.Matches))
	}
	avgTicks := uint64(0)
	if s.Matches > 0 {
		avgTicks = s.Ticks / uint64(s.Matches)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		}).
		Headers("", "matches", "share").
		Row(cfg.LeftName+" wins", strconv.Itoa(s.LeftWins), pct(s.LeftWins)).
		Row(cfg.RightName+" wins", strconv.Itoa(s.RightWins), pct(s.RightWins)).
		Row("unfinished", strconv.Itoa(s.Unfinished), pct(s.Unfinished)).
		Row("points", strconv.Itoa(s.Points), "").
		Row("avg ticks", strconv.FormatUint(avgTicks, 10), "")
	return t.Render()
}
