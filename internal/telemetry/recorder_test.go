package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pong/internal/pong"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestNilRecorder(t *testing.T) {
	r, err := NewRecorder("")
	require.NoError(t, err)
	require.Nil(t, r)

	assert.NoError(t, r.WriteConfig(pong.DefaultConfig()))
	assert.NoError(t, r.RecordMatch(MatchRecord{}, nil))
	assert.Equal(t, Summary{}, r.Summary())
	assert.Equal(t, "", r.Dir())
	assert.NoError(t, r.Close())
}

func TestRecorderWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r, err := NewRecorder(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, r.Dir())

	require.NoError(t, r.WriteConfig(pong.DefaultConfig()))

	points := []PointRecord{
		PointFromEvent("m1", pong.Event{Type: pong.EventPointScored, Tick: 78, Side: pong.Left, Scores: [2]int{1, 0}}),
		PointFromEvent("m1", pong.Event{Type: pong.EventPointScored, Tick: 200, Side: pong.Right, Scores: [2]int{1, 1}}),
	}
	require.NoError(t, r.RecordMatch(MatchRecord{
		MatchID: "m1", Winner: "left", WinnerName: "Player 1",
		LeftScore: 3, RightScore: 1, Ticks: 900, Policy: "idle", Seed: 1, Completed: true,
	}, points))
	require.NoError(t, r.RecordMatch(MatchRecord{
		MatchID: "m2", LeftScore: 0, RightScore: 0, Ticks: 5000, Policy: "tracker", Seed: 2,
	}, nil))
	require.NoError(t, r.Close())

	matches := readLines(t, filepath.Join(dir, "matches.csv"))
	require.Len(t, matches, 3)
	assert.Equal(t, "match_id,winner,winner_name,left_score,right_score,ticks,policy,seed,completed", matches[0])
	assert.Equal(t, "m1,left,Player 1,3,1,900,idle,1,true", matches[1])
	assert.Equal(t, "m2,,,0,0,5000,tracker,2,false", matches[2])

	pts := readLines(t, filepath.Join(dir, "points.csv"))
	require.Len(t, pts, 3)
	assert.Equal(t, "match_id,tick,scorer,left_score,right_score", pts[0])
	assert.Equal(t, "m1,78,left,1,0", pts[1])
	assert.Equal(t, "m1,200,right,1,1", pts[2])

	cfg, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "win_score: 3")

	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	require.NoError(t, err)
	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, Summary{Matches: 2, LeftWins: 1, Unfinished: 1, Points: 2, Ticks: 5900}, summary)
}

func TestRecorderConcurrentMatches(t *testing.T) {
	r, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			winner := "left"
			if i%2 == 1 {
				winner = "right"
			}
			assert.NoError(t, r.RecordMatch(MatchRecord{MatchID: "m", Winner: winner, Completed: true}, []PointRecord{{MatchID: "m"}}))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, Summary{Matches: 20, LeftWins: 10, RightWins: 10, Points: 20}, r.Summary())
	require.NoError(t, r.Close())
	assert.Len(t, readLines(t, filepath.Join(r.Dir(), "matches.csv")), 21)
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(MatchRecord{Winner: "right", Completed: true, Ticks: 10}, 4)
	s.Add(MatchRecord{Winner: "right", Ticks: 10}, 1)
	assert.Equal(t, Summary{Matches: 2, RightWins: 1, Unfinished: 1, Points: 5, Ticks: 20}, s)
}
