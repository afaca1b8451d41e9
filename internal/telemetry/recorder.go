// Package telemetry writes per-match and per-point records for headless runs.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/lox/pong/internal/fileutil"
	"github.com/lox/pong/internal/pong"
)

// MatchRecord is one row of matches.csv
type MatchRecord struct {
	MatchID    string `csv:"match_id"`
	Winner     string `csv:"winner"`      // side label, empty when the match hit the tick cap
	WinnerName string `csv:"winner_name"`
	LeftScore  int    `csv:"left_score"`
	RightScore int    `csv:"right_score"`
	Ticks      uint64 `csv:"ticks"`
	Policy     string `csv:"policy"`
	Seed       int64  `csv:"seed"`
	Completed  bool   `csv:"completed"`
}

// PointRecord is one row of points.csv
type PointRecord struct {
	MatchID    string `csv:"match_id"`
	Tick       uint64 `csv:"tick"`
	Scorer     string `csv:"scorer"`
	LeftScore  int    `csv:"left_score"`
	RightScore int    `csv:"right_score"`
}

// PointFromEvent converts a point_scored event into a record.
func PointFromEvent(matchID string, ev pong.Event) PointRecord {
	return PointRecord{
		MatchID:    matchID,
		Tick:       ev.Tick,
		Scorer:     ev.Side.String(),
		LeftScore:  ev.Scores[pong.Left],
		RightScore: ev.Scores[pong.Right],
	}
}

// Summary aggregates every recorded match.
type Summary struct {
	Matches    int    `json:"matches"`
	LeftWins   int    `json:"leftWins"`
	RightWins  int    `json:"rightWins"`
	Unfinished int    `json:"unfinished"`
	Points     int    `json:"points"`
	Ticks      uint64 `json:"ticks"`
}

// Add folds one match into the summary.
func (s *Summary) Add(m MatchRecord, points int) {
	s.Matches++
	s.Points += points
	s.Ticks += m.Ticks
	switch {
	case !m.Completed:
		s.Unfinished++
	case m.Winner == pong.Left.String():
		s.LeftWins++
	case m.Winner == pong.Right.String():
		s.RightWins++
	}
}

// Recorder writes matches.csv, points.csv, config.yaml and summary.json into
// a directory. A nil *Recorder accepts every call and writes nothing.
type Recorder struct {
	dir string

	mu                 sync.Mutex
	matchesFile        *os.File
	pointsFile         *os.File
	matchHeaderWritten bool
	pointHeaderWritten bool
	summary            Summary
}

// NewRecorder creates dir and opens the CSV files in it. Returns nil if dir
// is empty (recording disabled).
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	r := &Recorder{dir: dir}

	f, err := os.Create(filepath.Join(dir, "matches.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating matches.csv: %w", err)
	}
	r.matchesFile = f

	f, err = os.Create(filepath.Join(dir, "points.csv"))
	if err != nil {
		r.matchesFile.Close()
		return nil, fmt.Errorf("creating points.csv: %w", err)
	}
	r.pointsFile = f

	return r, nil
}

// Dir returns the output directory, or "" for a nil recorder
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// WriteConfig saves the engine configuration as YAML.
func (r *Recorder) WriteConfig(cfg pong.Config) error {
	if r == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, "config.yaml"), data, 0o644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}
	return nil
}

// RecordMatch appends a finished match and its points. Safe for concurrent
// use; rows of one match are never interleaved with another's.
func (r *Recorder) RecordMatch(m MatchRecord, points []PointRecord) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(points) > 0 {
		if err := writeRows(r.pointsFile, points, &r.pointHeaderWritten); err != nil {
			return fmt.Errorf("writing points: %w", err)
		}
	}
	if err := writeRows(r.matchesFile, []MatchRecord{m}, &r.matchHeaderWritten); err != nil {
		return fmt.Errorf("writing match: %w", err)
	}
	r.summary.Add(m, len(points))
	return nil
}

// Summary returns the aggregate of everything recorded so far
func (r *Recorder) Summary() Summary {
	if r == nil {
		return Summary{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// Close writes summary.json and closes the CSV files.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	firstErr := fileutil.WriteJSONAtomic(filepath.Join(r.dir, "summary.json"), r.summary)
	for _, f := range []*os.File{r.matchesFile, r.pointsFile} {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// writeRows marshals rows to f, with a header only on the first write.
func writeRows(f *os.File, rows any, headerWritten *bool) error {
	if *headerWritten {
		return gocsv.MarshalWithoutHeaders(rows, f)
	}
	if err := gocsv.Marshal(rows, f); err != nil {
		return err
	}
	*headerWritten = true
	return nil
}
