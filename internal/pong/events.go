package pong

import "fmt"

// EventType names something notable that happened during a tick.
type EventType string

const (
	EventPointScored EventType = "point_scored"
	EventGameOver    EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is raised by Step. Side is the scorer for EventPointScored and the
// winner for EventGameOver.
type Event struct {
	Type   EventType `json:"type"`
	Tick   uint64    `json:"tick"`
	Side   Side      `json:"side"`
	Scores [2]int    `json:"scores"`
	Winner string    `json:"winner,omitempty"`
}

func (e Event) String() string {
	switch e.Type {
	case EventPointScored:
		return fmt.Sprintf("tick %d: %s scores (%d-%d)", e.Tick, e.Side, e.Scores[Left], e.Scores[Right])
	case EventGameOver:
		return fmt.Sprintf("tick %d: %s wins (%d-%d)", e.Tick, e.Winner, e.Scores[Left], e.Scores[Right])
	default:
		return fmt.Sprintf("tick %d: %s", e.Tick, e.Type)
	}
}
