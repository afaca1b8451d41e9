package pong

import "fmt"

// Side identifies one half of the playfield and the paddle defending it.
type Side int

const (
	Left Side = iota
	Right
)

// String returns the lowercase name of the side
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == Left {
		return Right
	}
	return Left
}

// MarshalText lets sides appear as "left"/"right" in JSON and CSV output.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses "left" or "right".
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = Left
	case "right":
		*s = Right
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

// Status is the lifecycle state of a game.
type Status int

const (
	Running Status = iota
	Paused
	Ended
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name
func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{Running, Paused, Ended} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}
