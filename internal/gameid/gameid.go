// Package gameid generates time-ordered match identifiers.
package gameid

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New returns a UUIDv7 string. IDs sort by creation time.
func New() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate match id: %w", err)
	}
	return id.String(), nil
}

// Must is New for callers that cannot handle an error
func Must() string {
	id, err := New()
	if err != nil {
		panic(err)
	}
	return id
}

// Validate checks that id is a version 7 UUID
func Validate(id string) error {
	u, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", id, err)
	}
	if u.Version() != 7 {
		return fmt.Errorf("invalid match id %q: version %d, want 7", id, u.Version())
	}
	return nil
}

// Time extracts the creation time embedded in id.
func Time(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}
	sec, nsec := uuid.MustParse(id).Time().UnixTime()
	return time.Unix(sec, nsec), nil
}
