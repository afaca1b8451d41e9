package gameid

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id, err := New()
	require.NoError(t, err)
	assert.Len(t, id, 36)
	assert.NoError(t, Validate(id))
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := Must()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewSortsByTime(t *testing.T) {
	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, Must())
		time.Sleep(2 * time.Millisecond)
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	ts, err := Time(Must())
	require.NoError(t, err)
	assert.WithinRange(t, ts, before, time.Now().Add(time.Second))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"v7", "0190163d-8694-739b-aea5-966c26f8ad91", true},
		{"v4", "f47ac10b-58cc-4372-a567-0e02b2c3d479", false},
		{"garbage", "not-an-id", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
