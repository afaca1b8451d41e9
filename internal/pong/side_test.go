package pong

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSide(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "unknown", Side(7).String())
	assert.Equal(t, Right, Left.Opponent())
	assert.Equal(t, Left, Right.Opponent())
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	e := MustNew(DefaultConfig())
	e.Step()
	e.Pause()

	data, err := json.Marshal(e.Snapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"paused"`)

	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, e.Snapshot(), got)
}

func TestUnmarshalTextRejectsUnknown(t *testing.T) {
	var s Side
	assert.Error(t, s.UnmarshalText([]byte("middle")))

	var st Status
	assert.Error(t, st.UnmarshalText([]byte("sleeping")))
	require.NoError(t, st.UnmarshalText([]byte("ended")))
	assert.Equal(t, Ended, st)
}
