package state

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNote(t *testing.T) {
	at := time.Now()
	n, err := NewNote(100, 50, at)
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "", n.Content)
	assert.Equal(t, float32(100), n.X)
	assert.Equal(t, float32(50), n.Y)
	assert.Equal(t, at, n.CreatedAt)
	assert.Empty(t, n.ImageData)
	assert.Empty(t, n.Quote)
}

func TestNewNoteAssignsUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n, err := NewNote(0, 0, time.Now())
		require.NoError(t, err)
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
	}
}

func TestNewNoteRejectsNonFinitePosition(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	for _, pos := range [][2]float32{{nan, 0}, {0, nan}, {inf, 0}, {0, inf}} {
		_, err := NewNote(pos[0], pos[1], time.Now())
		assert.Error(t, err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	n, err := NewNote(100, 50, at)
	require.NoError(t, err)
	n.Content = "hello"
	n.ImageData = "data:image/png;base64,aGk="
	n.Quote = "stay hungry"

	data, err := json.Marshal(n.Record())
	require.NoError(t, err)

	var r Record
	require.NoError(t, json.Unmarshal(data, &r))
	got := NoteFromRecord(r)

	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, n.Content, got.Content)
	assert.Equal(t, n.X, got.X)
	assert.Equal(t, n.Y, got.Y)
	assert.True(t, n.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, n.ImageData, got.ImageData)
	assert.Equal(t, n.Quote, got.Quote)
}

func TestRecordAlwaysCarriesImageData(t *testing.T) {
	n, err := NewNote(1, 2, time.Now())
	require.NoError(t, err)

	data, err := json.Marshal(n.Record())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Contains(t, fields, "imageData")
	assert.NotContains(t, fields, "quote", "unset quote must not be persisted")
}

func TestRecordZeroCreatedAt(t *testing.T) {
	n, err := NewNote(0, 0, time.Time{})
	require.NoError(t, err)

	r := n.Record()
	assert.Equal(t, int64(0), r.CreatedAt)

	got := NoteFromRecord(r)
	assert.True(t, got.CreatedAt.IsZero())
}
