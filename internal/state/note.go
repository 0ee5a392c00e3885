package state

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Note is a single sticky note on the board.
//
// Position is measured in pixels from the board's top-left corner. Callers
// are responsible for bounds-clamping before writing a position; the entity
// stores whatever it is given.
type Note struct {
	ID        string
	Content   string
	X, Y      float32
	CreatedAt time.Time // zero value means missing/invalid
	ImageData string    // optional data URL
	Quote     string    // optional, absent until fetched
}

// NewNote creates a note at the given board-relative position with empty
// content and no image or quote. The position must be finite.
func NewNote(x, y float32, at time.Time) (*Note, error) {
	if !finite(x) || !finite(y) {
		return nil, fmt.Errorf("state: note position must be finite, got (%v, %v)", x, y)
	}
	return &Note{
		ID:        uuid.NewString(),
		X:         x,
		Y:         y,
		CreatedAt: at,
	}, nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Record is the persisted shape of a note. CreatedAt is Unix milliseconds;
// zero marks a record with no creation time. Quote is omitted when unset so
// a never-quoted note persists in the plain {id, content, x, y, createdAt,
// imageData} shape.
type Record struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	CreatedAt int64   `json:"createdAt"`
	ImageData string  `json:"imageData"`
	Quote     string  `json:"quote,omitempty"`
}

// Record returns the persisted form of the note.
func (n *Note) Record() Record {
	var at int64
	if !n.CreatedAt.IsZero() {
		at = n.CreatedAt.UnixMilli()
	}
	return Record{
		ID:        n.ID,
		Content:   n.Content,
		X:         n.X,
		Y:         n.Y,
		CreatedAt: at,
		ImageData: n.ImageData,
		Quote:     n.Quote,
	}
}

// NoteFromRecord rebuilds a note from its persisted form. A zero CreatedAt
// stays the zero time; backfilling is the bootstrap's job.
func NoteFromRecord(r Record) *Note {
	n := &Note{
		ID:        r.ID,
		Content:   r.Content,
		X:         r.X,
		Y:         r.Y,
		ImageData: r.ImageData,
		Quote:     r.Quote,
	}
	if r.CreatedAt != 0 {
		n.CreatedAt = time.UnixMilli(r.CreatedAt)
	}
	return n
}
