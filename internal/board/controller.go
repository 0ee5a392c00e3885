// Package board translates UI events into note-collection mutations. The
// controller owns no durable state itself; it coordinates the collection,
// the persistence store, and the quote source it is given.
package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"NoteBoard/internal/export"
	"NoteBoard/internal/state"
)

// QuoteSource provides one random quote per call.
type QuoteSource interface {
	Fetch(ctx context.Context) (string, error)
}

// Saver persists and restores the full board state.
type Saver interface {
	Load() ([]state.Record, error)
	Save([]state.Record) error
}

// Geometry fixes the clamp bounds for dragging and the stack layout applied
// after sorting.
type Geometry struct {
	BoardWidth, BoardHeight float32
	NoteWidth, NoteHeight   float32
	StackX, StackStep       float32
}

// Controller wires user input to the collection and the external
// collaborators.
type Controller struct {
	notes  *state.Collection
	store  Saver
	quotes QuoteSource
	geo    Geometry
	now    func() time.Time
	log    *slog.Logger
	drag   Drag
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLogger overrides the controller's logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// NewController creates a controller over an empty collection.
func NewController(store Saver, quotes QuoteSource, geo Geometry, opts ...Option) *Controller {
	c := &Controller{
		notes:  state.NewCollection(),
		store:  store,
		quotes: quotes,
		geo:    geo,
		now:    time.Now,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geometry returns the board geometry the controller clamps against.
func (c *Controller) Geometry() Geometry {
	return c.geo
}

// Notes returns all notes in insertion order.
func (c *Controller) Notes() []*state.Note {
	return c.notes.Notes()
}

// Len returns the number of notes on the board.
func (c *Controller) Len() int {
	return c.notes.Len()
}

// Bootstrap restores the persisted board. A missing save file yields an
// empty board; records without a creation time are backfilled with the
// current one before they re-enter normal flow.
func (c *Controller) Bootstrap() error {
	records, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("board: load: %w", err)
	}
	for i := range records {
		if records[i].CreatedAt == 0 {
			records[i].CreatedAt = c.now().UnixMilli()
			c.log.Warn("backfilled missing creation time", "note", records[i].ID)
		}
	}
	c.notes.Load(records)
	return nil
}

// CreateNoteAt adds a new empty note at the given board-relative point and
// returns it for rendering and focus.
func (c *Controller) CreateNoteAt(x, y float32) (*state.Note, error) {
	n, err := state.NewNote(x, y, c.now())
	if err != nil {
		return nil, err
	}
	c.notes.Add(n)
	return n, nil
}

// SetContent replaces a note's text. Any text, including empty, is valid.
func (c *Controller) SetContent(id, text string) {
	c.notes.Update(id, func(n *state.Note) {
		n.Content = text
	})
}

// Delete plays the fade callback and removes the note from the collection
// only once the fade signals completion, so the card stays visible during
// its own removal animation. A nil fade removes immediately.
func (c *Controller) Delete(id string, fade func(done func())) {
	if fade == nil {
		fade = func(done func()) { done() }
	}
	fade(func() {
		c.notes.Remove(id)
	})
}

// AttachQuote fetches a quote and stores it on the note. On failure the
// note's quote is left unchanged and the error is returned for display
// handling. Overlapping calls are not deduplicated: whichever completes
// last wins. If the note is deleted while the fetch is in flight the result
// lands on the detached note, matching the documented stale-write behavior.
func (c *Controller) AttachQuote(ctx context.Context, id string) (string, error) {
	if c.quotes == nil {
		return "", fmt.Errorf("board: no quote source configured")
	}
	n, ok := c.notes.Get(id)
	if !ok {
		return "", fmt.Errorf("board: no note %s", id)
	}
	text, err := c.quotes.Fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("board: fetch quote: %w", err)
	}
	if !c.notes.Update(id, func(m *state.Note) { m.Quote = text }) {
		n.Quote = text // note deleted mid-fetch; the write hits the detached entity
	}
	return text, nil
}

// AttachImage stores the payload on the note as a data URL and reports
// whether it was accepted. Non-image payloads are silently ignored.
func (c *Controller) AttachImage(id string, data []byte) bool {
	dataURL, ok := EncodeImageDataURL(data)
	if !ok {
		c.log.Debug("ignored non-image attachment", "note", id, "bytes", len(data))
		return false
	}
	return c.notes.Update(id, func(n *state.Note) {
		n.ImageData = dataURL
	})
}

// SortByCreation orders the notes by creation time and resets the layout
// into a fixed vertical stack: constant X, constant step per row. It
// returns the notes in their new display order.
func (c *Controller) SortByCreation(ascending bool) []*state.Note {
	sorted := c.notes.SortedByCreation(ascending)
	for i, n := range sorted {
		y := float32(i) * c.geo.StackStep
		c.notes.Update(n.ID, func(m *state.Note) {
			m.X = c.geo.StackX
			m.Y = y
		})
	}
	return sorted
}

// ExportJSON writes the whole collection to w.
func (c *Controller) ExportJSON(w io.Writer) error {
	return export.WriteJSON(w, c.notes.Records())
}

// ExportPDF writes a one-page PDF snapshot of the board to w.
func (c *Controller) ExportPDF(w io.Writer) error {
	return export.WritePDF(w, c.notes.Notes(), export.Layout{
		BoardWidth:  c.geo.BoardWidth,
		BoardHeight: c.geo.BoardHeight,
		NoteWidth:   c.geo.NoteWidth,
		NoteHeight:  c.geo.NoteHeight,
	})
}

// SaveNow persists the full state. Every call writes everything; there is
// no diffing or dirty-tracking.
func (c *Controller) SaveNow() error {
	if err := c.store.Save(c.notes.Records()); err != nil {
		return fmt.Errorf("board: save: %w", err)
	}
	return nil
}

// RunAutosave persists the full state on a fixed interval until ctx is
// done. Failed saves are logged and never fatal; there are no retries
// beyond the next tick.
func (c *Controller) RunAutosave(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.SaveNow(); err != nil {
				c.log.Error("autosave failed", "error", err)
			}
		}
	}
}
