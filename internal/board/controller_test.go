package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NoteBoard/internal/state"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

type fakeStore struct {
	records []state.Record
	loadErr error
	saveErr error
	saves   int
	saved   chan struct{}
}

func (f *fakeStore) Load() ([]state.Record, error) {
	return f.records, f.loadErr
}

func (f *fakeStore) Save(records []state.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records = records
	f.saves++
	if f.saved != nil {
		select {
		case f.saved <- struct{}{}:
		default:
		}
	}
	return nil
}

type fakeQuotes struct {
	text    string
	err     error
	onFetch func()
}

func (f *fakeQuotes) Fetch(ctx context.Context) (string, error) {
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.text, f.err
}

func testGeometry() Geometry {
	return Geometry{
		BoardWidth:  1200,
		BoardHeight: 800,
		NoteWidth:   220,
		NoteHeight:  180,
		StackX:      40,
		StackStep:   40,
	}
}

func newTestController(t *testing.T, store Saver, quotes QuoteSource) *Controller {
	t.Helper()
	if store == nil {
		store = &fakeStore{}
	}
	now := time.UnixMilli(1700000000000)
	return NewController(store, quotes, testGeometry(), WithClock(func() time.Time { return now }))
}

func TestCreateNoteAt(t *testing.T) {
	c := newTestController(t, nil, nil)

	n, err := c.CreateNoteAt(100, 50)
	require.NoError(t, err)

	assert.Equal(t, "", n.Content)
	assert.Equal(t, float32(100), n.X)
	assert.Equal(t, float32(50), n.Y)
	assert.Equal(t, int64(1700000000000), n.CreatedAt.UnixMilli())
	assert.Equal(t, 1, c.Len())
}

func TestSetContent(t *testing.T) {
	c := newTestController(t, nil, nil)
	n, err := c.CreateNoteAt(0, 0)
	require.NoError(t, err)

	c.SetContent(n.ID, "hello")
	assert.Equal(t, "hello", n.Content)

	c.SetContent(n.ID, "")
	assert.Equal(t, "", n.Content)
}

func TestDeleteRemovesOnlyAfterFade(t *testing.T) {
	c := newTestController(t, nil, nil)
	n, err := c.CreateNoteAt(0, 0)
	require.NoError(t, err)

	var finish func()
	c.Delete(n.ID, func(done func()) { finish = done })

	// Fade still running: the note must still be in the collection.
	require.NotNil(t, finish)
	assert.Equal(t, 1, c.Len())

	finish()
	assert.Equal(t, 0, c.Len())
}

func TestDeleteWithoutFadeRemovesImmediately(t *testing.T) {
	c := newTestController(t, nil, nil)
	n, err := c.CreateNoteAt(0, 0)
	require.NoError(t, err)

	c.Delete(n.ID, nil)
	assert.Equal(t, 0, c.Len())
}

func TestAttachQuoteStoresResult(t *testing.T) {
	c := newTestController(t, nil, &fakeQuotes{text: "a quote"})
	n, err := c.CreateNoteAt(0, 0)
	require.NoError(t, err)

	got, err := c.AttachQuote(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "a quote", got)
	assert.Equal(t, "a quote", n.Quote)
}

func TestAttachQuoteFailureLeavesQuoteUnchanged(t *testing.T) {
	c := newTestController(t, nil, &fakeQuotes{err: errors.New("offline")})
	n, err := c.CreateNoteAt(0, 0)
	require.NoError(t, err)
	n.Quote = "previous"

	_, err = c.AttachQuote(context.Background(), n.ID)
	assert.Error(t, err)
	assert.Equal(t, "previous", n.Quote)
}

func TestAttachQuoteAfterDeleteHitsDetachedNote(t *testing.T) {
	q := &fakeQuotes{text: "late"}
	c := newTestController(t, nil, q)
	n, err := c.CreateNoteAt(0, 0)
	require.NoError(t, err)

	// Delete the note while the fetch is "in flight".
	q.onFetch = func() { c.Delete(n.ID, nil) }

	got, err := c.AttachQuote(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "late", got)
	assert.Equal(t, 0, c.Len())
	// The stale write lands on the detached entity, never on the board.
	assert.Equal(t, "late", n.Quote)
}

func TestAttachImage(t *testing.T) {
	c := newTestController(t, nil, nil)
	n, err := c.CreateNoteAt(0, 0)
	require.NoError(t, err)

	require.True(t, c.AttachImage(n.ID, pngHeader))
	assert.Contains(t, n.ImageData, "data:image/png;base64,")
}

func TestAttachImageIgnoresNonImage(t *testing.T) {
	c := newTestController(t, nil, nil)
	n, err := c.CreateNoteAt(0, 0)
	require.NoError(t, err)
	n.ImageData = "data:image/png;base64,aGk="

	assert.False(t, c.AttachImage(n.ID, []byte("just some text")))
	assert.Equal(t, "data:image/png;base64,aGk=", n.ImageData, "imageData must be unchanged")
}

func TestSortByCreationStacksVertically(t *testing.T) {
	c := newTestController(t, nil, nil)
	geo := c.Geometry()

	first, err := c.CreateNoteAt(500, 300)
	require.NoError(t, err)
	first.CreatedAt = time.UnixMilli(1000)
	second, err := c.CreateNoteAt(10, 10)
	require.NoError(t, err)
	second.CreatedAt = time.UnixMilli(2000)

	sorted := c.SortByCreation(false)
	require.Len(t, sorted, 2)
	assert.Equal(t, second.ID, sorted[0].ID, "descending puts the newer note first")
	assert.Equal(t, first.ID, sorted[1].ID)

	for i, n := range sorted {
		assert.Equal(t, geo.StackX, n.X)
		assert.Equal(t, float32(i)*geo.StackStep, n.Y)
	}
}

func TestBootstrapEmptyStore(t *testing.T) {
	c := newTestController(t, &fakeStore{}, nil)
	require.NoError(t, c.Bootstrap())
	assert.Equal(t, 0, c.Len())
}

func TestBootstrapLoadError(t *testing.T) {
	c := newTestController(t, &fakeStore{loadErr: errors.New("disk gone")}, nil)
	assert.Error(t, c.Bootstrap())
}

func TestBootstrapBackfillsMissingCreatedAt(t *testing.T) {
	store := &fakeStore{records: []state.Record{
		{ID: "a", Content: "old", X: 1, Y: 2, CreatedAt: 1600000000000},
		{ID: "b", Content: "no timestamp", X: 3, Y: 4},
	}}
	c := newTestController(t, store, nil)
	require.NoError(t, c.Bootstrap())

	notes := c.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, int64(1600000000000), notes[0].CreatedAt.UnixMilli())
	assert.Equal(t, int64(1700000000000), notes[1].CreatedAt.UnixMilli(), "missing timestamp backfilled from the clock")
}

func TestSaveNowWritesFullState(t *testing.T) {
	store := &fakeStore{}
	c := newTestController(t, store, nil)
	a, err := c.CreateNoteAt(100, 50)
	require.NoError(t, err)
	c.SetContent(a.ID, "hello")
	_, err = c.CreateNoteAt(200, 60)
	require.NoError(t, err)

	require.NoError(t, c.SaveNow())
	require.Len(t, store.records, 2)
	assert.Equal(t, "hello", store.records[0].Content)
	assert.Equal(t, float32(100), store.records[0].X)
}

func TestRunAutosaveTicks(t *testing.T) {
	store := &fakeStore{saved: make(chan struct{}, 1)}
	c := newTestController(t, store, nil)
	_, err := c.CreateNoteAt(0, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.RunAutosave(ctx, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-store.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("autosave never ticked")
	}
	cancel()
	<-done
	assert.GreaterOrEqual(t, store.saves, 1)
}

func TestRunAutosaveSurvivesSaveErrors(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("quota exceeded")}
	c := newTestController(t, store, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	c.RunAutosave(ctx, 10*time.Millisecond) // must return on ctx, not crash
}

func TestExportJSONWholeCollection(t *testing.T) {
	c := newTestController(t, nil, nil)
	n, err := c.CreateNoteAt(100, 50)
	require.NoError(t, err)
	c.SetContent(n.ID, "hello")

	var buf bytes.Buffer
	require.NoError(t, c.ExportJSON(&buf))

	var records []state.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "hello", records[0].Content)
	assert.Equal(t, float32(100), records[0].X)
	assert.Equal(t, float32(50), records[0].Y)
}

func TestExportPDF(t *testing.T) {
	c := newTestController(t, nil, nil)
	_, err := c.CreateNoteAt(100, 50)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.ExportPDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
