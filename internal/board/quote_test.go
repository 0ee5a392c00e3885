package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimer collects scheduled reverts so tests fire them by hand.
type manualTimer struct {
	delays []time.Duration
	fns    []func()
}

func (m *manualTimer) after(d time.Duration, fn func()) {
	m.delays = append(m.delays, d)
	m.fns = append(m.fns, fn)
}

func (m *manualTimer) fire() {
	for _, fn := range m.fns {
		fn()
	}
	m.fns = nil
}

func recordingButton() (*QuoteButton, *[]QuotePhase, *manualTimer) {
	var phases []QuotePhase
	b := NewQuoteButton(func(p QuotePhase) { phases = append(phases, p) })
	timer := &manualTimer{}
	b.After = timer.after
	return b, &phases, timer
}

func TestQuoteButtonSuccessPath(t *testing.T) {
	b, phases, _ := recordingButton()

	b.Begin()
	assert.Equal(t, QuoteLoading, b.Phase())
	b.Succeed()
	assert.Equal(t, QuoteIdle, b.Phase())
	assert.Equal(t, []QuotePhase{QuoteLoading, QuoteIdle}, *phases)
}

func TestQuoteButtonFailureRevertsAfterDelay(t *testing.T) {
	b, phases, timer := recordingButton()

	b.Begin()
	b.Fail()
	assert.Equal(t, QuoteError, b.Phase(), "error glyph shows before the revert")
	require.Len(t, timer.delays, 1)
	assert.Equal(t, ErrorRevertDelay, timer.delays[0])

	timer.fire()
	assert.Equal(t, QuoteIdle, b.Phase())
	assert.Equal(t, []QuotePhase{QuoteLoading, QuoteError, QuoteIdle}, *phases)
}

func TestQuoteButtonRevertSkippedWhenPhaseMovedOn(t *testing.T) {
	b, _, timer := recordingButton()

	b.Begin()
	b.Fail()
	// A new fetch starts before the revert timer fires.
	b.Begin()
	timer.fire()
	assert.Equal(t, QuoteLoading, b.Phase(), "stale revert must not clobber a new fetch")
}

func TestQuoteButtonDefaultTimer(t *testing.T) {
	b := NewQuoteButton(nil)
	assert.NotNil(t, b.After)
	assert.Equal(t, QuoteIdle, b.Phase())
}
