package board

import "time"

// QuotePhase names the transient display states of a note's quote control:
// idle → loading → {idle | error → idle}. The phase is display state only
// and is never persisted.
type QuotePhase int

const (
	QuoteIdle QuotePhase = iota
	QuoteLoading
	QuoteError
)

// ErrorRevertDelay is how long the error glyph stays before reverting.
const ErrorRevertDelay = 1500 * time.Millisecond

// QuoteButton drives the quote control's transitions. OnPhase observes
// every change; After schedules the error revert and is injectable for
// tests. The machine is not goroutine-safe: drive it from the UI thread.
type QuoteButton struct {
	phase   QuotePhase
	OnPhase func(QuotePhase)
	After   func(time.Duration, func())
}

// NewQuoteButton creates a machine in the idle phase.
func NewQuoteButton(onPhase func(QuotePhase)) *QuoteButton {
	return &QuoteButton{
		OnPhase: onPhase,
		After: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// Phase returns the current phase.
func (b *QuoteButton) Phase() QuotePhase {
	return b.phase
}

// Begin marks a fetch in flight.
func (b *QuoteButton) Begin() {
	b.set(QuoteLoading)
}

// Succeed restores the control.
func (b *QuoteButton) Succeed() {
	b.set(QuoteIdle)
}

// Fail shows the error glyph and schedules the revert to idle.
func (b *QuoteButton) Fail() {
	b.set(QuoteError)
	b.After(ErrorRevertDelay, func() {
		if b.phase == QuoteError {
			b.set(QuoteIdle)
		}
	})
}

func (b *QuoteButton) set(p QuotePhase) {
	b.phase = p
	if b.OnPhase != nil {
		b.OnPhase(p)
	}
}
