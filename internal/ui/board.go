// Package ui renders the sticky-notes board with Fyne.
package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"NoteBoard/internal/board"
	"NoteBoard/internal/state"
)

var boardColor = color.NRGBA{R: 245, G: 246, B: 248, A: 255}

// boardCanvas hosts the note cards and turns a double-click on empty board
// space into a new note. Double-clicks on an existing card never land here;
// the card swallows them.
type boardCanvas struct {
	widget.BaseWidget
	ctrl    *board.Controller
	win     fyne.Window
	content *fyne.Container
	cards   map[string]*noteCard
}

var _ fyne.Widget = (*boardCanvas)(nil)
var _ fyne.DoubleTappable = (*boardCanvas)(nil)

func newBoardCanvas(ctrl *board.Controller, win fyne.Window) *boardCanvas {
	b := &boardCanvas{
		ctrl:    ctrl,
		win:     win,
		content: container.NewWithoutLayout(),
		cards:   make(map[string]*noteCard),
	}
	b.ExtendBaseWidget(b)
	for _, n := range ctrl.Notes() {
		b.addCard(n)
	}
	return b
}

func (b *boardCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(boardColor)
	return widget.NewSimpleRenderer(container.NewStack(bg, b.content))
}

// MinSize pins the canvas to the configured board bounds so drag clamping
// and the visible area agree.
func (b *boardCanvas) MinSize() fyne.Size {
	geo := b.ctrl.Geometry()
	return fyne.NewSize(geo.BoardWidth, geo.BoardHeight)
}

// DoubleTapped creates a note at the clicked board-relative point and
// focuses its text entry.
func (b *boardCanvas) DoubleTapped(e *fyne.PointEvent) {
	n, err := b.ctrl.CreateNoteAt(e.Position.X, e.Position.Y)
	if err != nil {
		slog.Error("create note failed", "error", err)
		return
	}
	card := b.addCard(n)
	b.win.Canvas().Focus(card.entry)
}

func (b *boardCanvas) addCard(n *state.Note) *noteCard {
	card := newNoteCard(n, b.ctrl, b.win, b.removeCard)
	geo := b.ctrl.Geometry()
	card.Resize(fyne.NewSize(geo.NoteWidth, geo.NoteHeight))
	card.Move(fyne.NewPos(n.X, n.Y))
	b.cards[n.ID] = card
	b.content.Add(card)
	b.content.Refresh()
	return card
}

// removeCard detaches a faded-out card from the canvas.
func (b *boardCanvas) removeCard(card *noteCard) {
	delete(b.cards, card.note.ID)
	b.content.Remove(card)
	b.content.Refresh()
}

// applySort reorders the collection and moves every card into the vertical
// stack layout the controller computed.
func (b *boardCanvas) applySort(ascending bool) {
	for _, n := range b.ctrl.SortByCreation(ascending) {
		if card, ok := b.cards[n.ID]; ok {
			card.Move(fyne.NewPos(n.X, n.Y))
		}
	}
	b.content.Refresh()
}
