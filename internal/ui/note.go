package ui

import (
	"context"
	"image/color"
	"io"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"NoteBoard/internal/board"
	"NoteBoard/internal/state"
)

const (
	fadeDuration = 300 * time.Millisecond
	fetchTimeout = 10 * time.Second
	imageHeight  = 64
)

var cardColor = color.NRGBA{R: 255, G: 249, B: 196, A: 255}

// noteCard is the visual form of one note: editable text, timestamp,
// optional image and quote, and the delete/quote/image controls. Dragging
// the card body moves the note; the entry, image and buttons keep their own
// pointer behavior.
type noteCard struct {
	widget.BaseWidget
	note   *state.Note
	ctrl   *board.Controller
	win    fyne.Window
	onGone func(*noteCard)

	bg        *canvas.Rectangle
	entry     *widget.Entry
	timestamp *widget.Label
	quote     *widget.Label
	image     *canvas.Image
	deleteBtn *widget.Button
	quoteBtn  *widget.Button
	imageBtn  *widget.Button

	quoteFSM *board.QuoteButton
	dragging bool
	removed  bool
}

var _ fyne.Widget = (*noteCard)(nil)
var _ fyne.Draggable = (*noteCard)(nil)
var _ fyne.DoubleTappable = (*noteCard)(nil)

func newNoteCard(n *state.Note, ctrl *board.Controller, win fyne.Window, onGone func(*noteCard)) *noteCard {
	c := &noteCard{note: n, ctrl: ctrl, win: win, onGone: onGone}

	c.bg = canvas.NewRectangle(cardColor)
	c.bg.CornerRadius = 4

	c.entry = widget.NewMultiLineEntry()
	c.entry.Wrapping = fyne.TextWrapWord
	c.entry.SetText(n.Content)
	c.entry.OnChanged = func(text string) {
		ctrl.SetContent(n.ID, text)
	}

	c.timestamp = widget.NewLabel(timestampText(n))
	c.timestamp.TextStyle = fyne.TextStyle{Italic: true}
	if c.timestamp.Text == "" {
		c.timestamp.Hide()
	}

	c.quote = widget.NewLabel(n.Quote)
	c.quote.Wrapping = fyne.TextWrapWord
	if n.Quote == "" {
		c.quote.Hide()
	}

	c.image = &canvas.Image{FillMode: canvas.ImageFillContain}
	c.image.Hide()
	if n.ImageData != "" {
		if raw, ok := board.DecodeImageDataURL(n.ImageData); ok {
			c.showImage(raw)
		} else {
			slog.Warn("note has unreadable image data", "note", n.ID)
		}
	}

	c.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), c.deleteTapped)
	c.quoteBtn = widget.NewButtonWithIcon("", theme.MailComposeIcon(), c.quoteTapped)
	c.imageBtn = widget.NewButtonWithIcon("", theme.FileImageIcon(), c.imageTapped)

	c.quoteFSM = board.NewQuoteButton(c.applyQuotePhase)
	c.quoteFSM.After = func(d time.Duration, fn func()) {
		time.AfterFunc(d, func() { fyne.Do(fn) })
	}

	c.ExtendBaseWidget(c)
	return c
}

func timestampText(n *state.Note) string {
	if n.CreatedAt.IsZero() {
		slog.Warn("note has no creation time, hiding timestamp", "note", n.ID)
		return ""
	}
	return n.CreatedAt.Format("Jan 2, 2006 3:04 PM")
}

func (c *noteCard) CreateRenderer() fyne.WidgetRenderer {
	controls := container.NewHBox(c.quoteBtn, c.imageBtn, layout.NewSpacer(), c.deleteBtn)
	footer := container.NewVBox(c.image, c.quote, c.timestamp)
	body := container.NewBorder(controls, footer, nil, nil, c.entry)
	return widget.NewSimpleRenderer(container.NewStack(c.bg, container.NewPadded(body)))
}

// DoubleTapped swallows double-clicks so they never reach the board behind
// the card and create a new note.
func (c *noteCard) DoubleTapped(*fyne.PointEvent) {}

// Dragged moves the card through the controller's drag machine, which
// clamps the position to the board.
func (c *noteCard) Dragged(e *fyne.DragEvent) {
	pos := c.Position()
	pointerX := pos.X + e.Position.X
	pointerY := pos.Y + e.Position.Y
	if !c.dragging {
		if !c.ctrl.BeginDrag(c.note.ID, pointerX, pointerY) {
			return
		}
		c.dragging = true
	}
	if x, y, ok := c.ctrl.DragTo(pointerX, pointerY); ok {
		c.Move(fyne.NewPos(x, y))
	}
}

// DragEnd returns the drag machine to idle.
func (c *noteCard) DragEnd() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.ctrl.EndDrag()
}

func (c *noteCard) deleteTapped() {
	c.ctrl.Delete(c.note.ID, c.fadeOut)
}

// fadeOut plays the removal animation, then calls done and detaches the
// card. The note stays visible for the whole fade.
func (c *noteCard) fadeOut(done func()) {
	anim := fyne.NewAnimation(fadeDuration, func(p float32) {
		faded := cardColor
		faded.A = uint8(float32(cardColor.A) * (1 - p))
		c.bg.FillColor = faded
		c.bg.Refresh()
		if p >= 1 && !c.removed {
			c.removed = true
			done()
			if c.onGone != nil {
				c.onGone(c)
			}
		}
	})
	anim.Curve = fyne.AnimationEaseOut
	anim.Start()
}

func (c *noteCard) quoteTapped() {
	c.quoteFSM.Begin()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		text, err := c.ctrl.AttachQuote(ctx, c.note.ID)
		fyne.Do(func() {
			if err != nil {
				slog.Error("quote fetch failed", "note", c.note.ID, "error", err)
				c.quoteFSM.Fail()
				return
			}
			c.quote.SetText(text)
			c.quote.Show()
			c.quoteFSM.Succeed()
			c.Refresh()
		})
	}()
}

func (c *noteCard) applyQuotePhase(p board.QuotePhase) {
	switch p {
	case board.QuoteLoading:
		c.quoteBtn.SetIcon(theme.ViewRefreshIcon())
		c.quoteBtn.Disable()
	case board.QuoteError:
		c.quoteBtn.SetIcon(theme.WarningIcon())
	default:
		c.quoteBtn.SetIcon(theme.MailComposeIcon())
		c.quoteBtn.Enable()
	}
}

func (c *noteCard) imageTapped() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		data, err := io.ReadAll(reader)
		if err != nil {
			slog.Error("read image file failed", "note", c.note.ID, "error", err)
			return
		}
		// Non-image files are dropped without any error surfaced.
		if !c.ctrl.AttachImage(c.note.ID, data) {
			return
		}
		c.showImage(data)
		c.Refresh()
	}, c.win)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".webp"}))
	open.Show()
}

// showImage displays the raw image bytes, naming the resource after the
// note id so the attach and restore paths agree.
func (c *noteCard) showImage(raw []byte) {
	c.image.Resource = fyne.NewStaticResource(c.note.ID, raw)
	c.image.SetMinSize(fyne.NewSize(0, imageHeight))
	c.image.Show()
	c.image.Refresh()
}
