package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"NoteBoard/internal/state"
)

// Layout describes the board geometry used to scale cards onto the page.
type Layout struct {
	BoardWidth, BoardHeight float32
	NoteWidth, NoteHeight   float32
}

// A4 landscape drawing area in millimetres, inside a 10mm margin.
const (
	pageW   = 277.0
	pageH   = 190.0
	pageOff = 10.0
)

// WritePDF renders every note as a positioned card on one landscape A4 page.
func WritePDF(w io.Writer, notes []*state.Note, layout Layout) error {
	if layout.BoardWidth <= 0 || layout.BoardHeight <= 0 {
		return fmt.Errorf("export: invalid board size %vx%v", layout.BoardWidth, layout.BoardHeight)
	}

	scale := pageW / float64(layout.BoardWidth)
	if s := pageH / float64(layout.BoardHeight); s < scale {
		scale = s
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()
	p.SetDrawColor(120, 120, 120)
	p.SetFillColor(255, 249, 196)
	p.SetLineWidth(0.3)

	cardW := float64(layout.NoteWidth) * scale
	cardH := float64(layout.NoteHeight) * scale

	for _, n := range notes {
		x := pageOff + float64(n.X)*scale
		y := pageOff + float64(n.Y)*scale
		p.Rect(x, y, cardW, cardH, "FD")

		p.ClipRect(x+1, y+1, cardW-2, cardH-2, false)
		p.SetFont("Helvetica", "", 8)
		p.SetXY(x+1, y+1)
		p.MultiCell(cardW-2, 3.5, n.Content, "", "L", false)
		if !n.CreatedAt.IsZero() {
			p.SetFont("Helvetica", "I", 6)
			p.SetXY(x+1, y+cardH-4)
			p.CellFormat(cardW-2, 3, n.CreatedAt.Format("Jan 2, 2006 3:04 PM"), "", 0, "R", false, 0, "")
		}
		p.ClipEnd()
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: pdf: %w", err)
	}
	return nil
}
