package board

import "NoteBoard/internal/state"

// DragPhase names the states of the drag machine: idle → dragging → idle.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragActive
)

// Drag tracks the one in-flight drag. The controller owns a single Drag, so
// only one note moves at a time process-wide.
type Drag struct {
	phase   DragPhase
	noteID  string
	offsetX float32
	offsetY float32
}

// Dragging reports whether a drag is in flight.
func (c *Controller) Dragging() bool {
	return c.drag.phase == DragActive
}

// BeginDrag starts dragging the note under the pointer, capturing the
// pointer's offset from the card's top-left corner. Starting a new drag
// while one is active replaces it.
func (c *Controller) BeginDrag(id string, pointerX, pointerY float32) bool {
	n, ok := c.notes.Get(id)
	if !ok {
		return false
	}
	c.drag = Drag{
		phase:   DragActive,
		noteID:  id,
		offsetX: pointerX - n.X,
		offsetY: pointerY - n.Y,
	}
	return true
}

// DragTo moves the dragged note so its top-left tracks the pointer minus
// the captured offset, clamped to keep the whole card on the board. It
// returns the applied position.
func (c *Controller) DragTo(pointerX, pointerY float32) (float32, float32, bool) {
	if c.drag.phase != DragActive {
		return 0, 0, false
	}
	x := clamp(pointerX-c.drag.offsetX, 0, c.geo.BoardWidth-c.geo.NoteWidth)
	y := clamp(pointerY-c.drag.offsetY, 0, c.geo.BoardHeight-c.geo.NoteHeight)
	c.notes.Update(c.drag.noteID, func(n *state.Note) {
		n.X = x
		n.Y = y
	})
	return x, y, true
}

// EndDrag returns the machine to idle.
func (c *Controller) EndDrag() {
	c.drag = Drag{}
}

func clamp(v, lo, hi float32) float32 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
