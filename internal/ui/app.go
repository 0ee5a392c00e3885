package ui

import (
	"context"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"NoteBoard/internal/board"
)

// Run opens the board window and blocks until it closes. The autosave loop
// runs for the window's lifetime and a final save happens on close, so
// quitting never loses state.
func Run(ctrl *board.Controller, autosave time.Duration) {
	buildWindow(app.New(), ctrl, autosave).ShowAndRun()
}

func buildWindow(a fyne.App, ctrl *board.Controller, autosave time.Duration) fyne.Window {
	win := a.NewWindow("NoteBoard")

	b := newBoardCanvas(ctrl, win)
	toolbar := newToolbar(b, ctrl, win)

	win.SetContent(container.NewBorder(toolbar, nil, nil, nil, container.NewScroll(b)))
	geo := ctrl.Geometry()
	win.Resize(fyne.NewSize(geo.BoardWidth, geo.BoardHeight+toolbar.MinSize().Height))

	ctx, cancel := context.WithCancel(context.Background())
	go ctrl.RunAutosave(ctx, autosave)

	win.SetCloseIntercept(func() {
		cancel()
		if err := ctrl.SaveNow(); err != nil {
			slog.Error("final save failed", "error", err)
		}
		win.Close()
	})

	return win
}
