package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"NoteBoard/internal/board"
)

func newToolbar(b *boardCanvas, ctrl *board.Controller, win fyne.Window) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.MoveUpIcon(), func() { b.applySort(true) }),
		widget.NewToolbarAction(theme.MoveDownIcon(), func() { b.applySort(false) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DownloadIcon(), func() { showExport(ctrl, win, "json") }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { showExport(ctrl, win, "pdf") }),
	)
	return container.NewHBox(
		widget.NewLabel("Sort / Export:"),
		tb,
		layout.NewSpacer(),
		widget.NewLabel("Double-click the board to add a note"),
	)
}

func showExport(ctrl *board.Controller, win fyne.Window, format string) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if format == "pdf" {
			err = ctrl.ExportPDF(writer)
		} else {
			err = ctrl.ExportJSON(writer)
		}
		if err != nil {
			slog.Error("export failed", "format", format, "error", err)
			dialog.ShowError(err, win)
		}
	}, win)
	save.SetFileName("board." + format)
	save.Show()
}
