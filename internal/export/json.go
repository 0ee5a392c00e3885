// Package export turns the board into downloadable artifacts.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"NoteBoard/internal/state"
)

// WriteJSON writes the whole collection as an indented JSON array. No
// filtering, no partial export.
func WriteJSON(w io.Writer, records []state.Record) error {
	if records == nil {
		records = []state.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}
