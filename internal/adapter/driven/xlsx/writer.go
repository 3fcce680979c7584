// Package xlsx implements the RosterWriter port using the excelize library.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/efrayne/prrelay/internal/domain/model"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RosterWriter = (*Writer)(nil)

const sheetName = "Sheet1"

// header is the first roster row.
var header = []any{"Name", "Email", "Organization"}

// Writer writes directory rosters to .xlsx workbooks.
type Writer struct{}

// NewWriter creates a roster Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteRoster writes a header row followed by one row per user to path,
// overwriting any existing file.
func (w *Writer) WriteRoster(path string, users []model.DirectoryUser) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // Close after SaveAs only releases buffers.

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, user := range users {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("compute cell for row %d: %w", i+2, err)
		}

		row := []any{user.Name, user.Email, user.Organization}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write roster row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save roster to %s: %w", path, err)
	}

	return nil
}
