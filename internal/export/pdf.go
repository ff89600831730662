// Package export renders entity listings as PDF tables. The layout is
// fixed across entities: a centered title, then a striped table with a
// blue header row, 8pt body text, repeated column headers on page breaks.
package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"pannel_backoffice/internal/common"
)

// Column describes one table column: its printed header and how to project
// a row value out of an item. Width is in millimeters; zero means an equal
// share of the remaining printable width.
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(item T) string
}

// TableSpec is the per-entity export description.
type TableSpec[T any] struct {
	Title    string
	Filename string
	Columns  []Column[T]
}

// Printable width of an A4 portrait page with 10mm margins.
const printableWidth = 190.0

// Render writes the items as a PDF document to w.
func Render[T any](spec TableSpec[T], items []T, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	// French labels carry accents; the core fonts are cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(spec.Title), "", 1, "C", false, 0, "")
	pdf.SetY(30)

	widths := columnWidths(spec.Columns)
	writeHeader := func() {
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 8)
		for i, col := range spec.Columns {
			pdf.CellFormat(widths[i], 7, tr(col.Header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
	fill := false
	for _, item := range items {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeHeader()
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 8)
		}
		pdf.SetFillColor(235, 240, 245)
		for i, col := range spec.Columns {
			pdf.CellFormat(widths[i], 6, tr(col.Value(item)), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	if err := pdf.Output(w); err != nil {
		return common.NewError(common.ErrCodeInternal,
			fmt.Sprintf("rendering %s: %v", spec.Filename, err),
			common.StatusInternalServerError, nil)
	}
	return nil
}

// columnWidths spreads the printable width over the columns that did not
// declare one.
func columnWidths[T any](cols []Column[T]) []float64 {
	widths := make([]float64, len(cols))
	remaining := printableWidth
	flexible := 0
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			remaining -= col.Width
		} else {
			flexible++
		}
	}
	if flexible > 0 {
		share := remaining / float64(flexible)
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}
