package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ltask/internal/output"
	"ltask/internal/task"
)

// PDF writes a printable report of view: a title, the summary and
// one row per task with a check column.
func PDF(w io.Writer, view []task.Task, f task.Filter, sum task.Summary, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("ltask", false)
	pdf.SetCreationDate(now)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, fmt.Sprintf("Tasks (%s)", f))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, sum.String())
	pdf.Ln(10)

	if len(view) == 0 {
		pdf.MultiCell(0, 6, output.EmptyMessage(f), "0", "L", false)
	}
	for i, t := range view {
		check := ""
		if t.Completed {
			check = "x"
		}
		pdf.CellFormat(10, 6, fmt.Sprintf("%d", i+1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(10, 6, check, "1", 0, "C", false, 0, "")
		pdf.MultiCell(0, 6, tr(output.SanitizeText(t.Text)), "1", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
