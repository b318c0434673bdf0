package transcript

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// SummaryFileName is the download name of an exported summary document.
const SummaryFileName = "neurofolio-summary.pdf"

// ErrNothingToExport reports an export attempt without a summary.
var ErrNothingToExport = errors.New("nothing to export")

// SummaryExporter renders the summary panel to a downloadable document.
// It is an external collaborator from the controller's point of view:
// failures are reported, never retried.
type SummaryExporter interface {
	ExportSummary(dir, summary, translated string) (string, error)
}

// PDFExporter writes the summary panel as a PDF file.
type PDFExporter struct{}

// ExportSummary renders the summary, and the translation when present, into
// dir under SummaryFileName and returns the written path.
func (PDFExporter) ExportSummary(dir, summary, translated string) (string, error) {
	if summary == "" {
		return "", ErrNothingToExport
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, "NeuroFolio", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 10, "Summary", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, summary, "", "L", false)

	if translated != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 10, "Translated Summary", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 6, translated, "", "L", false)
	}

	path := filepath.Join(dir, SummaryFileName)
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write summary pdf: %w", err)
	}
	return path, nil
}
