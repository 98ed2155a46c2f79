package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
// Sections allows standings and match results to share one document.
func (e *PDFExporter) Render(title string, sections ...Section) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	for _, section := range sections {
		if len(section.Data.Headers) == 0 {
			return nil, fmt.Errorf("pdf section %q requires at least one header", section.Title)
		}
		if section.Title != "" {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 9, section.Title, "", 1, "L", false, 0, "")
			pdf.Ln(1)
		}

		pdf.SetFont("Arial", "B", 10)
		colWidth := 190.0 / float64(len(section.Data.Headers))
		for _, header := range section.Data.Headers {
			pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, row := range section.Data.Rows {
			for _, header := range section.Data.Headers {
				pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Section pairs a dataset with a heading inside a PDF document.
type Section struct {
	Title string
	Data  Dataset
}
