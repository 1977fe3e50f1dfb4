package export

import (
	"bytes"
	"context"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

const (
	pdfMargin     = 10.0
	pdfTitleSize  = 16.0
	pdfBodySize   = 9.0
	pdfRowHeight  = 7.0
	pdfCellInset  = 1.5
	pdfEllipsis   = "..."
	pdfFontFamily = "Helvetica"
)

// PDFExporter renders a landscape A4 document with a title and one table.
type PDFExporter struct {
	// Compress enables stream compression.
	Compress bool
	// CreatedAt is stamped as the document creation date when non-zero.
	CreatedAt time.Time
}

func (PDFExporter) Format() models.Format { return models.FormatPDF }
func (PDFExporter) FileExtension() string { return ".pdf" }
func (PDFExporter) MimeType() string      { return "application/pdf" }

// Export lays the table out in equal-width columns, repeating the header row
// on every page. Cell text wider than its column is cut with an ellipsis.
func (e PDFExporter) Export(ctx context.Context, t *Table) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(e.Compress)
	if !e.CreatedAt.IsZero() {
		pdf.SetCreationDate(e.CreatedAt)
	}
	pdf.SetTitle(t.Title, true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "B", pdfTitleSize)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin) / float64(max(len(t.Headers), 1))

	drawHeader := func() {
		pdf.SetFont(pdfFontFamily, "B", pdfBodySize)
		pdf.SetFillColor(231, 230, 230)
		for _, h := range t.Headers {
			pdf.CellFormat(colW, pdfRowHeight, fitText(pdf, tr(h), colW), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFontFamily, "", pdfBodySize)
	}
	drawHeader()

	for i, row := range t.Rows {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			drawHeader()
		}
		for _, v := range row {
			pdf.CellFormat(colW, pdfRowHeight, fitText(pdf, tr(v), colW), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitText cuts s so it fits in width w, ending it with an ellipsis.
// s is already in the single-byte font encoding.
func fitText(pdf *fpdf.Fpdf, s string, w float64) string {
	avail := w - 2*pdfCellInset
	if pdf.GetStringWidth(s) <= avail {
		return s
	}
	for n := len(s) - 1; n > 0; n-- {
		cut := s[:n] + pdfEllipsis
		if pdf.GetStringWidth(cut) <= avail {
			return cut
		}
	}
	return ""
}
