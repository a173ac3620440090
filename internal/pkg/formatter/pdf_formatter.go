package formatter

import (
	"bytes"
	"os"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// In Docker runtime fonts are copied to /app/ttf,
	// so for the compiled binary the path is ./ttf/DejaVuSans.ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}
	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}
	return ""
}

func (mf *PDFFormatter) Format(resp *entity.ScamperResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Core fonts are cp1252, which still covers Spanish accents
	fontName := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		tr = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, tr(baseTitle))
	pdf.Ln(14)

	if resp.OriginalProblem != "" {
		pdf.SetFont(fontName, "B", 12)
		pdf.Cell(0, 8, tr("Problema Analizado:"))
		pdf.Ln(8)
		pdf.SetFont(fontName, "", 12)
		_, lineHeight := pdf.GetFontSize()
		pdf.MultiCell(0, lineHeight*1.5, tr(resp.OriginalProblem), "", "", false)
		pdf.Ln(4)
	}

	for _, s := range sections(resp) {
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, 10, tr(s.Heading))
		pdf.Ln(10)

		pdf.SetFont(fontName, "", 11)
		_, lineHeight := pdf.GetFontSize()
		pdf.MultiCell(0, lineHeight*1.5, tr(s.Explanation), "", "", false)
		for _, idea := range s.Ideas {
			pdf.MultiCell(0, lineHeight*1.5, tr("- "+idea), "", "", false)
		}
		pdf.Ln(4)
	}

	if resp.Summary != "" {
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, 10, tr("Resumen Ejecutivo"))
		pdf.Ln(10)
		pdf.SetFont(fontName, "", 11)
		_, lineHeight := pdf.GetFontSize()
		pdf.MultiCell(0, lineHeight*1.5, tr(resp.Summary), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
