package formatter

import (
	"bytes"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(resp *entity.ScamperResponse) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	heading(doc, "Heading1", baseTitle)

	if resp.OriginalProblem != "" {
		par := doc.AddParagraph()
		label := par.AddRun()
		label.Properties().SetBold(true)
		label.AddText("Problema Analizado: ")
		par.AddRun().AddText(resp.OriginalProblem)
	}

	for _, s := range sections(resp) {
		heading(doc, "Heading2", s.Heading)
		doc.AddParagraph().AddRun().AddText(s.Explanation)
		for _, idea := range s.Ideas {
			doc.AddParagraph().AddRun().AddText("• " + idea)
		}
	}

	if resp.Summary != "" {
		heading(doc, "Heading2", "Resumen Ejecutivo")
		doc.AddParagraph().AddRun().AddText(resp.Summary)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func heading(doc *document.Document, style, text string) {
	par := doc.AddParagraph()
	par.SetStyle(style)
	par.AddRun().AddText(text)
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
