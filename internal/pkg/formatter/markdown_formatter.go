package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/scamper-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(resp *entity.ScamperResponse) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)

	if resp.OriginalProblem != "" {
		fmt.Fprintf(&buf, "**Problema Analizado:** %s\n\n", resp.OriginalProblem)
	}

	for _, s := range sections(resp) {
		fmt.Fprintf(&buf, "## %s\n\n%s\n\n", s.Heading, s.Explanation)
		for _, idea := range s.Ideas {
			fmt.Fprintf(&buf, "- %s\n", idea)
		}
		buf.WriteString("\n")
	}

	if resp.Summary != "" {
		fmt.Fprintf(&buf, "## Resumen Ejecutivo\n\n%s\n", resp.Summary)
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
