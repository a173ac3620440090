package formatter

import (
	"fmt"

	"github.com/futig/scamper-backend/internal/entity"
)

const baseTitle = "Ideas SCAMPER"

type Formatter interface {
	Format(resp *entity.ScamperResponse) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}

// section is one technique block, shared by every output format
type section struct {
	Heading     string
	Explanation string
	Ideas       []string
}

func sections(resp *entity.ScamperResponse) []section {
	out := make([]section, 0, len(resp.Results))
	for _, res := range resp.Results {
		out = append(out, section{
			Heading:     res.Technique.DisplayName(),
			Explanation: res.Explanation,
			Ideas:       res.Ideas,
		})
	}
	return out
}
