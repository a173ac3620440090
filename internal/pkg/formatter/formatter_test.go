package formatter

import (
	"bytes"
	"testing"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse() *entity.ScamperResponse {
	return &entity.ScamperResponse{
		OriginalProblem: "Reducir el tiempo de espera",
		Results: []entity.ScamperResult{
			{Technique: entity.TechniqueEliminate, Explanation: "Quitar pasos", Ideas: []string{"Sin formularios", "Check-in móvil"}},
			{Technique: "custom", Explanation: "Otra", Ideas: []string{"X"}},
		},
		Summary: "Priorizar el check-in móvil.",
	}
}

func TestFactoryCreate(t *testing.T) {
	f := NewFactory()

	for format, ext := range map[entity.ResultFormat]string{
		entity.FormatMarkdown: ".md",
		entity.FormatPDF:      ".pdf",
		entity.FormatDOCX:     ".docx",
	} {
		fm, err := f.Create(format)
		require.NoError(t, err)
		assert.Equal(t, ext, fm.FileExtension())
		assert.NotEmpty(t, fm.ContentType())
	}

	_, err := f.Create("odt")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleResponse())
	require.NoError(t, err)

	want := "# Ideas SCAMPER\n\n" +
		"**Problema Analizado:** Reducir el tiempo de espera\n\n" +
		"## Eliminar - Simplificar\n\nQuitar pasos\n\n- Sin formularios\n- Check-in móvil\n\n" +
		"## CUSTOM\n\nOtra\n\n- X\n\n" +
		"## Resumen Ejecutivo\n\nPriorizar el check-in móvil.\n"
	assert.Equal(t, want, string(out))
}

func TestMarkdownFormatterWithoutSummary(t *testing.T) {
	resp := sampleResponse()
	resp.Summary = ""

	out, err := NewMarkdownFormatter().Format(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Resumen Ejecutivo")
}

func TestPDFFormatter(t *testing.T) {
	out, err := NewPDFFormatter().Format(sampleResponse())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
