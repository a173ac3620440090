package form

import (
	"bytes"
	"testing"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextResults(t *testing.T) {
	v := NewRenderer().Render(&Payload{
		OriginalProblem: "Ventas bajas",
		HasResults:      true,
		Results: []Entry{
			{Technique: entity.TechniqueCombine, Explanation: "<b>Unir</b> canales", Ideas: []string{"Tienda & app", "Eventos"}},
		},
		Summary: "Enfocarse en omnicanal",
	})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, v))
	out := buf.String()

	assert.Contains(t, out, "PROBLEMA ANALIZADO:\n   Ventas bajas")
	assert.Contains(t, out, "1. 🔧 Combinar - Fusionar ideas")
	assert.Contains(t, out, "💭 Unir canales")
	assert.Contains(t, out, "   1. Tienda & app")
	assert.Contains(t, out, "✨ Enfocarse en omnicanal")
	assert.Contains(t, out, "Total de ideas generadas: 2")
	assert.Contains(t, out, "Promedio de ideas por técnica: 2.0")
}

func TestWriteTextError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, NewRenderer().RenderError("fallo")))
	assert.Equal(t, "\n❌ fallo\n", buf.String())
}
