package form

import (
	"testing"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayloadSkipsMalformedEntries(t *testing.T) {
	p, err := DecodePayload([]byte(`{"results":[
		{"technique":"modify","explanation":"e","ideas":["a"]},
		{"technique":"","explanation":"e","ideas":["a"]},
		{"technique":"modify","explanation":"","ideas":["a"]},
		{"technique":"modify","explanation":"e","ideas":"a"},
		{"technique":7,"explanation":"e","ideas":["a"]},
		"string entry"
	]}`))
	require.NoError(t, err)

	assert.True(t, p.HasResults)
	assert.Equal(t, 5, p.Skipped)
	require.Len(t, p.Results, 1)
	assert.Equal(t, entity.TechniqueModify, p.Results[0].Technique)
}

func TestDecodePayloadNonObject(t *testing.T) {
	p, err := DecodePayload([]byte(`"hola"`))
	require.NoError(t, err)
	assert.False(t, p.HasResults)

	_, err = DecodePayload([]byte(`{`))
	assert.Error(t, err)
}

func TestPayloadFromResponse(t *testing.T) {
	resp := &entity.ScamperResponse{
		OriginalProblem: "p",
		Results: []entity.ScamperResult{
			{Technique: entity.TechniqueEliminate, Ideas: []string{"quitar pasos"}, Explanation: "simplificar"},
			{Technique: entity.TechniqueAdapt, Ideas: nil, Explanation: "sin ideas"},
		},
		Summary: "s",
	}

	p, err := PayloadFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "p", p.OriginalProblem)
	assert.Equal(t, "s", p.Summary)
	require.Len(t, p.Results, 1)
	assert.Equal(t, 1, p.Skipped)
}

func TestMarkupKeepsOnlyInlineFormatting(t *testing.T) {
	got := string(Markup(`<b>Fusionar</b> <script>alert(1)</script><a href="x">link</a>`))
	assert.Equal(t, "<b>Fusionar</b> link", got)
}
