package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	answer     string
	err        error
	lastPrompt string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.answer, s.err
}

func TestDefinitionsCoverEveryTechnique(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, len(entity.AllTechniques()))

	for i, technique := range entity.AllTechniques() {
		def := defs[i]
		assert.Equal(t, technique, def.Technique)
		assert.NotEmpty(t, def.Name)
		assert.Len(t, def.PromptQuestions, 3, def.Name)
		assert.Len(t, def.ExplanationQuestions, 4, def.Name)
		assert.Len(t, def.FocusAreas, 5, def.Name)
	}
}

func TestParseIdeas(t *testing.T) {
	cases := []struct {
		name   string
		answer string
		limit  int
		want   []string
	}{
		{
			name:   "numbered",
			answer: "Aquí van:\n1. Primera\n2) Segunda\n3. Tercera\n4. Cuarta",
			limit:  3,
			want:   []string{"Primera", "Segunda", "Tercera"},
		},
		{
			name:   "dashes and bullets",
			answer: "- Uno\n• Dos\n  * ignorada",
			limit:  3,
			want:   []string{"Uno", "Dos"},
		},
		{
			name:   "no list items",
			answer: "  Una sola respuesta sin formato  ",
			limit:  3,
			want:   []string{"Una sola respuesta sin formato"},
		},
		{
			name:   "empty markers are dropped",
			answer: "1.\n-\n2. Buena",
			limit:  3,
			want:   []string{"Buena"},
		},
		{
			name:   "double digit numbering",
			answer: "10. Décima\n11. Onceava",
			limit:  0,
			want:   []string{"Décima", "Onceava"},
		},
		{
			name:   "year is not a marker",
			answer: "2024 será distinto",
			limit:  3,
			want:   []string{"2024 será distinto"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseIdeas(tc.answer, tc.limit))
		})
	}

	assert.Empty(t, ParseIdeas("   ", 3))
}

func TestBuildPrompt(t *testing.T) {
	def := Definitions()[0]

	withContext := BuildPrompt(def, "Reducir costos", "Restaurante pequeño")
	assert.Contains(t, withContext, "técnica SCAMPER de SUSTITUIR")
	assert.Contains(t, withContext, "Problema: Reducir costos\n")
	assert.Contains(t, withContext, "Contexto: Restaurante pequeño\n")
	assert.Contains(t, withContext, "- ¿Qué alternativas existen?")
	assert.Contains(t, withContext, "3. [Idea específica y concreta]")

	withoutContext := BuildPrompt(def, "Reducir costos", "")
	assert.NotContains(t, withoutContext, "Contexto:")
}

func TestGenerateIdeas(t *testing.T) {
	gen := &stubGenerator{answer: "1. A\n2. B\n3. C\n4. D"}
	a := New(Definitions()[1], gen, 3)

	ctxText := "equipo remoto"
	res, err := a.GenerateIdeas(context.Background(), entity.UserInput{Problem: "Mejorar reuniones", Context: &ctxText})
	require.NoError(t, err)

	assert.Equal(t, entity.TechniqueCombine, res.Technique)
	assert.Equal(t, []string{"A", "B", "C"}, res.Ideas)
	assert.True(t, strings.HasPrefix(res.Explanation, "El Agente de Combinación analizó 'Mejorar reuniones'"))
	assert.False(t, res.IsError())
	assert.Contains(t, gen.lastPrompt, "Contexto: equipo remoto")
}

func TestGenerateIdeasModelFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	a := New(Definitions()[5], gen, 3)

	res, err := a.GenerateIdeas(context.Background(), entity.UserInput{Problem: "Mejorar reuniones"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Error en agente de eliminación: quota exceeded"}, res.Ideas)
	assert.Equal(t, "No se pudieron generar ideas de eliminación debido a un error técnico.", res.Explanation)
	assert.True(t, res.IsError())
}

func TestGenerateIdeasCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &stubGenerator{err: context.Canceled}
	_, err := New(Definitions()[0], gen, 3).GenerateIdeas(ctx, entity.UserInput{Problem: "Mejorar reuniones"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCapabilitiesCopyFocusAreas(t *testing.T) {
	a := NewAll(&stubGenerator{}, 3)[0]
	caps := a.Capabilities()
	caps.FocusAreas[0] = "changed"

	assert.Equal(t, "Materiales alternativos", a.Capabilities().FocusAreas[0])
	assert.Equal(t, "substitute", a.Capabilities().Technique)
}
