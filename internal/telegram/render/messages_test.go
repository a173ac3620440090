package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{name: "empty", text: "", limit: 10, want: nil},
		{name: "fits", text: "hola\nmundo", limit: 10, want: []string{"hola\nmundo"}},
		{name: "line boundaries", text: "aaaa\nbbbb\ncccc", limit: 10, want: []string{"aaaa\nbbbb", "cccc"}},
		{name: "long line is cut", text: "abcdefghij\nxy", limit: 4, want: []string{"abcd", "efgh", "ij", "xy"}},
		{name: "counts runes", text: "ñññ\néé", limit: 4, want: []string{"ñññ", "éé"}},
		{name: "blank lines dropped between chunks", text: "aaa\n\n\n\nbbb", limit: 4, want: []string{"aaa", "bbb"}},
		{name: "emoji counts twice", text: "💡💡💡", limit: 4, want: []string{"💡💡", "💡"}},
		{name: "emoji is never split", text: "a💡b", limit: 2, want: []string{"a", "💡", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text, tt.limit))
		})
	}
}

func TestSplit_EmojiHeavyTextFitsTelegramLimit(t *testing.T) {
	text := strings.Repeat(strings.Repeat("💡 idea ", 700)+"\n", 3)

	chunks := Split(text, MaxMessageLength)
	require.Greater(t, len(chunks), 3)
	for i, c := range chunks {
		assert.LessOrEqual(t, len(utf16.Encode([]rune(c))), MaxMessageLength, "chunk %d", i)
	}
	assert.Equal(t, strings.ReplaceAll(text, "\n", ""), strings.Join(chunks, ""))
}

func TestResults_SplitsLongViews(t *testing.T) {
	view := form.View{ProblemAnalyzed: "Reducir el desperdicio de comida"}
	for i := 0; i < 7; i++ {
		view.Techniques = append(view.Techniques, form.TechniqueView{
			Label:       fmt.Sprintf("Técnica %d", i+1),
			Explanation: strings.Repeat("explicación ", 40),
			Ideas:       []string{strings.Repeat("idea ", 80), "corta", "<b>negrita</b>"},
		})
	}
	view.Summary = "Resumen"
	view.ShowSummary = true

	msgs, err := Results(view)
	require.NoError(t, err)
	require.Greater(t, len(msgs), 1)

	joined := strings.Join(msgs, "\n")
	assert.Contains(t, joined, "PROBLEMA ANALIZADO")
	assert.Contains(t, joined, "7. 🔧 Técnica 7")
	assert.Contains(t, joined, "negrita")
	assert.NotContains(t, joined, "<b>")
	assert.Contains(t, msgs[len(msgs)-1], "ESTADÍSTICAS")

	for _, m := range msgs {
		assert.LessOrEqual(t, len(utf16.Encode([]rune(m))), MaxMessageLength)
		assert.NotEmpty(t, strings.TrimSpace(m))
	}
}

func TestResults_ErrorView(t *testing.T) {
	msgs, err := Results(form.View{Error: entity.MsgFormNoValidResults})
	require.NoError(t, err)
	assert.Equal(t, []string{"❌ " + entity.MsgFormNoValidResults}, msgs)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	assert.Equal(t, ErrGeneric, ClassifyError(nil))
	assert.Equal(t, ErrTimeout, ClassifyError(fmt.Errorf("analyze: %w", context.DeadlineExceeded)))
	assert.Equal(t, ErrTimeout, ClassifyError(timeoutErr{}))
	assert.Equal(t, ErrServiceUnavailable, ClassifyError(fmt.Errorf("x: %w", entity.ErrGenerationFailed)))
	assert.Equal(t, ErrServiceUnavailable, ClassifyError(errors.New("dial tcp: connection refused")))
	assert.Equal(t, ErrProcessing, ClassifyError(errors.New("boom")))
}
