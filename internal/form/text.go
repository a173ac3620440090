package form

import (
	"fmt"
	"html"
	"io"
	"strings"
)

const (
	ruleWide   = 70
	ruleNarrow = 50
)

// WriteText prints a View for terminals. Markup in labels, explanations and
// ideas is stripped.
func WriteText(w io.Writer, v View) error {
	tw := &textWriter{w: w}

	if v.Error != "" {
		tw.printf("\n❌ %s\n", v.Error)
		return tw.err
	}

	if v.ProblemAnalyzed != "" {
		tw.printf("\n🎯 PROBLEMA ANALIZADO:\n   %s\n", v.ProblemAnalyzed)
	}

	tw.printf("\n%s\n🚀 IDEAS GENERADAS CON SCAMPER\n%s\n", rule(ruleWide), rule(ruleWide))

	totalIdeas := 0
	for i, t := range v.Techniques {
		tw.printf("\n%d. 🔧 %s\n%s\n", i+1, plain(t.Label), strings.Repeat("-", ruleNarrow))
		tw.printf("💭 %s\n\n💡 Ideas generadas:\n", plain(t.Explanation))
		for j, idea := range t.Ideas {
			tw.printf("   %d. %s\n", j+1, plain(idea))
		}
		totalIdeas += len(t.Ideas)
	}

	if v.ShowSummary {
		tw.printf("\n%s\n📊 RESUMEN EJECUTIVO\n%s\n✨ %s\n", rule(ruleWide), rule(ruleWide), v.Summary)
	}

	if n := len(v.Techniques); n > 0 {
		tw.printf("\n📈 ESTADÍSTICAS:\n")
		tw.printf("   • Total de ideas generadas: %d\n", totalIdeas)
		tw.printf("   • Técnicas mostradas: %d\n", n)
		tw.printf("   • Promedio de ideas por técnica: %.1f\n", float64(totalIdeas)/float64(n))
	}

	return tw.err
}

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func rule(n int) string {
	return strings.Repeat("=", n)
}

// plain drops tags kept by Markup and undoes its entity escaping
func plain(s string) string {
	return html.UnescapeString(tagStripper.Sanitize(s))
}
