package scamper

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxSummaryIdeas caps how many technique highlights go into the summary prompt
const maxSummaryIdeas = 5

// summarize asks the model for an executive summary and falls back to a
// fixed sentence when it fails
func (uc *ScamperUsecase) summarize(ctx context.Context, problem string, results []entity.ScamperResult) string {
	prompt := buildSummaryPrompt(problem, highlights(results))

	summary, err := uc.summarizer.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(summary) != "" {
		return strings.TrimSpace(summary)
	}

	ctxzap.Warn(ctx, "summary generation failed, using fallback", zap.Error(err))
	return fallbackSummary(problem, results)
}

// highlights is the first idea of every successful technique
func highlights(results []entity.ScamperResult) []string {
	var best []string
	for i := range results {
		res := &results[i]
		if len(res.Ideas) == 0 || res.IsError() {
			continue
		}
		best = append(best, fmt.Sprintf("%s: %s", res.Technique.Title(), res.Ideas[0]))
		if len(best) == maxSummaryIdeas {
			break
		}
	}
	return best
}

func buildSummaryPrompt(problem string, best []string) string {
	var b strings.Builder

	b.WriteString("Eres un consultor de innovación experto. Analiza las siguientes ideas generadas por un sistema multi-agente SCAMPER y crea un resumen ejecutivo de máximo 4 oraciones.\n\n")
	fmt.Fprintf(&b, "Problema analizado: %s\n\n", problem)
	b.WriteString("Ideas principales por técnica:\n")
	for _, idea := range best {
		b.WriteString(idea)
		b.WriteString("\n")
	}
	b.WriteString("\nEl resumen debe:\n")
	b.WriteString("1. Destacar las direcciones más prometedoras\n")
	b.WriteString("2. Identificar patrones o temas emergentes\n")
	b.WriteString("3. Sugerir próximos pasos o recomendaciones\n")
	b.WriteString("4. Ser conciso pero perspicaz\n\n")
	b.WriteString("Resumen ejecutivo:\n")

	return b.String()
}

func fallbackSummary(problem string, results []entity.ScamperResult) string {
	resp := entity.ScamperResponse{Results: results}
	return fmt.Sprintf(
		"El análisis multi-agente SCAMPER generó %d ideas utilizando %d técnicas especializadas. "+
			"Las ideas exploran sustituciones estratégicas, combinaciones sinérgicas, adaptaciones cross-industry, "+
			"modificaciones de escala, nuevos usos, simplificaciones y enfoques contraintuitivos para abordar '%s' "+
			"desde múltiples perspectivas innovadoras.",
		resp.TotalIdeas(), resp.SuccessfulTechniques(), problem,
	)
}
