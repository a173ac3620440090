package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
)

// SummaryMarker ends every executive summary prompt
const SummaryMarker = "Resumen ejecutivo:"

// MockClient answers without any network call, for local runs and demos
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Provider() string {
	return ProviderMock
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating answer")

	if strings.Contains(prompt, SummaryMarker) {
		return "Las ideas apuntan a simplificar el proceso actual y combinarlo con herramientas existentes. " +
			"Se recomienda priorizar las propuestas de bajo costo y validarlas con un grupo piloto. (MOCK)", nil
	}

	subject := firstLineWithPrefix(prompt, "Problema:")
	var b strings.Builder
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, "%d. Propuesta %d para %s (MOCK)\n", i, i, subject)
	}
	return b.String(), nil
}

func firstLineWithPrefix(text, prefix string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return "el problema"
}
