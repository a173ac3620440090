package scamper

import (
	"context"

	"github.com/futig/scamper-backend/internal/entity"
)

// TechniqueAgent produces ideas for a single SCAMPER technique
type TechniqueAgent interface {
	Name() string
	Technique() entity.Technique
	Description() string
	Capabilities() entity.AgentCapabilities
	GenerateIdeas(ctx context.Context, input entity.UserInput) (entity.ScamperResult, error)
}

// Summarizer writes the executive summary
type Summarizer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
