package agent

import (
	"context"
	"fmt"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Generator is the language model an agent asks for ideas
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Agent applies one SCAMPER technique to a problem
type Agent struct {
	def      Definition
	llm      Generator
	maxIdeas int
}

func New(def Definition, llm Generator, maxIdeas int) *Agent {
	return &Agent{
		def:      def,
		llm:      llm,
		maxIdeas: maxIdeas,
	}
}

// NewAll builds one agent per technique, in reporting order
func NewAll(llm Generator, maxIdeas int) []*Agent {
	defs := Definitions()
	agents := make([]*Agent, 0, len(defs))
	for _, def := range defs {
		agents = append(agents, New(def, llm, maxIdeas))
	}
	return agents
}

func (a *Agent) Name() string {
	return a.def.Name
}

func (a *Agent) Technique() entity.Technique {
	return a.def.Technique
}

func (a *Agent) Description() string {
	return a.def.Description
}

func (a *Agent) Capabilities() entity.AgentCapabilities {
	return entity.AgentCapabilities{
		AgentName:      a.def.Name,
		Technique:      string(a.def.Technique),
		Specialization: a.def.Specialization,
		FocusAreas:     append([]string(nil), a.def.FocusAreas...),
	}
}

// GenerateIdeas asks the model for ideas. A model failure is reported inside
// the result as a single error idea; only a done ctx is returned as error.
func (a *Agent) GenerateIdeas(ctx context.Context, input entity.UserInput) (entity.ScamperResult, error) {
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.String("agent", a.def.Name)))
	ctxzap.Debug(ctx, "agent analyzing problem")

	prompt := BuildPrompt(a.def, input.Problem, input.ContextOrEmpty())

	answer, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return entity.ScamperResult{}, ctxErr
		}

		ctxzap.Warn(ctx, "agent failed to generate ideas", zap.Error(err))
		return entity.ScamperResult{
			Technique:   a.def.Technique,
			Ideas:       []string{fmt.Sprintf("Error en agente de %s: %v", a.def.ErrorNoun, err)},
			Explanation: fmt.Sprintf("No se pudieron generar ideas de %s debido a un error técnico.", a.def.ErrorNoun),
		}, nil
	}

	ideas := ParseIdeas(answer, a.maxIdeas)
	ctxzap.Debug(ctx, "agent generated ideas", zap.Int("ideas", len(ideas)))

	return entity.ScamperResult{
		Technique:   a.def.Technique,
		Ideas:       ideas,
		Explanation: Explanation(a.def, input.Problem),
	}, nil
}
