package scamper

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/scamper-backend/internal/config"
	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const orchestratorName = "Orchestrator"

// Health check input used by CheckAgents
const (
	healthProblem = "Mejorar la comunicación en equipos remotos"
	healthContext = "Empresa de tecnología con trabajadores distribuidos globalmente"
)

// ScamperUsecase coordinates the technique agents and writes the summary
type ScamperUsecase struct {
	agents     []TechniqueAgent
	summarizer Summarizer
	cfg        config.ScamperConfig
	logger     *zap.Logger
}

func NewUsecase(
	agents []TechniqueAgent,
	summarizer Summarizer,
	cfg config.ScamperConfig,
	logger *zap.Logger,
) *ScamperUsecase {
	return &ScamperUsecase{
		agents:     agents,
		summarizer: summarizer,
		cfg:        cfg,
		logger:     logger,
	}
}

// Analyze runs every agent on the input and returns their results in agent
// order with an executive summary. Agent failures become error results; only
// a done ctx aborts the run.
func (uc *ScamperUsecase) Analyze(ctx context.Context, input entity.UserInput) (*entity.ScamperResponse, error) {
	ctx = logger.AddFields(ctx, zap.String("run_id", uuid.New().String()))
	ctx = logger.WithAction(ctx, "scamper.analyze")

	started := time.Now()
	ctxzap.Info(ctx, "starting multi-agent analysis",
		zap.Int("agents", len(uc.agents)),
		zap.String("mode", string(uc.executionMode())),
	)

	var (
		results []entity.ScamperResult
		err     error
	)
	if uc.cfg.EnableParallelExecution {
		results, err = uc.runParallel(ctx, input)
	} else {
		results, err = uc.runSequential(ctx, input)
	}
	if err != nil {
		return nil, fmt.Errorf("run agents: %w", err)
	}

	summary := uc.summarize(ctx, input.Problem, results)

	resp := &entity.ScamperResponse{
		OriginalProblem: input.Problem,
		Results:         results,
		Summary:         summary,
	}

	ctxzap.Info(ctx, "multi-agent analysis completed",
		zap.Int("techniques", len(results)),
		zap.Int("ideas", resp.TotalIdeas()),
		zap.Int("successful", resp.SuccessfulTechniques()),
		zap.Duration("duration", time.Since(started)),
	)

	return resp, nil
}

func (uc *ScamperUsecase) runParallel(ctx context.Context, input entity.UserInput) ([]entity.ScamperResult, error) {
	results := make([]entity.ScamperResult, len(uc.agents))

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range uc.agents {
		g.Go(func() error {
			res, err := uc.runAgent(gctx, a, input)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (uc *ScamperUsecase) runSequential(ctx context.Context, input entity.UserInput) ([]entity.ScamperResult, error) {
	results := make([]entity.ScamperResult, 0, len(uc.agents))
	for _, a := range uc.agents {
		res, err := uc.runAgent(ctx, a, input)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// runAgent turns an agent error or panic into an error result. Only the
// cancellation of ctx is passed up.
func (uc *ScamperUsecase) runAgent(ctx context.Context, a TechniqueAgent, input entity.UserInput) (res entity.ScamperResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctxzap.Error(ctx, "agent panicked", zap.String("agent", a.Name()), zap.Any("panic", r))
			res, err = agentErrorResult(a, fmt.Errorf("panic: %v", r)), nil
		}
	}()

	res, err = a.GenerateIdeas(ctx, input)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return entity.ScamperResult{}, ctx.Err()
	}

	ctxzap.Warn(ctx, "agent failed", zap.String("agent", a.Name()), zap.Error(err))
	return agentErrorResult(a, err), nil
}

func agentErrorResult(a TechniqueAgent, err error) entity.ScamperResult {
	return entity.ScamperResult{
		Technique:   a.Technique(),
		Ideas:       []string{fmt.Sprintf("Error en %s: %v", a.Name(), err)},
		Explanation: fmt.Sprintf("El agente %s no pudo completar su análisis.", a.Name()),
	}
}

func (uc *ScamperUsecase) executionMode() entity.ExecutionMode {
	if uc.cfg.EnableParallelExecution {
		return entity.ExecutionModeParallel
	}
	return entity.ExecutionModeSequential
}

// Status describes the orchestrator and its agents
func (uc *ScamperUsecase) Status() *entity.SystemStatus {
	agents := make(map[string]entity.AgentStatus, len(uc.agents))
	for _, a := range uc.agents {
		agents[string(a.Technique())] = entity.AgentStatus{
			AgentName:      a.Name(),
			Specialization: a.Description(),
			Capabilities:   a.Capabilities(),
		}
	}

	return &entity.SystemStatus{
		OrchestratorName:  orchestratorName,
		TotalAgents:       len(uc.agents),
		ExecutionMode:     uc.executionMode(),
		MaxIdeasPerAgent:  uc.cfg.MaxIdeasPerTechnique,
		SpecializedAgents: agents,
	}
}

// CheckAgents runs every agent on a fixed sample problem. An agent is healthy
// when it returns at least one idea and none of them is an error.
func (uc *ScamperUsecase) CheckAgents(ctx context.Context) ([]entity.AgentHealth, error) {
	ctx = logger.WithAction(ctx, "scamper.check_agents")

	sampleContext := healthContext
	input := entity.UserInput{Problem: healthProblem, Context: &sampleContext}

	health := make([]entity.AgentHealth, 0, len(uc.agents))
	for _, a := range uc.agents {
		h := entity.AgentHealth{AgentName: a.Name(), Technique: a.Technique()}

		res, err := a.GenerateIdeas(ctx, input)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			h.Error = err.Error()
		case len(res.Ideas) == 0:
			h.Error = "no ideas generated"
		case res.IsError():
			h.Error = res.Ideas[0]
		default:
			h.Healthy = true
		}

		ctxzap.Info(ctx, "agent health checked", zap.String("agent", a.Name()), zap.Bool("healthy", h.Healthy))
		health = append(health, h)
	}

	return health, nil
}
