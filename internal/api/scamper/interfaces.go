package scamper

import (
	"context"

	"github.com/futig/scamper-backend/internal/entity"
)

type ScamperUsecase interface {
	Analyze(ctx context.Context, input entity.UserInput) (*entity.ScamperResponse, error)
	Status() *entity.SystemStatus
	CheckAgents(ctx context.Context) ([]entity.AgentHealth, error)
}
