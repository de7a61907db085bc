// internal/workers/entitlement/compare-tiers/handler.go
package comparetiers

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"hauler-workers/internal/common/camunda"
	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/common/observability"
	"hauler-workers/internal/common/validation"
	"hauler-workers/internal/entitlement"
)

const (
	TaskType = "entitlement.tier.compare"
)

type Handler struct {
	config *Config
	logger logger.Logger
	runner *camunda.JobRunner
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config: config,
		logger: log,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, log, obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, _ logger.Logger) (interface{}, error) {
		var input Input
		if err := validation.Decode(job.Variables, GetInputSchema(), &input); err != nil {
			return nil, err
		}
		return h.Execute(ctx, &input)
	})
}

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	a, err := entitlement.ParseTier(input.Tier)
	if err != nil {
		return nil, err
	}
	b, err := entitlement.ParseTier(input.OtherTier)
	if err != nil {
		return nil, err
	}

	cmp, err := entitlement.CompareTiers(a, b)
	if err != nil {
		return nil, err
	}

	return &Output{
		Comparison: sign(cmp),
		IsHigher:   cmp > 0,
	}, nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
