// internal/workers/entitlement/check-job-request-limit/handler.go
package checkjobrequestlimit

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"hauler-workers/internal/common/camunda"
	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/common/metrics"
	"hauler-workers/internal/common/observability"
	"hauler-workers/internal/common/validation"
	"hauler-workers/internal/entitlement"
)

const (
	TaskType = "entitlement.job-request.check"
)

type Handler struct {
	config *Config
	table  *entitlement.Table
	logger logger.Logger
	runner *camunda.JobRunner
}

func NewHandler(config *Config, table *entitlement.Table, log logger.Logger, obs *observability.Observability) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if table == nil {
		table = entitlement.Default()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config: config,
		table:  table,
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
	tier, err := entitlement.ParseTier(input.Tier)
	if err != nil {
		return nil, err
	}

	access, err := h.table.CanRequestJob(tier, input.CurrentJobRequests)
	if err != nil {
		return nil, err
	}

	metrics.RecordDecision("job_request", string(tier), access.CanAccess)
	if !access.CanAccess {
		h.logger.Info("job request limit reached", map[string]interface{}{
			"tier":    tier,
			"current": input.CurrentJobRequests,
		})
	}

	return &Output{CanAccess: access.CanAccess, Reason: access.Reason}, nil
}
