// internal/workers/subscription/resolve-store-product/handler.go
package resolvestoreproduct

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
	TaskType = "subscription.store-product.resolve"
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
	tier, period, err := entitlement.ParseProductID(input.ProductID)
	if err != nil {
		return nil, err
	}

	canonical, err := entitlement.ProductID(tier, period)
	if err != nil {
		return nil, err
	}
	plan, err := entitlement.GetPlan(tier)
	if err != nil {
		return nil, err
	}

	price := plan.MonthlyPriceUSD
	if period == entitlement.BillingAnnual {
		price = plan.AnnualPriceUSD
	}

	return &Output{
		ProductID:     canonical,
		Tier:          tier,
		BillingPeriod: period,
		PriceUSDCents: price,
	}, nil
}
