// internal/common/camunda/runner.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"hauler-workers/internal/common/errors"
	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/common/metrics"
	"hauler-workers/internal/common/observability"
)

const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// ProcessFunc does a job's work and returns the output variables.
type ProcessFunc func(ctx context.Context, log logger.Logger) (interface{}, error)

// JobRunner wraps one job execution: per-run logging, timeout, metrics, and
// reporting the outcome back to the broker.
type JobRunner struct {
	taskType string
	timeout  time.Duration
	logger   logger.Logger
	obs      *observability.Observability
}

func NewJobRunner(taskType string, timeout time.Duration, log logger.Logger, obs *observability.Observability) *JobRunner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &JobRunner{
		taskType: taskType,
		timeout:  timeout,
		logger:   log,
		obs:      obs,
	}
}

func (r *JobRunner) Run(client worker.JobClient, job entities.Job, process ProcessFunc) {
	start := time.Now()
	log := r.logger.WithFields(map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
		"runId":              uuid.NewString(),
	})

	active := metrics.WorkerJobsActive.WithLabelValues(r.taskType)
	active.Inc()
	defer active.Dec()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	log.Info("processing job", nil)

	status := statusCompleted
	output, err := process(ctx, log)
	if err != nil {
		status = statusFailed
		stdErr := errors.NewErrorHandler(log).HandleJobError(ctx, client, job, err)
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(stdErr.Code)).Inc()
	} else if err := r.complete(ctx, client, job, output); err != nil {
		status = statusFailed
		log.Error("failed to complete job", map[string]interface{}{"error": err.Error()})
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, "COMPLETE_FAILED").Inc()
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	}

	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, elapsed, status)

	log.Info("job finished", map[string]interface{}{
		"status":     status,
		"durationMs": elapsed.Milliseconds(),
	})
}

func (r *JobRunner) complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return err
	}
	_, err = cmd.Send(ctx)
	return err
}
