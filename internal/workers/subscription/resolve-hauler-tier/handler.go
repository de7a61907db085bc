// internal/workers/subscription/resolve-hauler-tier/handler.go
package resolvehaulertier

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"hauler-workers/internal/common/camunda"
	"hauler-workers/internal/common/errors"
	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/common/observability"
	"hauler-workers/internal/common/validation"
	"hauler-workers/internal/entitlement"
)

const (
	TaskType = "subscription.hauler-tier.resolve"

	cacheKeyPrefix = "hauler:tier:"

	accountQuery = `SELECT u.role, COALESCE(h.subscription_tier, ''), h.subscription_expires_at
		FROM users u
		LEFT JOIN haulers h ON h.user_id = u.id
		WHERE u.id = $1`
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
	runner *camunda.JobRunner
	now    func() time.Time
	encode func(v interface{}) ([]byte, error)
}

// NewHandler builds the resolver. redis may be nil, in which case every job
// reads Postgres.
func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger, obs *observability.Observability) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
		logger: log,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, log, obs),
		now:    time.Now,
		encode: json.Marshal,
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

// Execute resolves the tier that gates the user's actions. An expired
// subscription is reported but does not change the tier.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	rec, err := h.loadAccount(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	role, err := entitlement.ParseRole(rec.Role)
	if err != nil {
		return nil, err
	}
	tier, err := entitlement.ResolveTier(role, rec.Tier)
	if err != nil {
		return nil, err
	}

	output := &Output{
		UserID: input.UserID,
		Role:   role,
		Tier:   tier,
	}
	if role == entitlement.RoleHauler && rec.ExpiresAt != nil {
		output.ExpiresAt = rec.ExpiresAt
		output.SubscriptionExpired = h.now().After(*rec.ExpiresAt)
	}

	if output.SubscriptionExpired {
		h.logger.Warn("hauler subscription expired", map[string]interface{}{
			"userId":    input.UserID,
			"tier":      tier,
			"expiresAt": rec.ExpiresAt.Format(time.RFC3339),
		})
	}

	return output, nil
}

func (h *Handler) loadAccount(ctx context.Context, userID string) (*accountRecord, error) {
	cacheKey := cacheKeyPrefix + userID

	if h.redis != nil {
		val, err := h.redis.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			var rec accountRecord
			if jsonErr := json.Unmarshal([]byte(val), &rec); jsonErr == nil {
				return &rec, nil
			}
			h.logger.Warn("discarding unreadable cache entry", map[string]interface{}{"key": cacheKey})
		case !stderrors.Is(err, redis.Nil):
			h.logger.Warn("cache read failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err.Error(),
			})
		}
	}

	var (
		rec       accountRecord
		expiresAt sql.NullTime
	)
	err := h.db.QueryRowContext(ctx, accountQuery, userID).Scan(&rec.Role, &rec.Tier, &expiresAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewHaulerNotFoundError(userID)
		}
		return nil, errors.NewTierLookupFailedError(err)
	}
	if expiresAt.Valid {
		t := expiresAt.Time.UTC()
		rec.ExpiresAt = &t
	}

	if h.redis != nil {
		h.writeCache(ctx, cacheKey, &rec)
	}

	return &rec, nil
}

// writeCache stores rec under key. Failures are logged and the job carries on
// with the Postgres result.
func (h *Handler) writeCache(ctx context.Context, key string, rec *accountRecord) {
	data, err := h.encode(rec)
	if err != nil {
		h.logger.Warn("cache encode failed, skipping write", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	if err := h.redis.Set(ctx, key, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
