package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/config"
	"github.com/ayah-app/notification-service/dto"
	"github.com/ayah-app/notification-service/metrics"
	"github.com/ayah-app/notification-service/push"
	"github.com/ayah-app/notification-service/registry"
	"github.com/ayah-app/notification-service/schema"
)

// Job fans one message out to every registered subscription. An invocation
// only fails as a whole on missing credentials or an unreadable registry;
// per-subscriber delivery errors are contained.
type Job struct {
	logger   *zap.SugaredLogger
	registry registry.Registry
	sender   push.Sender
	vapid    config.VAPIDConfig
}

// Result summarizes one invocation.
type Result struct {
	Attempted int
	Delivered int
	Pruned    int
	Failed    int
}

func NewJob(logger *zap.SugaredLogger, reg registry.Registry, sender push.Sender, vapid config.VAPIDConfig) *Job {
	return &Job{
		logger:   logger,
		registry: reg,
		sender:   sender,
		vapid:    vapid,
	}
}

// RunDaily broadcasts a message picked uniformly from the daily catalog.
func (j *Job) RunDaily(ctx context.Context) (Result, error) {
	return j.run(ctx, pickDailyMessage())
}

// RunTest broadcasts the fixed test payload.
func (j *Job) RunTest(ctx context.Context) (Result, error) {
	return j.run(ctx, testMessage)
}

func (j *Job) run(ctx context.Context, message dto.Message) (Result, error) {
	// Credentials are checked before any registry access so a misconfigured
	// deployment has no side effects at all.
	if !j.vapid.Complete() {
		return Result{}, push.ErrNotConfigured
	}

	subscriptions, err := j.registry.ScanAll(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(subscriptions) == 0 {
		return Result{}, nil
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return Result{}, err
	}

	result := Result{Attempted: len(subscriptions)}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, subscription := range subscriptions {
		wg.Add(1)
		go func(sub schema.PushSubscription) {
			defer wg.Done()
			outcome := j.deliver(ctx, sub, payload)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case outcomeDelivered:
				result.Delivered++
			case outcomePruned:
				result.Pruned++
			case outcomeFailed:
				result.Failed++
			}
		}(subscription)
	}
	wg.Wait()

	j.logger.Infow("Broadcast finished",
		"attempted", result.Attempted,
		"delivered", result.Delivered,
		"pruned", result.Pruned,
		"failed", result.Failed)
	return result, nil
}

type deliveryOutcome int

const (
	outcomeDelivered deliveryOutcome = iota
	outcomePruned
	outcomeFailed
)

func (j *Job) deliver(ctx context.Context, sub schema.PushSubscription, payload []byte) deliveryOutcome {
	err := j.sender.Send(ctx, sub.SubscriptionData, payload)
	if err == nil {
		metrics.DeliveriesTotal.Inc()
		return outcomeDelivered
	}

	if errors.Is(err, push.ErrSubscriptionGone) {
		j.logger.Infow("Subscription is expired or invalid, deleting",
			"subscriptionId", sub.SubscriptionID)
		// Pruning is best-effort: an un-prunable row just fails again on
		// the next broadcast.
		if err := j.registry.DeleteByID(ctx, sub.SubscriptionID); err != nil {
			j.logger.Errorw("Failed to prune subscription",
				"subscriptionId", sub.SubscriptionID, "error", err)
		}
		metrics.PrunedTotal.Inc()
		return outcomePruned
	}

	j.logger.Errorw("Failed to send notification",
		"subscriptionId", sub.SubscriptionID, "error", err)
	metrics.FailuresTotal.Inc()
	return outcomeFailed
}
