package guard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"jobguard/internal/coordinator"
	"jobguard/internal/metrics"
	"jobguard/internal/pubsub"
)

// Gate decides on each trigger whether the bound unit of work may run. A
// refused acquire skips the run entirely: no queueing, no deferral.
type Gate struct {
	logger    *slog.Logger
	coord     coordinator.Coordinator
	registry  *Registry
	publisher pubsub.Publisher
}

// NewGate creates an execution gate over the coordinator and registry. The
// publisher is optional; nil disables run events.
func NewGate(logger *slog.Logger, coord coordinator.Coordinator, registry *Registry, publisher pubsub.Publisher) (*Gate, error) {
	if logger == nil {
		return nil, fmt.Errorf("nil logger not allowed")
	}
	if coord == nil {
		return nil, fmt.Errorf("nil coordinator not allowed")
	}
	if registry == nil {
		return nil, fmt.Errorf("nil registry not allowed")
	}
	return &Gate{
		logger:    logger,
		coord:     coord,
		registry:  registry,
		publisher: publisher,
	}, nil
}

// Registry exposes the bound jobs for listing surfaces.
func (g *Gate) Registry() *Registry {
	return g.registry
}

// Run executes the job bound to key if its lock can be acquired. ran reports
// whether the unit of work executed. A job failure is propagated to the
// trigger source only after the lock has been released; release never waits
// for TTL expiry.
func (g *Gate) Run(ctx context.Context, key string) (ran bool, err error) {
	entry, err := g.registry.Lookup(key)
	if err != nil {
		return false, err
	}

	if !g.coord.Acquire(ctx, entry.Options) {
		metrics.SkippedRunsCounter.Inc()
		g.logger.Info("Skipping run, lock held by another instance",
			"key", key,
		)
		g.publish(ctx, key, pubsub.ActionSkipped, nil)
		return false, nil
	}

	// Release must run even when the job fails or panics, and caller
	// cancellation must not skip it.
	released := false
	release := func() {
		if !released {
			released = true
			g.coord.Release(context.WithoutCancel(ctx), key)
		}
	}
	defer release()

	g.logger.Debug("Running guarded job", "key", key)
	g.publish(ctx, key, pubsub.ActionStarted, nil)

	jobErr := entry.Job(ctx)
	release()

	if jobErr != nil {
		metrics.FailedRunsCounter.Inc()
		g.logger.Error("Guarded job failed",
			"key", key,
			"error", jobErr,
		)
		g.publish(ctx, key, pubsub.ActionFailed, jobErr)
		return true, fmt.Errorf("guarded job %q: %w", key, jobErr)
	}

	metrics.CompletedRunsCounter.Inc()
	g.logger.Debug("Guarded job completed", "key", key)
	g.publish(ctx, key, pubsub.ActionCompleted, nil)
	return true, nil
}

// publish emits a run lifecycle event, best effort. Publish failures are
// logged and never affect the run outcome.
func (g *Gate) publish(ctx context.Context, key, action string, runErr error) {
	if g.publisher == nil {
		return
	}

	event := pubsub.JobRunEvent{
		Key:      key,
		Instance: g.coord.Identity(),
		Action:   action,
		At:       time.Now().UTC(),
	}
	if runErr != nil {
		event.Error = runErr.Error()
	}

	msg, err := json.Marshal(event)
	if err != nil {
		g.logger.Error("Failed to marshal run event", "key", key, "error", err)
		return
	}
	if err := g.publisher.Publish(context.WithoutCancel(ctx), pubsub.TopicJobRuns, msg); err != nil {
		g.logger.Warn("Failed to publish run event",
			"key", key,
			"action", action,
			"error", err,
		)
	}
}
