package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"jobguard/internal/guard"
)

// Scheduler is the cron trigger source for guarded jobs. Each schedule fires
// the execution gate for one lock key; whether the job actually runs is
// decided by the gate, never here. Stopping the scheduler stops triggering
// only, an in-flight run always completes.
type Scheduler struct {
	logger *slog.Logger
	cron   *cron.Cron
	gate   *guard.Gate

	mu      sync.Mutex
	entries map[string]cron.EntryID
	running bool
}

// New creates a scheduler over the given gate. Specs use six-field cron
// expressions with a leading seconds field.
func New(logger *slog.Logger, gate *guard.Gate) (*Scheduler, error) {
	if logger == nil {
		return nil, fmt.Errorf("nil logger not allowed")
	}
	if gate == nil {
		return nil, fmt.Errorf("nil gate not allowed")
	}
	return &Scheduler{
		logger:  logger,
		cron:    cron.New(cron.WithSeconds()),
		gate:    gate,
		entries: make(map[string]cron.EntryID),
	}, nil
}

// Add schedules the registered job for key on the given cron spec.
func (s *Scheduler) Add(key, spec string) error {
	if _, err := s.gate.Registry().Lookup(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; exists {
		return fmt.Errorf("schedule for %q already added", key)
	}

	id, err := s.cron.AddFunc(spec, func() {
		ran, err := s.gate.Run(context.Background(), key)
		if err != nil {
			s.logger.Error("Scheduled run failed",
				"key", key,
				"error", err,
			)
			return
		}
		if !ran {
			s.logger.Debug("Scheduled run skipped", "key", key)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q for %q: %w", spec, key, err)
	}

	s.entries[key] = id
	s.logger.Info("Job scheduled", "key", key, "spec", spec)
	return nil
}

// Remove drops the schedule for key. Unknown keys are ignored.
func (s *Scheduler) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.entries[key]; ok {
		s.cron.Remove(id)
		delete(s.entries, key)
	}
}

// Start begins firing schedules.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	s.logger.Info("Scheduler started", "schedules", len(s.entries))
}

// Stop halts triggering and waits for in-flight scheduled runs to drain, up
// to the deadline of ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	drained := s.cron.Stop()
	s.mu.Unlock()

	select {
	case <-drained.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler drain interrupted: %w", ctx.Err())
	}
}

// IsRunning reports whether schedules are firing.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
