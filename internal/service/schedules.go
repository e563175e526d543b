package service

import (
	"context"
	"log/slog"
	"time"
)

//go:generate mockgen -package mocks -destination mocks/poller.go . Poller

const heartbeatInterval = 5 * time.Minute

type Poller interface {
	Poll(ctx context.Context)
}

// Scheduler runs a Poller right away and then once per interval until the context is cancelled.
// The interval does not depend on the outcome of a cycle.
type Scheduler struct {
	poller   Poller
	interval time.Duration

	afterCycle func()
	log        *slog.Logger
}

func NewScheduler(poller Poller, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		poller:   poller,
		interval: interval,

		log: log.With("component", "scheduler"),
	}
}

// WithAfterCycle registers fn to be called after every cycle, including failed and panicked ones.
func (s *Scheduler) WithAfterCycle(fn func()) *Scheduler {
	s.afterCycle = fn
	return s
}

func (s *Scheduler) Start(ctx context.Context) {
	log := s.log.With("process", "poll_homeworks")
	defer func() {
		log.InfoContext(ctx, "Stopped scheduler")
	}()

	var lastHeartbeat time.Time

	log.InfoContext(ctx, "Starting scheduler", "interval", s.interval)
	for {
		if ctx.Err() != nil {
			return
		}

		if time.Since(lastHeartbeat) >= heartbeatInterval {
			log.InfoContext(ctx, "Process is still running")
			lastHeartbeat = time.Now()
		}

		withRecovery(ctx, s.poller.Poll, log)
		if s.afterCycle != nil {
			s.afterCycle()
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}

func withRecovery(ctx context.Context, fn func(context.Context), log *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "Recovered from panic", "error", r)
		}
	}()
	fn(ctx)
}
