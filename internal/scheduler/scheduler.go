// Package scheduler wires up the cron job that triggers unattended apply
// runs.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// RunFunc executes one apply batch.
type RunFunc func(ctx context.Context) error

// Scheduler wraps robfig/cron and manages the apply loop.
type Scheduler struct {
	cron *cron.Cron
	spec string // cron spec, e.g. "30 9 * * *" or "@every 8h"
	run  RunFunc
}

// New creates a Scheduler firing on the given cron spec.
func New(spec string, run RunFunc) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		spec: spec,
		run:  run,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runBatch(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runBatch(ctx context.Context) {
	log.Println("[scheduler] Apply run started")
	if err := s.run(ctx); err != nil {
		log.Printf("[scheduler] Apply run error: %v", err)
		return
	}
	log.Println("[scheduler] Apply run complete")
}
