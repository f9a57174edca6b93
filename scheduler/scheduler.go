// Package scheduler runs the background backend reachability probe.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/interfaces"
	"github.com/giygas/medicines-admin/logging"
	"github.com/go-co-op/gocron"
)

// maxProbeTimeout bounds a single probe regardless of the interval
const maxProbeTimeout = 30 * time.Second

var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler probes the backend's average-price endpoint on a fixed interval
// and records the result. It never writes to the displayed regions.
type Scheduler struct {
	api      interfaces.MedicinesAPI
	probes   interfaces.ProbeStore
	interval time.Duration
	cron     *gocron.Scheduler

	failures atomic.Int32
}

// NewScheduler creates a new scheduler with injected dependencies
func NewScheduler(api interfaces.MedicinesAPI, probes interfaces.ProbeStore, interval time.Duration) *Scheduler {
	return &Scheduler{
		api:      api,
		probes:   probes,
		interval: interval,
		cron:     gocron.NewScheduler(time.Local),
	}
}

// Start schedules the probe. The first probe runs immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return errors.New("probe interval must be positive")
	}

	_, err := s.cron.Every(s.interval).SingletonMode().Do(func() {
		s.Probe(context.Background())
	})
	if err != nil {
		logging.Error("Failed to schedule backend probe", "error", err)
		return fmt.Errorf("failed to schedule backend probe: %w", err)
	}

	s.cron.StartAsync()
	logging.Info("Backend probe scheduled", "interval", s.interval.String())
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Probe performs one reachability check and records it
func (s *Scheduler) Probe(ctx context.Context) entities.ProbeResult {
	timeout := min(s.interval, maxProbeTimeout)
	if timeout <= 0 {
		timeout = maxProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	_, err := s.api.AveragePrice(ctx)

	result := entities.ProbeResult{At: time.Now(), OK: err == nil}
	if err != nil {
		result.Error = err.Error()
		// Log the transition and every tenth consecutive failure
		if n := s.failures.Add(1); n == 1 || n%10 == 0 {
			logging.Warn("Backend probe failed", "consecutive_failures", n, "error", err)
		}
	} else {
		if n := s.failures.Swap(0); n > 0 {
			logging.Info("Backend reachable again", "after_failures", n)
		}
		logging.Debug("Backend probe succeeded", "duration", time.Since(start).String())
	}

	s.probes.RecordProbe(result)
	return result
}
