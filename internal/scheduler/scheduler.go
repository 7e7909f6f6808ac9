// Package scheduler runs periodic cache refreshes so long-lived deployments
// keep their on-disk price data current without re-running backtests.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler manages cron-triggered jobs.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates a Scheduler with second-resolution cron specs, matching the
// config file format.
func New(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		log:  logger.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterRefresh schedules job on the given cron spec.
func (s *Scheduler) RegisterRefresh(spec string, job func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.log.Info().Msg("running scheduled refresh")
		if err := job(); err != nil {
			s.log.Error().Err(err).Msg("scheduled refresh failed")
			return
		}
		s.log.Info().Msg("scheduled refresh complete")
	})
	if err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	return nil
}

// Start starts the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron loop gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}
