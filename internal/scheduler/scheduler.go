package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/SeakMengs/DocCollect/internal/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type ArchivePurger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron   *cron.Cron
	logger *zap.SugaredLogger
}

// Register the expired archive sweep when enabled, cfg.SweepSchedule is a cron spec with seconds
func New(cfg config.ArchiveConfig, purger ArchivePurger, logger *zap.SugaredLogger) (*Scheduler, error) {
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s := &Scheduler{cron: c, logger: logger}

	if !cfg.SweepEnabled {
		logger.Info("Archive sweep disabled")
		return s, nil
	}

	err := s.AddFunc(cfg.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		removed, err := purger.PurgeExpired(ctx)
		if err != nil {
			logger.Errorf("Archive sweep failed after removing %d archives: %v", removed, err)
			return
		}
		if removed > 0 {
			logger.Infof("Archive sweep removed %d expired archives", removed)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid archive sweep schedule: %w", err)
	}

	return s, nil
}

func (s *Scheduler) AddFunc(spec string, fn func()) error {
	if _, err := s.cron.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop waits for a running job to finish or ctx to end
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.logger.Info("Scheduler stopped")
}
