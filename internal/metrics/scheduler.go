package metrics

import (
	"context"
	"time"

	"gkfreq/internal/domain"
	"gkfreq/internal/logger"
)

type Scheduler struct {
	interval time.Duration
	log      logger.Logger
	sample   func(context.Context) []domain.SlotPayload
	sink     func([]domain.SlotPayload)
}

func NewScheduler(interval time.Duration, log logger.Logger, sample func(context.Context) []domain.SlotPayload, sink func([]domain.SlotPayload)) *Scheduler {
	return &Scheduler{
		interval: interval,
		log:      log,
		sample:   sample,
		sink:     sink,
	}
}

// Start ticks once right away and then every interval until ctx is done.
// Ticks run on the caller's goroutine and never overlap.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("scheduler started", "interval", s.interval)

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping...")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sample == nil || s.sink == nil {
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	s.sink(s.sample(timeoutCtx))
}
