package service

import (
	"context"
	"time"

	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/workers"
)

// NewJanitor returns a worker that sweeps orphan blobs every interval. A
// blob younger than grace is never touched.
func NewJanitor(queue QueueService, interval, grace time.Duration, log *logger.Logger) workers.Worker {
	sweep := func(ctx context.Context) error {
		result, err := queue.Sweep(log.WithContext(ctx), grace)
		if err != nil {
			return err
		}
		if result.Removed > 0 {
			log.Info().Int("removed", result.Removed).Int("pending", result.Pending).Msg("janitor pass finished")
		}
		return nil
	}

	report := func(err error) {
		log.Err(err).Str("func", "service.NewJanitor").Msg("janitor pass failed")
	}

	return workers.Every(interval, sweep, report)
}
