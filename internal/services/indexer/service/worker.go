package service

import (
	"context"
	"time"

	"lifering/internal/platform/logger"
)

// Run starts the worker loop to process index jobs
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("indexer-worker")
	sem := make(chan struct{}, max(1, s.cfg.Concurrency))
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// lease a small batch; process concurrently with a simple semaphore
			jobs, err := s.repo.Lease(ctx, s.workerID, s.cfg.QueueTakeBatch, s.cfg.LeaseFor)
			if err != nil {
				log.Error().Err(err).Msg("lease index jobs failed")
				continue
			}
			for i := range jobs {
				sem <- struct{}{}
				j := jobs[i]
				go func() {
					defer func() { <-sem }()
					if err := s.handleJob(ctx, j); err != nil {
						log.Warn().Err(err).Str("job_id", j.JobID).Msg("index job failed")
					}
				}()
			}
		}
	}
}
