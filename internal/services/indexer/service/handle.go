package service

import (
	"context"
	"fmt"
	"time"

	"lifering/internal/adapters/vectorindex"
	"lifering/internal/platform/logger"

	dom "lifering/internal/services/indexer/domain"
)

// handleJob pushes a single job to the vector-index service.
// Push failures requeue with backoff; a job that keeps failing past
// MaxAttempts is dropped so one poisoned target cannot wedge the queue
func (s *Svc) handleJob(ctx context.Context, j dom.IndexJob) error {
	if s.cfg.MaxAttempts > 0 && j.Attempts >= s.cfg.MaxAttempts {
		logger.C(ctx).Error().
			Str("job_id", j.JobID).
			Str("target_id", j.TargetID).
			Int("attempts", j.Attempts).
			Str("last_error", j.LastError).
			Msg("index job exceeded max attempts, dropping")
		return s.repo.Complete(ctx, j.JobID)
	}

	err := s.push.Enqueue(ctx, j.TargetType, j.TargetID, vectorindex.Priority(j.Priority))
	if err != nil {
		return s.repo.Requeue(ctx, j.JobID,
			fmt.Sprintf("push: %v", err),
			nextAfter(j.Attempts, s.cfg.RetryBaseMs))
	}
	return s.repo.Complete(ctx, j.JobID)
}

func nextAfter(attempt int, baseMs int) time.Time {
	back := durationMs(baseMs)
	// simple exponential w/ cap ~30s
	ms := int64(back/time.Millisecond) << uint(attempt)
	if ms > int64(30*time.Second/time.Millisecond) {
		ms = int64(30 * time.Second / time.Millisecond)
	}
	return time.Now().UTC().Add(time.Duration(ms) * time.Millisecond)
}
