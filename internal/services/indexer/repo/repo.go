// Package repo provides the index job queue persistence
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lifering/internal/modkit/repokit"
	"lifering/internal/services/indexer/domain"
)

// Repo is the queue persistence surface used by the worker and enqueuers
type Repo interface {
	// Enqueue idempotently creates (or refreshes) a job per target
	Enqueue(ctx context.Context, targetType, targetID, priority string) (string, error)
	// Lease claims up to limit due jobs; leaseFor defines the TTL.
	// Expired leases are reclaimable
	Lease(ctx context.Context, workerID string, limit int, leaseFor time.Duration) ([]domain.IndexJob, error)
	// Complete removes a finished job
	Complete(ctx context.Context, jobID string) error
	// Requeue re-schedules a job after errors and clears the lease
	Requeue(ctx context.Context, jobID string, lastErr string, nextAttemptAt time.Time) error
}

type (
	// PG is a Postgres implementation of the queue repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Enqueue(ctx context.Context, targetType, targetID, priority string) (string, error) {
	// A re-enqueue for the same target resets attempts and makes the job
	// due immediately; the newest priority wins
	const sqlq = `
        INSERT INTO index_jobs (target_type, target_id, priority)
        VALUES ($1, $2, $3)
        ON CONFLICT (target_type, target_id)
        DO UPDATE SET priority         = EXCLUDED.priority,
                      attempts         = 0,
                      last_error       = NULL,
                      next_attempt_at  = now(),
                      leased_by        = NULL,
                      lease_expires_at = NULL,
                      updated_at       = now()
        RETURNING job_id::text
    `
	var id string
	if err := r.q.QueryRow(ctx, sqlq, targetType, targetID, priority).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *queries) Lease(
	ctx context.Context,
	workerID string,
	limit int,
	leaseFor time.Duration,
) ([]domain.IndexJob, error) {
	if workerID == "" {
		workerID = uuid.NewString()
	}
	const sqlq = `
        WITH ready AS (
            SELECT job_id
              FROM index_jobs
             WHERE (leased_by IS NULL OR lease_expires_at <= now())
               AND next_attempt_at <= now()
             ORDER BY next_attempt_at ASC
             LIMIT $1
             FOR UPDATE SKIP LOCKED
        ), upd AS (
            UPDATE index_jobs j
               SET leased_by = $2,
                   lease_expires_at = now() + $3::interval,
                   updated_at = now()
             WHERE j.job_id IN (SELECT job_id FROM ready)
            RETURNING j.*
        )
        SELECT job_id::text, target_type, target_id, priority,
               attempts, COALESCE(last_error, '') AS last_error,
               next_attempt_at, COALESCE(lease_expires_at, now()) AS lease_expires_at,
               COALESCE(leased_by, $2) AS leased_by, created_at, updated_at
          FROM upd
    `
	interval := leaseFor.String()
	rows, err := r.q.Query(ctx, sqlq, limit, workerID, interval)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.IndexJob
	for rows.Next() {
		var j domain.IndexJob
		if err := rows.Scan(
			&j.JobID, &j.TargetType, &j.TargetID, &j.Priority,
			&j.Attempts, &j.LastError,
			&j.NextAttempt, &j.LeaseExpires,
			&j.LeasedBy, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *queries) Complete(ctx context.Context, jobID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM index_jobs WHERE job_id = $1`, jobID)
	return err
}

func (r *queries) Requeue(ctx context.Context, jobID string, lastErr string, nextAttemptAt time.Time) error {
	const sqlq = `
        UPDATE index_jobs
           SET attempts         = attempts + 1,
               last_error       = NULLIF($2, ''),
               next_attempt_at  = $3,
               leased_by        = NULL,
               lease_expires_at = NULL,
               updated_at       = now()
         WHERE job_id = $1
    `
	_, err := r.q.Exec(ctx, sqlq, jobID, lastErr, nextAttemptAt)
	return err
}
