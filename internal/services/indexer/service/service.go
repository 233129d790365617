// Package service implements the indexing worker and enqueue service
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lifering/internal/adapters/vectorindex"
	"lifering/internal/modkit"
	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"

	dom "lifering/internal/services/indexer/domain"
	irepo "lifering/internal/services/indexer/repo"
)

// Service implements both worker+enqueue ports
type Service interface {
	dom.WorkerPort
	dom.EnqueuePort
}

// Config controls the worker
type Config struct {
	Concurrency    int
	QueueTakeBatch int
	RetryBaseMs    int
	MaxAttempts    int
	LeaseFor       time.Duration
}

// Svc implements the indexing worker and enqueue service
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[irepo.Repo]
	repo   irepo.Repo

	push     vectorindex.Enqueuer
	cfg      Config
	deps     modkit.Deps
	workerID string
}

// New constructs the service. push is the vector-index client seam
func New(deps modkit.Deps, cfg Config, push vectorindex.Enqueuer) *Svc {
	if deps.PG == nil {
		panic("indexer.Service requires a non nil TxRunner")
	}
	if push == nil {
		panic("indexer.Service requires a vectorindex.Enqueuer")
	}
	if cfg.LeaseFor <= 0 {
		cfg.LeaseFor = 60 * time.Second
	}
	b := irepo.NewPG()
	return &Svc{
		db:       deps.PG,
		binder:   b,
		repo:     b.Bind(deps.PG),
		push:     push,
		cfg:      cfg,
		deps:     deps,
		workerID: uuid.NewString(),
	}
}

// EnqueueIndex enqueues an indexing job
func (s *Svc) EnqueueIndex(ctx context.Context, in dom.EnqueueArgs) error {
	switch vectorindex.Priority(in.Priority) {
	case vectorindex.PriorityNormal, vectorindex.PriorityHigh, vectorindex.PriorityDelete:
	case "":
		in.Priority = string(vectorindex.PriorityNormal)
	default:
		return perr.InvalidArgf("unknown index priority %q", in.Priority)
	}
	if in.TargetType == "" || in.TargetID == "" {
		return perr.InvalidArgf("index job needs target type and id")
	}
	_, err := s.repo.Enqueue(ctx, in.TargetType, in.TargetID, in.Priority)
	return err
}

func durationMs(ms int) time.Duration {
	if ms <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
