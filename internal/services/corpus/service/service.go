// Package service implements the corpus lifecycle
package service

import (
	"context"

	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
	"lifering/internal/platform/logger"
	"lifering/internal/services/corpus/domain"
	"lifering/internal/services/corpus/repo"
	idxdom "lifering/internal/services/indexer/domain"
)

const defaultPageSize = 50

// Svc implements domain.EditorPort
type Svc struct {
	Repo repo.Repo
	db   repokit.TxRunner
	idx  idxdom.EnqueuePort
}

// New constructs the corpus service. idx schedules (re)indexing on
// lifecycle transitions
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], idx idxdom.EnqueuePort) *Svc {
	if db == nil {
		panic("corpus.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("corpus.Service requires a non nil Repo binder")
	}
	if idx == nil {
		panic("corpus.Service requires an indexer EnqueuePort")
	}
	return &Svc{Repo: binder.Bind(db), db: db, idx: idx}
}

// Create inserts a new draft item. Drafts are invisible to retrieval
// until activated
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Item, error) {
	if !domain.Kind(in.Kind).Valid() {
		return domain.Item{}, perr.InvalidArgf("unknown corpus kind %q", in.Kind)
	}
	return s.Repo.Insert(ctx, in)
}

// Get returns one item by id
func (s *Svc) Get(ctx context.Context, id string) (domain.Item, error) {
	return s.Repo.Get(ctx, id)
}

// Update edits content fields. Editing an active item schedules a
// reindex so retrieval catches up with the new text
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.Item, error) {
	it, err := s.Repo.Update(ctx, id, in)
	if err != nil {
		return domain.Item{}, err
	}
	if it.Status == domain.StatusActive {
		s.enqueue(ctx, it.ID, "high")
	}
	return it, nil
}

// Activate flips an item to active and schedules indexing.
// The status write stands even when the enqueue fails; the reconcile
// path can re-trigger indexing later
func (s *Svc) Activate(ctx context.Context, id string) (domain.Item, error) {
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	if cur.Status == domain.StatusActive {
		return cur, nil
	}
	it, err := s.Repo.SetStatus(ctx, id, domain.StatusActive)
	if err != nil {
		return domain.Item{}, err
	}
	s.enqueue(ctx, it.ID, "normal")
	return it, nil
}

// Archive hides an item from retrieval and schedules index removal
func (s *Svc) Archive(ctx context.Context, id string) (domain.Item, error) {
	cur, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	if cur.Status == domain.StatusArchived {
		return cur, nil
	}
	it, err := s.Repo.SetStatus(ctx, id, domain.StatusArchived)
	if err != nil {
		return domain.Item{}, err
	}
	s.enqueue(ctx, it.ID, "delete")
	return it, nil
}

// List returns a filtered page of items plus the unpaged total
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.ListResult, error) {
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	items, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return domain.ListResult{}, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return domain.ListResult{Items: items, Total: total}, nil
}

// enqueue is fire and forget; the queue itself owns retries
func (s *Svc) enqueue(ctx context.Context, id, priority string) {
	err := s.idx.EnqueueIndex(ctx, idxdom.EnqueueArgs{
		TargetType: "corpus_item",
		TargetID:   id,
		Priority:   priority,
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).
			Str("item_id", id).
			Str("priority", priority).
			Msg("corpus index enqueue failed")
	}
}
