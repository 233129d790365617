// Package service implements the three-layer assessment pipeline
package service

import (
	"sync"

	"lifering/internal/adapters/llm"
	"lifering/internal/adapters/vectorindex"
	"lifering/internal/core/blocklist"
	"lifering/internal/modkit/repokit"
	"lifering/internal/platform/store"

	"lifering/internal/services/assess/repo"
	setdom "lifering/internal/services/settings/domain"
)

const (
	// retrievalTopK bounds the Layer-2 context size
	retrievalTopK = 5
	providerName  = "openai"
)

// Svc implements the assess ports
type Svc struct {
	Repo repo.Repo
	db   repokit.TxRunner

	settings   setdom.ReaderPort
	retrieval  vectorindex.Querier
	classifier llm.Classifier
	events     store.Clickhouse // nil disables the analytics sink

	mu      sync.Mutex
	matchV  int
	matcher *blocklist.Matcher
}

// New constructs the assess service. events may be nil when the
// analytics backend is not configured
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Repo],
	settings setdom.ReaderPort,
	retrieval vectorindex.Querier,
	classifier llm.Classifier,
	events store.Clickhouse,
) *Svc {
	if db == nil {
		panic("assess.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("assess.Service requires a non nil Repo binder")
	}
	if settings == nil {
		panic("assess.Service requires a settings reader")
	}
	if retrieval == nil {
		panic("assess.Service requires a vectorindex querier")
	}
	if classifier == nil {
		panic("assess.Service requires an llm classifier")
	}
	return &Svc{
		Repo:       binder.Bind(db),
		db:         db,
		settings:   settings,
		retrieval:  retrieval,
		classifier: classifier,
		events:     events,
	}
}

// blocklistFor returns a matcher for the snapshot's term list, rebuilt
// only when the settings version moves
func (s *Svc) blocklistFor(snap setdom.Snapshot) *blocklist.Matcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.matcher == nil || s.matchV != snap.Version {
		s.matcher = blocklist.New(snap.BlocklistTerms)
		s.matchV = snap.Version
	}
	return s.matcher
}
