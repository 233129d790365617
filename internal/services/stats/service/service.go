// Package service implements stats reads over the assessment event stream
package service

import (
	"context"

	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
	"lifering/internal/services/stats/domain"
	"lifering/internal/services/stats/repo"
)

// Svc implements domain.ReaderPort
type Svc struct {
	Repo repo.Repo
}

// New constructs the stats service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil || binder == nil {
		panic("stats service: db and binder are required")
	}
	return &Svc{Repo: binder.Bind(db)}
}

// Decisions returns per-day decision counts for the range
func (s *Svc) Decisions(ctx context.Context, in domain.DecisionsInput) ([]domain.DecisionRow, error) {
	rows, err := s.Repo.Decisions(ctx, in)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "decisions query failed")
	}
	if rows == nil {
		rows = []domain.DecisionRow{}
	}
	return rows, nil
}

// RiskMix returns the risk level distribution for the range
func (s *Svc) RiskMix(ctx context.Context, in domain.RiskMixInput) ([]domain.RiskMixRow, error) {
	rows, err := s.Repo.RiskMix(ctx, in)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "risk mix query failed")
	}
	if rows == nil {
		rows = []domain.RiskMixRow{}
	}
	return rows, nil
}
