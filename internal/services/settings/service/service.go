// Package service implements engine settings workflows
package service

import (
	"context"
	"encoding/json"

	"lifering/internal/core/blocklist"
	"lifering/internal/core/policy"
	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
	"lifering/internal/platform/logger"
	"lifering/internal/services/settings/domain"
	"lifering/internal/services/settings/repo"
)

// Defaults for a fresh install; operators tune everything afterwards
const (
	defaultModelID   = "gpt-4o-mini"
	defaultTimeoutMs = 8000
	defaultThreshold = 0.7
	defaultHeldMsg   = "Your comment is awaiting review."
	defaultRejectMsg = "Your comment could not be published."
)

// Service implements domain.AdminPort
type Service struct {
	Repo repo.Repo
	db   repokit.TxRunner
}

// New creates the settings service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Service {
	if db == nil {
		panic("settings.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("settings.Service requires a non nil Repo binder")
	}
	return &Service{Repo: binder.Bind(db), db: db}
}

// Snapshot loads a versioned settings copy, seeding defaults on first run
func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	row, err := s.Repo.Get(ctx)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		seed, serr := s.defaultRow()
		if serr != nil {
			return domain.Snapshot{}, serr
		}
		if serr := s.Repo.Seed(ctx, seed); serr != nil {
			return domain.Snapshot{}, serr
		}
		logger.C(ctx).Info().Msg("engine settings seeded with defaults")
		row, err = s.Repo.Get(ctx)
	}
	if err != nil {
		return domain.Snapshot{}, err
	}
	return toSnapshot(row)
}

// Update applies an admin change and returns the new snapshot.
// The write is version-guarded so concurrent admin edits conflict loudly
func (s *Service) Update(ctx context.Context, in domain.UpdateInput) (domain.Snapshot, error) {
	cur, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	next := cur
	if in.Enabled != nil {
		next.Enabled = *in.Enabled
	}
	if in.ModelID != nil {
		next.ModelID = *in.ModelID
	}
	if in.TimeoutMs != nil {
		next.TimeoutMs = *in.TimeoutMs
	}
	if in.RiskThreshold != nil {
		next.RiskThreshold = *in.RiskThreshold
	}
	if in.TrainingBatch != nil {
		next.TrainingBatch = *in.TrainingBatch
	}
	if in.HeldMessage != nil {
		next.HeldMessage = *in.HeldMessage
	}
	if in.RejectMessage != nil {
		next.RejectMessage = *in.RejectMessage
	}
	if in.BlocklistTerms != nil {
		next.BlocklistTerms = *in.BlocklistTerms
	}
	if in.PolicyRules != nil {
		pol, perr2 := policy.Parse([]byte(*in.PolicyRules))
		if perr2 != nil {
			return domain.Snapshot{}, perr.Wrap(perr2, perr.ErrorCodeValidation, "invalid policy rules")
		}
		next.Policy = pol
	}
	if in.FailMode != nil {
		fm := domain.FailMode(*in.FailMode)
		if !fm.Valid() {
			return domain.Snapshot{}, perr.InvalidArgf("fail_mode must be hold or allow")
		}
		next.FailMode = fm
	}
	next.UpdatedBy = in.UpdatedBy

	row, err := fromSnapshot(next)
	if err != nil {
		return domain.Snapshot{}, err
	}
	out, err := s.Repo.Put(ctx, row, cur.Version)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return toSnapshot(out)
}

func (s *Service) defaultRow() (repo.Row, error) {
	terms, err := blocklist.DefaultTerms()
	if err != nil {
		return repo.Row{}, err
	}
	polJSON, err := json.Marshal(policy.Default())
	if err != nil {
		return repo.Row{}, err
	}
	return repo.Row{
		Enabled:        true,
		ModelID:        defaultModelID,
		TimeoutMs:      defaultTimeoutMs,
		RiskThreshold:  defaultThreshold,
		HeldMessage:    defaultHeldMsg,
		RejectMessage:  defaultRejectMsg,
		BlocklistTerms: terms,
		PolicyJSON:     polJSON,
		FailMode:       string(domain.FailModeHold),
	}, nil
}

func toSnapshot(r repo.Row) (domain.Snapshot, error) {
	pol, err := policy.Parse(r.PolicyJSON)
	if err != nil {
		return domain.Snapshot{}, perr.Wrap(err, perr.ErrorCodeDB, "stored policy rules corrupt")
	}
	fm := domain.FailMode(r.FailMode)
	if !fm.Valid() {
		fm = domain.FailModeHold
	}
	return domain.Snapshot{
		Version:        r.Version,
		Enabled:        r.Enabled,
		ModelID:        r.ModelID,
		TimeoutMs:      r.TimeoutMs,
		RiskThreshold:  r.RiskThreshold,
		TrainingBatch:  r.TrainingBatch,
		HeldMessage:    r.HeldMessage,
		RejectMessage:  r.RejectMessage,
		BlocklistTerms: r.BlocklistTerms,
		Policy:         pol,
		FailMode:       fm,
		UpdatedBy:      r.UpdatedBy,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

func fromSnapshot(s domain.Snapshot) (repo.Row, error) {
	polJSON, err := json.Marshal(s.Policy)
	if err != nil {
		return repo.Row{}, err
	}
	return repo.Row{
		Version:        s.Version,
		Enabled:        s.Enabled,
		ModelID:        s.ModelID,
		TimeoutMs:      s.TimeoutMs,
		RiskThreshold:  s.RiskThreshold,
		TrainingBatch:  s.TrainingBatch,
		HeldMessage:    s.HeldMessage,
		RejectMessage:  s.RejectMessage,
		BlocklistTerms: s.BlocklistTerms,
		PolicyJSON:     polJSON,
		FailMode:       string(s.FailMode),
		UpdatedBy:      s.UpdatedBy,
	}, nil
}
