package service

import (
	"context"
	"time"

	"lifering/internal/core/policy"
	"lifering/internal/core/prompt"
	"lifering/internal/core/redact"
	"lifering/internal/platform/logger"

	"lifering/internal/services/assess/domain"
	setdom "lifering/internal/services/settings/domain"
)

// Run executes the full pipeline for one submitted comment. The caller
// blocks for the whole run; Layer 3 is bounded by the snapshot timeout
func (s *Svc) Run(ctx context.Context, in domain.RunInput) (domain.Outcome, error) {
	start := time.Now()
	log := logger.C(ctx)

	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	if !snap.Enabled {
		log.Debug().Str("comment_id", in.CommentID).Msg("engine disabled, passthrough")
		return domain.Outcome{Decision: policy.DecisionApproved}, nil
	}

	red := redact.Redact(in.Text)

	// Layer 1: deterministic term match on the raw text
	var l1term string
	if hit, ok := s.blocklistFor(snap).Match(in.Text); ok {
		l1term = hit.Term
	}

	// Layer 2: retrieval is advisory; an unreachable index or empty
	// corpus must not stop the pipeline
	refs, items := s.retrieve(ctx, red.Text)

	// Layer 3: classifier failure of any shape degrades to RiskUnknown,
	// which the composer treats as a hold
	level := policy.RiskUnknown
	var confidence float64
	reason := "classifier unavailable"
	verdict, cerr := s.classifier.Classify(ctx, prompt.Messages(red.Text, items), snap.ModelID, snap.Timeout())
	if cerr != nil {
		log.Warn().Err(cerr).Str("comment_id", in.CommentID).Msg("classification failed")
	} else {
		level = verdict.RiskLevel
		confidence = verdict.Confidence
		reason = verdict.Reason
	}

	decision := policy.Compose(l1term != "", level, confidence, snap.RiskThreshold, snap.Policy)

	a := domain.Assessment{
		CommentID:       in.CommentID,
		TargetType:      in.TargetType,
		TextRaw:         in.Text,
		TextRedacted:    red.Text,
		Layer1Hit:       l1term,
		Layer2Context:   refs,
		Provider:        providerName,
		ModelID:         snap.ModelID,
		RiskLevel:       level,
		Confidence:      confidence,
		Reason:          reason,
		Decision:        decision,
		SettingsVersion: snap.Version,
		LatencyMs:       int(time.Since(start).Milliseconds()),
	}

	id, ierr := s.Repo.Insert(ctx, a)
	if ierr != nil {
		// No audit row means no safe way to publish under hold mode
		log.Error().Err(ierr).
			Str("comment_id", in.CommentID).
			Str("fail_mode", string(snap.FailMode)).
			Msg("assessment insert failed")
		if snap.FailMode == setdom.FailModeAllow {
			return domain.Outcome{Decision: policy.DecisionApproved}, nil
		}
		return domain.Outcome{Decision: policy.DecisionHeld, Message: snap.HeldMessage}, nil
	}

	// The pointer is a repairable cache; a failed write is logged and
	// left to the reconcile path
	ptr := domain.Pointer{
		CommentID:    in.CommentID,
		AssessmentID: id,
		TargetType:   in.TargetType,
		Decision:     decision,
		RiskLevel:    level,
		Confidence:   confidence,
	}
	if perr := s.Repo.UpsertPointer(ctx, ptr); perr != nil {
		log.Warn().Err(perr).Str("comment_id", in.CommentID).Msg("pointer upsert failed")
	}

	s.emitEvent(ctx, a, id)

	return domain.Outcome{
		AssessmentID: id,
		Decision:     decision,
		Message:      outcomeMessage(decision, snap),
	}, nil
}

func (s *Svc) retrieve(ctx context.Context, redacted string) ([]domain.ContextRef, []prompt.ContextItem) {
	snips, err := s.retrieval.Query(ctx, redacted, retrievalTopK)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("context retrieval failed, proceeding without")
		return []domain.ContextRef{}, nil
	}
	refs := make([]domain.ContextRef, 0, len(snips))
	items := make([]prompt.ContextItem, 0, len(snips))
	for _, sn := range snips {
		refs = append(refs, domain.ContextRef{
			Label: sn.Label, Content: sn.Content, Kind: sn.Kind, Score: sn.Score,
		})
		items = append(items, prompt.ContextItem{
			Label: sn.Label, Content: sn.Content, Kind: sn.Kind, Score: sn.Score,
		})
	}
	return refs, items
}

func outcomeMessage(d policy.Decision, snap setdom.Snapshot) string {
	switch d {
	case policy.DecisionHeld:
		return snap.HeldMessage
	case policy.DecisionRejected:
		return snap.RejectMessage
	default:
		return ""
	}
}

// Get returns one persisted assessment by id
func (s *Svc) Get(ctx context.Context, id string) (domain.Assessment, error) {
	return s.Repo.Get(ctx, id)
}

// RebuildPointer recomputes the pointer for one comment
func (s *Svc) RebuildPointer(ctx context.Context, commentID string) error {
	return s.Repo.RebuildPointer(ctx, commentID)
}

// RebuildAll recomputes every pointer from the assessment log
func (s *Svc) RebuildAll(ctx context.Context) (int, error) {
	return s.Repo.RebuildAll(ctx)
}
