// Package service implements the human review queue and actions
package service

import (
	"context"

	"lifering/internal/core/policy"
	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
	"lifering/internal/platform/logger"
	"lifering/internal/services/review/domain"
	"lifering/internal/services/review/repo"
)

const defaultPageSize = 50

// Svc implements QueuePort and ActionPort
type Svc struct {
	Repo repo.Repo
	db   repokit.TxRunner
}

// New constructs the review service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("review.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("review.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), db: db}
}

// ListHeld returns one page of the held queue, newest first. The page
// is fetched first; reason text follows in a single batched query
func (s *Svc) ListHeld(ctx context.Context, q domain.Query) (domain.QueueResult, error) {
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.MinConfidence != nil && q.MaxConfidence != nil && *q.MinConfidence > *q.MaxConfidence {
		return domain.QueueResult{}, perr.InvalidArgf("min_confidence exceeds max_confidence")
	}

	items, total, err := s.Repo.ListHeld(ctx, q)
	if err != nil {
		return domain.QueueResult{}, err
	}
	if len(items) == 0 {
		return domain.QueueResult{Items: []domain.QueueItem{}, Total: total}, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.AssessmentID)
	}
	reasons, err := s.Repo.ReasonsByIDs(ctx, ids)
	if err != nil {
		return domain.QueueResult{}, err
	}
	for i := range items {
		if re, ok := reasons[items[i].AssessmentID]; ok {
			items[i].Layer1Hit = re.Layer1Hit
			items[i].Reason = re.Reason
		}
	}
	return domain.QueueResult{Items: items, Total: total}, nil
}

// Approve publishes a held comment. Re-approving is a no-op
func (s *Svc) Approve(ctx context.Context, commentID string) error {
	found, err := s.Repo.SetPointerDecision(ctx, commentID, string(policy.DecisionApproved))
	if err != nil {
		return err
	}
	if !found {
		return perr.NotFoundf("no moderation pointer for comment %s", commentID)
	}
	if err := s.Repo.RestoreComment(ctx, commentID); err != nil {
		logger.C(ctx).Warn().Err(err).Str("comment_id", commentID).Msg("comment restore failed")
	}
	return nil
}

// Reject blocks a held comment and deletes its content. The assessment
// row survives the deletion
func (s *Svc) Reject(ctx context.Context, commentID string) error {
	found, err := s.Repo.SetPointerDecision(ctx, commentID, string(policy.DecisionRejected))
	if err != nil {
		return err
	}
	if !found {
		return perr.NotFoundf("no moderation pointer for comment %s", commentID)
	}
	return s.Repo.DeleteCommentContent(ctx, commentID)
}

// Label attaches a ground-truth label without touching the decision
func (s *Svc) Label(ctx context.Context, in domain.LabelInput) error {
	return s.Repo.SetLabel(ctx, in.AssessmentID, in.Label, in.ReviewerID)
}

// MarkReviewed flags an assessment for training-set curation
func (s *Svc) MarkReviewed(ctx context.Context, in domain.StatusInput) error {
	return s.Repo.SetReviewStatus(ctx, in.AssessmentID, in.Status, in.ReviewerID)
}
