// Package repo provides review queue persistence over the shared
// assessment and pointer tables
package repo

import (
	"context"

	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
	"lifering/internal/services/review/domain"
)

// Reasons are the display-only fields batch-fetched per queue page
type Reasons struct {
	Layer1Hit string
	Reason    string
}

// Repo is the review persistence surface used by the service layer
type Repo interface {
	// ListHeld returns one filtered page of held pointers joined for
	// filtering; reason text is deliberately not part of this query
	ListHeld(ctx context.Context, q domain.Query) ([]domain.QueueItem, int, error)
	// ReasonsByIDs batch-fetches reason fields for one queue page
	ReasonsByIDs(ctx context.Context, assessmentIDs []string) (map[string]Reasons, error)
	// SetPointerDecision flips the cached decision; reports whether a
	// pointer row existed
	SetPointerDecision(ctx context.Context, commentID, decision string) (bool, error)
	SetLabel(ctx context.Context, assessmentID, label, reviewerID string) error
	SetReviewStatus(ctx context.Context, assessmentID, status, reviewerID string) error

	// Host comment table writes; both tolerate a missing row
	RestoreComment(ctx context.Context, commentID string) error
	DeleteCommentContent(ctx context.Context, commentID string) error
}

type (
	// PG is a Postgres implementation of the review repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Empty filters collapse to always-true predicates so one statement
// serves every filter combination
const heldWhere = `
	WHERE m.decision = 'HELD'
	  AND ($1 = '' OR m.risk_level = $1)
	  AND ($2::float8 IS NULL OR m.confidence >= $2)
	  AND ($3::float8 IS NULL OR m.confidence <= $3)
	  AND ($4 = '' OR m.target_type = $4)
	  AND ($5::timestamptz IS NULL OR a.created_at >= $5)
	  AND ($6::timestamptz IS NULL OR a.created_at <= $6)
	  AND ($7 = '' OR a.text_redacted ILIKE '%' || $7 || '%')`

func (r *queries) ListHeld(ctx context.Context, q domain.Query) ([]domain.QueueItem, int, error) {
	const fromClause = `
		FROM comment_moderation m
		JOIN safety_assessments a ON a.id = m.assessment_id`

	var total int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+fromClause+heldWhere,
		q.RiskLevel, q.MinConfidence, q.MaxConfidence, q.TargetType,
		q.Since, q.Until, q.Search,
	).Scan(&total)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "queue count")
	}

	sqlq := `
		SELECT m.comment_id, m.assessment_id::text, COALESCE(m.target_type, ''),
		       m.risk_level, m.confidence, a.text_redacted, a.created_at` +
		fromClause + heldWhere + `
		ORDER BY a.created_at DESC
		LIMIT $8 OFFSET $9`
	rows, err := r.q.Query(ctx, sqlq,
		q.RiskLevel, q.MinConfidence, q.MaxConfidence, q.TargetType,
		q.Since, q.Until, q.Search, q.Limit, q.Offset,
	)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "queue page")
	}
	defer rows.Close()

	var out []domain.QueueItem
	for rows.Next() {
		var it domain.QueueItem
		if err := rows.Scan(
			&it.CommentID, &it.AssessmentID, &it.TargetType,
			&it.RiskLevel, &it.Confidence, &it.TextRedacted, &it.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, it)
	}
	return out, total, rows.Err()
}

func (r *queries) ReasonsByIDs(ctx context.Context, assessmentIDs []string) (map[string]Reasons, error) {
	if len(assessmentIDs) == 0 {
		return map[string]Reasons{}, nil
	}
	const sqlq = `
		SELECT id::text, COALESCE(layer1_hit, ''), reason
		  FROM safety_assessments
		 WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, sqlq, assessmentIDs)
	if err != nil {
		return nil, perr.FromPostgres(err, "queue reasons")
	}
	defer rows.Close()

	out := make(map[string]Reasons, len(assessmentIDs))
	for rows.Next() {
		var id string
		var re Reasons
		if err := rows.Scan(&id, &re.Layer1Hit, &re.Reason); err != nil {
			return nil, err
		}
		out[id] = re
	}
	return out, rows.Err()
}

func (r *queries) SetPointerDecision(ctx context.Context, commentID, decision string) (bool, error) {
	const sqlq = `
		UPDATE comment_moderation
		   SET decision = $2, updated_at = now()
		 WHERE comment_id = $1`
	tag, err := r.q.Exec(ctx, sqlq, commentID, decision)
	if err != nil {
		return false, perr.FromPostgres(err, "pointer decision")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *queries) SetLabel(ctx context.Context, assessmentID, label, reviewerID string) error {
	const sqlq = `
		UPDATE safety_assessments
		   SET human_label = $2,
		       reviewed_by = NULLIF($3, ''),
		       reviewed_at = now()
		 WHERE id = $1`
	tag, err := r.q.Exec(ctx, sqlq, assessmentID, label, reviewerID)
	if err != nil {
		return perr.FromPostgres(err, "set label")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("assessment %s", assessmentID)
	}
	return nil
}

func (r *queries) SetReviewStatus(ctx context.Context, assessmentID, status, reviewerID string) error {
	const sqlq = `
		UPDATE safety_assessments
		   SET review_status = $2,
		       reviewed_by   = NULLIF($3, ''),
		       reviewed_at   = now()
		 WHERE id = $1`
	tag, err := r.q.Exec(ctx, sqlq, assessmentID, status, reviewerID)
	if err != nil {
		return perr.FromPostgres(err, "set review status")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("assessment %s", assessmentID)
	}
	return nil
}
