// Package repo provides assessment persistence
package repo

import (
	"context"
	"encoding/json"
	"strings"

	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
	"lifering/internal/services/assess/domain"
)

// Repo is the assessment persistence surface used by the pipeline
type Repo interface {
	// Insert appends one assessment and returns its id. Append-only;
	// nothing ever updates the decision fields afterwards
	Insert(ctx context.Context, a domain.Assessment) (string, error)
	Get(ctx context.Context, id string) (domain.Assessment, error)
	// UpsertPointer refreshes the latest-decision cache for a comment
	UpsertPointer(ctx context.Context, p domain.Pointer) error
	// RebuildPointer recomputes one pointer from the newest assessment
	RebuildPointer(ctx context.Context, commentID string) error
	// RebuildAll recomputes every pointer; returns rows written
	RebuildAll(ctx context.Context) (int, error)
}

type (
	// PG is a Postgres implementation of the assessment repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, a domain.Assessment) (string, error) {
	ctxJSON, err := json.Marshal(a.Layer2Context)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeJSON, "marshal layer2 context")
	}
	const sqlq = `
		INSERT INTO safety_assessments (
			comment_id, target_type, text_raw, text_redacted,
			layer1_hit, layer2_context,
			provider, model_id, risk_level, confidence, reason,
			decision, settings_version, latency_ms
		) VALUES (
			$1, NULLIF($2, ''), $3, $4,
			NULLIF($5, ''), $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14
		)
		RETURNING id::text
	`
	var id string
	err = r.q.QueryRow(ctx, sqlq,
		a.CommentID, a.TargetType, a.TextRaw, a.TextRedacted,
		a.Layer1Hit, ctxJSON,
		a.Provider, a.ModelID, string(a.RiskLevel), a.Confidence, a.Reason,
		string(a.Decision), a.SettingsVersion, a.LatencyMs,
	).Scan(&id)
	if err != nil {
		return "", perr.FromPostgres(err, "assessment insert")
	}
	return id, nil
}

const assessmentCols = `
	id::text, comment_id, COALESCE(target_type, ''), text_raw, text_redacted,
	COALESCE(layer1_hit, ''), layer2_context,
	provider, model_id, risk_level, confidence, reason,
	decision, settings_version, latency_ms, created_at,
	COALESCE(human_label, ''), COALESCE(review_status, ''),
	COALESCE(reviewed_by, ''), reviewed_at`

func scanAssessment(row interface{ Scan(...any) error }) (domain.Assessment, error) {
	var a domain.Assessment
	var ctxJSON []byte
	err := row.Scan(
		&a.ID, &a.CommentID, &a.TargetType, &a.TextRaw, &a.TextRedacted,
		&a.Layer1Hit, &ctxJSON,
		&a.Provider, &a.ModelID, &a.RiskLevel, &a.Confidence, &a.Reason,
		&a.Decision, &a.SettingsVersion, &a.LatencyMs, &a.CreatedAt,
		&a.HumanLabel, &a.ReviewStatus,
		&a.ReviewedBy, &a.ReviewedAt,
	)
	if err != nil {
		return domain.Assessment{}, err
	}
	if len(ctxJSON) > 0 {
		if err := json.Unmarshal(ctxJSON, &a.Layer2Context); err != nil {
			return domain.Assessment{}, perr.Wrap(err, perr.ErrorCodeJSON, "unmarshal layer2 context")
		}
	}
	return a, nil
}

func (r *queries) Get(ctx context.Context, id string) (domain.Assessment, error) {
	const sqlq = `SELECT ` + assessmentCols + ` FROM safety_assessments WHERE id = $1`
	a, err := scanAssessment(r.q.QueryRow(ctx, sqlq, id))
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Assessment{}, perr.NotFoundf("assessment %s", id)
		}
		return domain.Assessment{}, perr.FromPostgres(err, "assessment get")
	}
	return a, nil
}

func (r *queries) UpsertPointer(ctx context.Context, p domain.Pointer) error {
	const sqlq = `
		INSERT INTO comment_moderation (
			comment_id, assessment_id, target_type, decision, risk_level, confidence
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		ON CONFLICT (comment_id) DO UPDATE
		SET assessment_id = EXCLUDED.assessment_id,
		    target_type   = EXCLUDED.target_type,
		    decision      = EXCLUDED.decision,
		    risk_level    = EXCLUDED.risk_level,
		    confidence    = EXCLUDED.confidence,
		    updated_at    = now()
	`
	_, err := r.q.Exec(ctx, sqlq,
		p.CommentID, p.AssessmentID, p.TargetType,
		string(p.Decision), string(p.RiskLevel), p.Confidence,
	)
	if err != nil {
		return perr.FromPostgres(err, "pointer upsert")
	}
	return nil
}

// rebuildSQL derives pointers from the newest assessment per comment
const rebuildSQL = `
	INSERT INTO comment_moderation (
		comment_id, assessment_id, target_type, decision, risk_level, confidence
	)
	SELECT DISTINCT ON (comment_id)
	       comment_id, id, target_type, decision, risk_level, confidence
	  FROM safety_assessments
	 %s
	 ORDER BY comment_id, created_at DESC
	ON CONFLICT (comment_id) DO UPDATE
	SET assessment_id = EXCLUDED.assessment_id,
	    target_type   = EXCLUDED.target_type,
	    decision      = EXCLUDED.decision,
	    risk_level    = EXCLUDED.risk_level,
	    confidence    = EXCLUDED.confidence,
	    updated_at    = now()
`

func (r *queries) RebuildPointer(ctx context.Context, commentID string) error {
	sqlq := strings.Replace(rebuildSQL, "%s", "WHERE comment_id = $1", 1)
	tag, err := r.q.Exec(ctx, sqlq, commentID)
	if err != nil {
		return perr.FromPostgres(err, "pointer rebuild")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("no assessments for comment %s", commentID)
	}
	return nil
}

func (r *queries) RebuildAll(ctx context.Context) (int, error) {
	sqlq := strings.Replace(rebuildSQL, "%s", "", 1)
	tag, err := r.q.Exec(ctx, sqlq)
	if err != nil {
		return 0, perr.FromPostgres(err, "pointer rebuild all")
	}
	return int(tag.RowsAffected()), nil
}
