// Package repo provides training row persistence
package repo

import (
	"context"
	"encoding/json"

	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
	"lifering/internal/services/training/domain"
)

// Repo is the training persistence surface used by the service layer
type Repo interface {
	// Insert appends one row; a duplicate (assessment, batch) pair
	// surfaces as a conflict for the service to resolve
	Insert(ctx context.Context, row domain.Row) (domain.Row, error)
	// GetBySource fetches the existing row for an (assessment, batch) pair
	GetBySource(ctx context.Context, assessmentID, batch string) (domain.Row, error)
	List(ctx context.Context, q domain.ListQuery) ([]domain.Row, int, error)
}

type (
	// PG is a Postgres implementation of the training repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const rowCols = `
	id::text, source_assessment_id::text, dataset_batch,
	input_messages, corrected_output, COALESCE(reviewer_id, ''), created_at`

func scanRow(r interface{ Scan(...any) error }) (domain.Row, error) {
	var row domain.Row
	var msgs, corrected []byte
	err := r.Scan(
		&row.ID, &row.SourceAssessmentID, &row.DatasetBatch,
		&msgs, &corrected, &row.ReviewerID, &row.CreatedAt,
	)
	if err != nil {
		return domain.Row{}, err
	}
	if err := json.Unmarshal(msgs, &row.InputMessages); err != nil {
		return domain.Row{}, perr.Wrap(err, perr.ErrorCodeJSON, "unmarshal input messages")
	}
	if err := json.Unmarshal(corrected, &row.CorrectedOutput); err != nil {
		return domain.Row{}, perr.Wrap(err, perr.ErrorCodeJSON, "unmarshal corrected output")
	}
	return row, nil
}

func (r *queries) Insert(ctx context.Context, row domain.Row) (domain.Row, error) {
	msgs, err := json.Marshal(row.InputMessages)
	if err != nil {
		return domain.Row{}, perr.Wrap(err, perr.ErrorCodeJSON, "marshal input messages")
	}
	corrected, err := json.Marshal(row.CorrectedOutput)
	if err != nil {
		return domain.Row{}, perr.Wrap(err, perr.ErrorCodeJSON, "marshal corrected output")
	}
	const sqlq = `
		INSERT INTO training_rows (
			source_assessment_id, dataset_batch, input_messages, corrected_output, reviewer_id
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING ` + rowCols
	out, err := scanRow(r.q.QueryRow(ctx, sqlq,
		row.SourceAssessmentID, row.DatasetBatch, msgs, corrected, row.ReviewerID,
	))
	if err != nil {
		return domain.Row{}, perr.FromPostgres(err, "training insert")
	}
	return out, nil
}

func (r *queries) GetBySource(ctx context.Context, assessmentID, batch string) (domain.Row, error) {
	const sqlq = `
		SELECT ` + rowCols + `
		  FROM training_rows
		 WHERE source_assessment_id = $1 AND dataset_batch = $2`
	out, err := scanRow(r.q.QueryRow(ctx, sqlq, assessmentID, batch))
	if err != nil {
		return domain.Row{}, perr.FromPostgres(err, "training get by source")
	}
	return out, nil
}

func (r *queries) List(ctx context.Context, q domain.ListQuery) ([]domain.Row, int, error) {
	const where = ` WHERE ($1 = '' OR dataset_batch = $1)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM training_rows`+where, q.Batch).Scan(&total); err != nil {
		return nil, 0, perr.FromPostgres(err, "training count")
	}

	sqlq := `SELECT ` + rowCols + ` FROM training_rows` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, sqlq, q.Batch, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "training list")
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	return out, total, rows.Err()
}
