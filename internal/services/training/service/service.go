// Package service implements the training promotion ETL
package service

import (
	"bytes"
	"context"
	"encoding/json"

	"lifering/internal/core/prompt"
	"lifering/internal/core/redact"
	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
	"lifering/internal/platform/net/http/bind"

	adom "lifering/internal/services/assess/domain"
	setdom "lifering/internal/services/settings/domain"
	"lifering/internal/services/training/domain"
	"lifering/internal/services/training/repo"
)

const defaultPageSize = 100

// Svc implements domain.PromoterPort
type Svc struct {
	Repo repo.Repo
	db   repokit.TxRunner

	assessments adom.ReaderPort
	settings    setdom.ReaderPort
}

// New constructs the training service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Repo],
	assessments adom.ReaderPort,
	settings setdom.ReaderPort,
) *Svc {
	if db == nil {
		panic("training.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("training.Service requires a non nil Repo binder")
	}
	if assessments == nil {
		panic("training.Service requires an assessment reader")
	}
	if settings == nil {
		panic("training.Service requires a settings reader")
	}
	return &Svc{Repo: binder.Bind(db), db: db, assessments: assessments, settings: settings}
}

// Promote turns one reviewed assessment into a training row.
// The input prompt is rebuilt from the stored original text and stored
// retrieval context, so the example replays exactly what the model saw
func (s *Svc) Promote(ctx context.Context, in domain.PromoteInput) (domain.Row, error) {
	corrected, err := parseCorrected(in.Corrected)
	if err != nil {
		return domain.Row{}, err
	}

	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return domain.Row{}, err
	}
	if snap.TrainingBatch == "" {
		return domain.Row{}, perr.InvalidArgf("no active training batch configured")
	}

	a, err := s.assessments.Get(ctx, in.AssessmentID)
	if err != nil {
		return domain.Row{}, err
	}

	row := domain.Row{
		SourceAssessmentID: a.ID,
		DatasetBatch:       snap.TrainingBatch,
		InputMessages:      replayMessages(a),
		CorrectedOutput:    corrected,
		ReviewerID:         in.ReviewerID,
	}

	out, err := s.Repo.Insert(ctx, row)
	if perr.IsDuplicateKey(err) {
		return s.Repo.GetBySource(ctx, a.ID, snap.TrainingBatch)
	}
	if err != nil {
		return domain.Row{}, err
	}
	return out, nil
}

// List pages promoted rows for export
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.ListResult, error) {
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	items, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return domain.ListResult{}, err
	}
	if items == nil {
		items = []domain.Row{}
	}
	return domain.ListResult{Items: items, Total: total}, nil
}

// parseCorrected rejects anything that is not exactly the expected
// schema; a malformed example must never reach the dataset
func parseCorrected(raw json.RawMessage) (domain.CorrectedOutput, error) {
	if len(raw) == 0 {
		return domain.CorrectedOutput{}, perr.InvalidArgf("corrected_output is required")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var out domain.CorrectedOutput
	if err := dec.Decode(&out); err != nil {
		return domain.CorrectedOutput{}, perr.Wrap(err, perr.ErrorCodeValidation, "corrected_output malformed")
	}
	if err := bind.Get().Validator.Struct(out); err != nil {
		return domain.CorrectedOutput{}, perr.Wrap(err, perr.ErrorCodeValidation, "corrected_output invalid")
	}
	return out, nil
}

// replayMessages recomposes the live prompt from stored inputs
func replayMessages(a adom.Assessment) []prompt.Message {
	red := redact.Redact(a.TextRaw)
	items := make([]prompt.ContextItem, 0, len(a.Layer2Context))
	for _, c := range a.Layer2Context {
		items = append(items, prompt.ContextItem{
			Label: c.Label, Content: c.Content, Kind: c.Kind, Score: c.Score,
		})
	}
	return prompt.Messages(red.Text, items)
}
