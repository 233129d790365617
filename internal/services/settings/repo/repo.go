// Package repo provides postgres access for the engine settings singleton
package repo

import (
	"context"
	"time"

	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
)

// Row is the raw settings row; the service layer decodes policy JSON
type Row struct {
	Version        int
	Enabled        bool
	ModelID        string
	TimeoutMs      int
	RiskThreshold  float64
	TrainingBatch  string
	HeldMessage    string
	RejectMessage  string
	BlocklistTerms []string
	PolicyJSON     []byte
	FailMode       string
	UpdatedBy      string
	UpdatedAt      time.Time
}

// Repo defines the settings repository contract
type Repo interface {
	Get(ctx context.Context) (Row, error)
	// Put writes the full row, bumping version atomically via the singleton
	// primary key. expectVersion guards against concurrent admin writes
	Put(ctx context.Context, r Row, expectVersion int) (Row, error)
	// Seed inserts the default row when none exists yet
	Seed(ctx context.Context, r Row) error
}

type (
	// PG implements Repo over Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Get(ctx context.Context) (Row, error) {
	const sql = `
select version, is_enabled, model_id, timeout_ms, risk_threshold,
       training_active_batch, held_message, rejected_message,
       blocklist_terms, policy_rules, fail_mode,
       coalesce(updated_by, ''), updated_at
from engine_settings
where id = 1
`
	var row Row
	err := r.q.QueryRow(ctx, sql).Scan(
		&row.Version, &row.Enabled, &row.ModelID, &row.TimeoutMs, &row.RiskThreshold,
		&row.TrainingBatch, &row.HeldMessage, &row.RejectMessage,
		&row.BlocklistTerms, &row.PolicyJSON, &row.FailMode,
		&row.UpdatedBy, &row.UpdatedAt,
	)
	if err != nil {
		if perr.IsNoRows(err) {
			return Row{}, perr.ErrNotFound
		}
		return Row{}, perr.FromPostgres(err, "settings get")
	}
	return row, nil
}

func (r *queries) Put(ctx context.Context, row Row, expectVersion int) (Row, error) {
	const sql = `
update engine_settings
   set version = version + 1,
       is_enabled = $1,
       model_id = $2,
       timeout_ms = $3,
       risk_threshold = $4,
       training_active_batch = $5,
       held_message = $6,
       rejected_message = $7,
       blocklist_terms = $8,
       policy_rules = $9,
       fail_mode = $10,
       updated_by = $11,
       updated_at = now()
 where id = 1 and version = $12
returning version, updated_at
`
	out := row
	err := r.q.QueryRow(ctx, sql,
		row.Enabled, row.ModelID, row.TimeoutMs, row.RiskThreshold,
		row.TrainingBatch, row.HeldMessage, row.RejectMessage,
		row.BlocklistTerms, row.PolicyJSON, row.FailMode,
		row.UpdatedBy, expectVersion,
	).Scan(&out.Version, &out.UpdatedAt)
	if err != nil {
		if perr.IsNoRows(err) {
			return Row{}, perr.Conflictf("settings changed concurrently, reload and retry")
		}
		return Row{}, perr.FromPostgres(err, "settings put")
	}
	return out, nil
}

func (r *queries) Seed(ctx context.Context, row Row) error {
	const sql = `
insert into engine_settings
    (id, version, is_enabled, model_id, timeout_ms, risk_threshold,
     training_active_batch, held_message, rejected_message,
     blocklist_terms, policy_rules, fail_mode, updated_at)
values (1, 1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
on conflict (id) do nothing
`
	_, err := r.q.Exec(ctx, sql,
		row.Enabled, row.ModelID, row.TimeoutMs, row.RiskThreshold,
		row.TrainingBatch, row.HeldMessage, row.RejectMessage,
		row.BlocklistTerms, row.PolicyJSON, row.FailMode,
	)
	return perr.FromPostgres(err, "settings seed")
}
