// Package repo provides the corpus repository implementation
package repo

import (
	"context"

	"lifering/internal/modkit/repokit"
	perr "lifering/internal/platform/errors"
	"lifering/internal/services/corpus/domain"
)

// Repo is the corpus persistence surface used by the service layer
type Repo interface {
	Insert(ctx context.Context, in domain.CreateInput) (domain.Item, error)
	Get(ctx context.Context, id string) (domain.Item, error)
	// Update edits content fields only; status moves through SetStatus
	Update(ctx context.Context, id string, in domain.UpdateInput) (domain.Item, error)
	SetStatus(ctx context.Context, id string, status domain.Status) (domain.Item, error)
	List(ctx context.Context, q domain.ListQuery) ([]domain.Item, int, error)
}

type (
	// PG is a Postgres implementation of the corpus repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const itemCols = `
	id::text, kind, status, title, content, COALESCE(label, ''),
	COALESCE(created_by, ''), created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (domain.Item, error) {
	var it domain.Item
	err := row.Scan(
		&it.ID, &it.Kind, &it.Status, &it.Title, &it.Content, &it.Label,
		&it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
	)
	return it, err
}

func (r *queries) Insert(ctx context.Context, in domain.CreateInput) (domain.Item, error) {
	const sqlq = `
		INSERT INTO corpus_items (kind, status, title, content, label, created_by)
		VALUES ($1, 'draft', $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING ` + itemCols
	it, err := scanItem(r.q.QueryRow(ctx, sqlq, in.Kind, in.Title, in.Content, in.Label, in.CreatedBy))
	if err != nil {
		return domain.Item{}, perr.FromPostgres(err, "corpus insert")
	}
	return it, nil
}

func (r *queries) Get(ctx context.Context, id string) (domain.Item, error) {
	const sqlq = `SELECT ` + itemCols + ` FROM corpus_items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, sqlq, id))
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Item{}, perr.NotFoundf("corpus item %s", id)
		}
		return domain.Item{}, perr.FromPostgres(err, "corpus get")
	}
	return it, nil
}

func (r *queries) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.Item, error) {
	const sqlq = `
		UPDATE corpus_items
		   SET title      = COALESCE($2, title),
		       content    = COALESCE($3, content),
		       label      = COALESCE($4, label),
		       updated_at = now()
		 WHERE id = $1
		RETURNING ` + itemCols
	it, err := scanItem(r.q.QueryRow(ctx, sqlq, id, in.Title, in.Content, in.Label))
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Item{}, perr.NotFoundf("corpus item %s", id)
		}
		return domain.Item{}, perr.FromPostgres(err, "corpus update")
	}
	return it, nil
}

func (r *queries) SetStatus(ctx context.Context, id string, status domain.Status) (domain.Item, error) {
	const sqlq = `
		UPDATE corpus_items
		   SET status = $2, updated_at = now()
		 WHERE id = $1
		RETURNING ` + itemCols
	it, err := scanItem(r.q.QueryRow(ctx, sqlq, id, string(status)))
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Item{}, perr.NotFoundf("corpus item %s", id)
		}
		return domain.Item{}, perr.FromPostgres(err, "corpus set status")
	}
	return it, nil
}

func (r *queries) List(ctx context.Context, q domain.ListQuery) ([]domain.Item, int, error) {
	// Empty filters collapse to always-true predicates so one statement
	// serves every filter combination
	const where = `
		WHERE ($1 = '' OR kind = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR content ILIKE '%' || $3 || '%')`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM corpus_items`+where,
		q.Kind, q.Status, q.Search).Scan(&total); err != nil {
		return nil, 0, perr.FromPostgres(err, "corpus count")
	}

	sqlq := `SELECT ` + itemCols + ` FROM corpus_items` + where + `
		ORDER BY updated_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, sqlq, q.Kind, q.Status, q.Search, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "corpus list")
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, it)
	}
	return out, total, rows.Err()
}
