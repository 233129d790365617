package repo

import (
	"context"

	perr "lifering/internal/platform/errors"
)

// The host application owns the comments table; these writes are
// best-effort and tolerate a comment already purged by the host

func (r *queries) RestoreComment(ctx context.Context, commentID string) error {
	const sqlq = `
		UPDATE comments
		   SET is_visible = TRUE, updated_at = now()
		 WHERE id = $1`
	if _, err := r.q.Exec(ctx, sqlq, commentID); err != nil {
		return perr.FromPostgres(err, "restore comment")
	}
	return nil
}

func (r *queries) DeleteCommentContent(ctx context.Context, commentID string) error {
	const sqlq = `
		UPDATE comments
		   SET content = '', is_visible = FALSE, deleted_at = now(), updated_at = now()
		 WHERE id = $1`
	if _, err := r.q.Exec(ctx, sqlq, commentID); err != nil {
		return perr.FromPostgres(err, "delete comment content")
	}
	return nil
}
