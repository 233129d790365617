package domain

import "context"

// QueuePort lists held comments for reviewers
type QueuePort interface {
	ListHeld(ctx context.Context, q Query) (QueueResult, error)
}

// ActionPort applies reviewer decisions
type ActionPort interface {
	// Approve flips the pointer to APPROVED and restores visibility; idempotent
	Approve(ctx context.Context, commentID string) error
	// Reject flips the pointer to REJECTED then deletes the comment
	// content; the assessment row survives
	Reject(ctx context.Context, commentID string) error
	Label(ctx context.Context, in LabelInput) error
	MarkReviewed(ctx context.Context, in StatusInput) error
}
