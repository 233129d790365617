package domain

import "context"

// ReaderPort is the pipeline-facing view: one snapshot per run
type ReaderPort interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// AdminPort is the operator-facing view
type AdminPort interface {
	ReaderPort
	Update(ctx context.Context, in UpdateInput) (Snapshot, error)
}
