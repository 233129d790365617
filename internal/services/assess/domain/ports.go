package domain

import "context"

// RunnerPort runs the full assessment pipeline for one comment
type RunnerPort interface {
	Run(ctx context.Context, in RunInput) (Outcome, error)
}

// ReaderPort reads persisted assessments (training replay, admin detail)
type ReaderPort interface {
	Get(ctx context.Context, id string) (Assessment, error)
}

// RebuildPort repairs the pointer cache from the assessment log
type RebuildPort interface {
	RebuildPointer(ctx context.Context, commentID string) error
	RebuildAll(ctx context.Context) (int, error)
}
