package domain

import "context"

// EnqueuePort enqueues indexing requests for async processing
type EnqueuePort interface {
	EnqueueIndex(ctx context.Context, args EnqueueArgs) error
}

// WorkerPort (run loop) is separate
type WorkerPort interface {
	Run(ctx context.Context) error
}
