package module

import (
	"time"

	"lifering/internal/platform/config"
)

// Options controls the indexing worker and its vector-index client
type Options struct {
	Concurrency    int
	QueueTakeBatch int
	RetryBaseMs    int
	MaxAttempts    int
	LeaseFor       time.Duration

	VectorBaseURL string
	VectorAPIKey  string
	VectorTimeout time.Duration
}

// FromConfig reads with INDEXER_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("INDEXER_")
	return Options{
		Concurrency:    c.MayInt("WORKER_CONCURRENCY", 2),
		QueueTakeBatch: c.MayInt("QUEUE_TAKE_BATCH", 32),
		RetryBaseMs:    int(c.MayDuration("RETRY_BASE", 500*time.Millisecond).Milliseconds()),
		MaxAttempts:    c.MayInt("MAX_ATTEMPTS", 10),
		LeaseFor:       c.MayDuration("LEASE_FOR", 60*time.Second),

		VectorBaseURL: c.MayString("VECTOR_BASE_URL", "http://localhost:8091"),
		VectorAPIKey:  c.MayString("VECTOR_API_KEY", ""),
		VectorTimeout: c.MayDuration("VECTOR_TIMEOUT", 5*time.Second),
	}
}
