// Package domain defines the indexing queue types and ports
package domain

import "time"

// IndexJob is one leased row from the index_jobs queue
type IndexJob struct {
	JobID        string
	TargetType   string
	TargetID     string
	Priority     string
	Attempts     int
	LastError    string
	NextAttempt  time.Time
	LeaseExpires time.Time
	LeasedBy     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EnqueueArgs holds parameters for enqueuing an indexing request
type EnqueueArgs struct {
	TargetType string // "corpus_item"
	TargetID   string
	Priority   string // normal | high | delete
}
