package module

import dom "lifering/internal/services/indexer/domain"

// Ports holds the ports exposed by the indexer module
type Ports struct {
	Worker   dom.WorkerPort
	Enqueuer dom.EnqueuePort
}
