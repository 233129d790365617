// Package module wires the indexing worker service and exposes its ports
package module

import (
	"lifering/internal/adapters/vectorindex"
	"lifering/internal/modkit"
	"lifering/internal/modkit/httpkit"
	"lifering/internal/services/indexer/service"
)

// Module defines the indexer worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the indexer worker module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.Concurrency != 0 {
		opts.Concurrency = overrides.Concurrency
	}
	if overrides.QueueTakeBatch != 0 {
		opts.QueueTakeBatch = overrides.QueueTakeBatch
	}
	if overrides.RetryBaseMs != 0 {
		opts.RetryBaseMs = overrides.RetryBaseMs
	}
	if overrides.MaxAttempts != 0 {
		opts.MaxAttempts = overrides.MaxAttempts
	}
	if overrides.LeaseFor != 0 {
		opts.LeaseFor = overrides.LeaseFor
	}
	if overrides.VectorBaseURL != "" {
		opts.VectorBaseURL = overrides.VectorBaseURL
	}
	if overrides.VectorAPIKey != "" {
		opts.VectorAPIKey = overrides.VectorAPIKey
	}

	push := vectorindex.NewClient(vectorindex.Options{
		BaseURL: opts.VectorBaseURL,
		APIKey:  opts.VectorAPIKey,
		Timeout: opts.VectorTimeout,
	})

	svc := service.New(deps, service.Config{
		Concurrency:    opts.Concurrency,
		QueueTakeBatch: opts.QueueTakeBatch,
		RetryBaseMs:    opts.RetryBaseMs,
		MaxAttempts:    opts.MaxAttempts,
		LeaseFor:       opts.LeaseFor,
	}, push)

	m := &Module{deps: deps}
	m.ports = Ports{
		Worker:   svc, // svc implements WorkerPort
		Enqueuer: svc, // svc also implements EnqueuePort
	}
	return m
}

// Ports returns the module ports (Worker, Enqueuer)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "indexer" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
