// Package module wires the corpus into the API using modkit
package module

import (
	"net/http"

	modkit "lifering/internal/modkit"
	"lifering/internal/modkit/httpkit"
	str "lifering/internal/platform/strings"
	"lifering/internal/services/corpus/domain"
	corpushttp "lifering/internal/services/corpus/http"
	corpusrepo "lifering/internal/services/corpus/repo"
	corpussvc "lifering/internal/services/corpus/service"
	idxdom "lifering/internal/services/indexer/domain"
)

// Ports exposed by the corpus module
type Ports struct {
	Editor domain.EditorPort
}

// DepPorts are the cross-module ports the corpus needs at construction
type DepPorts struct {
	Indexer idxdom.EnqueuePort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *corpussvc.Svc
}

// New constructs a corpus module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("corpus"), modkit.WithPrefix("/corpus")}, opts...)...)

	ports, ok := b.Ports.(DepPorts)
	if !ok {
		panic("corpus module: expected WithPorts(corpus/module.DepPorts)")
	}
	if ports.Indexer == nil {
		panic("corpus module: DepPorts missing Indexer")
	}

	svc := corpussvc.New(deps.PG, corpusrepo.NewPG(), ports.Indexer)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Editor: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		corpushttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
