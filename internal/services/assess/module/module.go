// Package module wires the assessment pipeline into the API using modkit
package module

import (
	"net/http"

	"lifering/internal/adapters/llm"
	"lifering/internal/adapters/vectorindex"
	modkit "lifering/internal/modkit"
	"lifering/internal/modkit/httpkit"
	str "lifering/internal/platform/strings"
	"lifering/internal/services/assess/domain"
	assesshttp "lifering/internal/services/assess/http"
	assessrepo "lifering/internal/services/assess/repo"
	assesssvc "lifering/internal/services/assess/service"
	setdom "lifering/internal/services/settings/domain"
)

// Ports exposed by the assess module
type Ports struct {
	Runner  domain.RunnerPort
	Reader  domain.ReaderPort
	Rebuild domain.RebuildPort
}

// DepPorts are the cross-module ports the pipeline needs at construction
type DepPorts struct {
	Settings setdom.ReaderPort
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

	svc *assesssvc.Svc
}

// New constructs an assess module with the provided dependencies and options
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("assess"), modkit.WithPrefix("/assess")}, opts...)...)

	ports, ok := b.Ports.(DepPorts)
	if !ok {
		panic("assess module: expected WithPorts(assess/module.DepPorts)")
	}
	if ports.Settings == nil {
		panic("assess module: DepPorts missing Settings")
	}

	o := FromConfig(deps.Cfg)
	if overrides.LLMBaseURL != "" {
		o.LLMBaseURL = overrides.LLMBaseURL
	}
	if overrides.LLMAPIKey != "" {
		o.LLMAPIKey = overrides.LLMAPIKey
	}
	if overrides.VectorBaseURL != "" {
		o.VectorBaseURL = overrides.VectorBaseURL
	}
	if overrides.VectorAPIKey != "" {
		o.VectorAPIKey = overrides.VectorAPIKey
	}

	classifier := llm.NewClient(llm.Options{
		BaseURL:    o.LLMBaseURL,
		APIKey:     o.LLMAPIKey,
		MaxRetries: o.LLMRetries,
	})
	retrieval := vectorindex.NewClient(vectorindex.Options{
		BaseURL: o.VectorBaseURL,
		APIKey:  o.VectorAPIKey,
		Timeout: o.VectorTimeout,
	})

	svc := assesssvc.New(deps.PG, assessrepo.NewPG(), ports.Settings, retrieval, classifier, deps.CH)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Runner: svc, Reader: svc, Rebuild: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		assesshttp.Register(r, m.svc)
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
