// Package module wires the review queue into the API using modkit
package module

import (
	"net/http"

	modkit "lifering/internal/modkit"
	"lifering/internal/modkit/httpkit"
	str "lifering/internal/platform/strings"
	"lifering/internal/services/review/domain"
	reviewhttp "lifering/internal/services/review/http"
	reviewrepo "lifering/internal/services/review/repo"
	reviewsvc "lifering/internal/services/review/service"
)

// Ports exposed by the review module
type Ports struct {
	Queue   domain.QueuePort
	Actions domain.ActionPort
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

	svc *reviewsvc.Svc
}

// New constructs a review module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("review"), modkit.WithPrefix("/review")}, opts...)...)

	svc := reviewsvc.New(deps.PG, reviewrepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Queue: svc, Actions: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reviewhttp.Register(r, m.svc)
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
