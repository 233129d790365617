// Package module wires training promotion into the API using modkit
package module

import (
	"net/http"

	modkit "lifering/internal/modkit"
	"lifering/internal/modkit/httpkit"
	str "lifering/internal/platform/strings"
	adom "lifering/internal/services/assess/domain"
	setdom "lifering/internal/services/settings/domain"
	"lifering/internal/services/training/domain"
	traininghttp "lifering/internal/services/training/http"
	trainingrepo "lifering/internal/services/training/repo"
	trainingsvc "lifering/internal/services/training/service"
)

// Ports exposed by the training module
type Ports struct {
	Promoter domain.PromoterPort
}

// DepPorts are the cross-module ports training needs at construction
type DepPorts struct {
	Assessments adom.ReaderPort
	Settings    setdom.ReaderPort
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

	svc *trainingsvc.Svc
}

// New constructs a training module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("training"), modkit.WithPrefix("/training")}, opts...)...)

	ports, ok := b.Ports.(DepPorts)
	if !ok {
		panic("training module: expected WithPorts(training/module.DepPorts)")
	}
	if ports.Assessments == nil || ports.Settings == nil {
		panic("training module: DepPorts missing Assessments or Settings")
	}

	svc := trainingsvc.New(deps.PG, trainingrepo.NewPG(), ports.Assessments, ports.Settings)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Promoter: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		traininghttp.Register(r, m.svc)
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
