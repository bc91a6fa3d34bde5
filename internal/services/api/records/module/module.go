// Package module wires records into the API using modkit
package module

import (
	"net/http"

	modkit "moodwire/internal/modkit"
	"moodwire/internal/modkit/httpkit"
	str "moodwire/internal/platform/strings"
	recordshttp "moodwire/internal/services/api/records/http"
	recordsrepo "moodwire/internal/services/api/records/repo"
	recordssvc "moodwire/internal/services/api/records/service"
	commentsdom "moodwire/internal/services/comments/domain"
)

// Ports are the dependencies the records module needs injected
type Ports struct {
	Comments commentsdom.ReaderPort
}

// Module implements the records module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc recordssvc.Service
}

// New constructs the records module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("records"), modkit.WithPrefix("/records")}, opts...)...)

	in, ok := b.Ports.(Ports)
	if !ok || in.Comments == nil {
		panic("records module requires modkit.WithPorts(module.Ports{Comments: ...})")
	}

	svc := recordssvc.New(deps.PG, recordsrepo.NewPG(), in.Comments)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptRecordsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		recordshttp.Register(r, m.svc)
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

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "records") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
