// Package module wires charts into the API using modkit
package module

import (
	"net/http"

	modkit "moodwire/internal/modkit"
	"moodwire/internal/modkit/httpkit"
	str "moodwire/internal/platform/strings"
	chartshttp "moodwire/internal/services/api/charts/http"
	aggdom "moodwire/internal/services/aggregate/domain"
)

// Ports are the dependencies the charts module needs injected
type Ports struct {
	Query aggdom.QueryPort
}

// Module implements the charts module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the charts module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("charts"), modkit.WithPrefix("/charts")}, opts...)...)

	in, ok := b.Ports.(Ports)
	if !ok || in.Query == nil {
		panic("charts module requires modkit.WithPorts(module.Ports{Query: ...})")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		ports:     in,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		chartshttp.Register(r, m.ports.Query)
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
func (m *Module) Name() string { return str.MustString(m.name, "charts") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
