// Package module provides the comments module
package module

import (
	"net/http"

	"moodwire/internal/modkit"
	"moodwire/internal/modkit/httpkit"
	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/comments/domain"
	"moodwire/internal/services/comments/repo"
	"moodwire/internal/services/comments/service"
)

// Ports exposed by the comments module
type Ports struct {
	Reader domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new comments module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder, service.Config{
		HardLimit: opts.HardLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Reader: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "comments" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
