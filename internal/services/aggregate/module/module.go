// Package module provides the aggregate module
package module

import (
	"net/http"

	"moodwire/internal/modkit"
	"moodwire/internal/modkit/httpkit"
	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/aggregate/domain"
	"moodwire/internal/services/aggregate/repo"
	"moodwire/internal/services/aggregate/service"
)

// Ports exposed by the aggregate module
type Ports struct {
	Query  domain.QueryPort
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new aggregate module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(repokit.TxRunner(deps.PG), repo.NewPG(), service.Config{
		MinDate: opts.MinDate,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Query: svc, Runner: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "aggregate" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
