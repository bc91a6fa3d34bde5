// Package module provides the ingest module
package module

import (
	"context"
	"fmt"
	"net/http"

	"moodwire/internal/adapters/infer"
	"moodwire/internal/core/langid"
	"moodwire/internal/modkit"
	"moodwire/internal/modkit/httpkit"
	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/ingest/domain"
	"moodwire/internal/services/ingest/repo"
	"moodwire/internal/services/ingest/service"
)

// Ports exposed by the ingest module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new ingest module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var emb domain.Embedder
	if opts.EmbedHeadlines && opts.InferBaseURL != "" {
		emb = infer.NewClient(infer.Options{BaseURL: opts.InferBaseURL, Timeout: opts.InferTimeout})
	}

	db := repokit.TxRunner(deps.PG)
	if opts.TxTimeout > 0 {
		// unit transactions can hold locks for a while on big feed files
		ms := opts.TxTimeout.Milliseconds()
		db = repokit.WithBeginHooks(db, func(ctx context.Context, q repokit.Queryer) error {
			_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", ms))
			return err
		})
	}

	svc := service.New(
		db,
		repo.NewPG(),
		langid.New(),
		emb,
		service.Config{
			Workers:        opts.Workers,
			InsertChunk:    opts.InsertChunk,
			EmbedHeadlines: opts.EmbedHeadlines,
		},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "ingest" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
