// Package module implements the classify module
package module

import (
	"context"
	"net/http"

	"moodwire/internal/adapters/infer"
	"moodwire/internal/core/emotion"
	"moodwire/internal/modkit"
	"moodwire/internal/modkit/httpkit"
	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/classify/domain"
	"moodwire/internal/services/classify/service"
)

// Ports exposed by the classify module
type Ports struct {
	Runner domain.RunnerPort
	Writer domain.WriterPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new classify module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("classify"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("classify module: expected WithPorts(classify/domain.Ports)")
	}
	if ports.Comments == nil {
		panic("classify module: Ports missing Comments reader")
	}

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.BatchSize != 0 {
		cfg.BatchSize = overrides.BatchSize
	}
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.StartAfter != 0 {
		cfg.StartAfter = overrides.StartAfter
	}
	if overrides.InferBaseURL != "" {
		cfg.InferBaseURL = overrides.InferBaseURL
	}

	writer := service.NewPGWriter(repokit.TxRunner(deps.PG), service.WriterConfig{
		InsertChunk: cfg.InsertChunk,
	})

	client := infer.NewClient(infer.Options{
		BaseURL: cfg.InferBaseURL,
		Timeout: cfg.InferTimeout,
	})

	runner := service.NewRunner(
		ports.Comments,
		writer,
		Caps(client),
		service.Config{
			BatchSize:  cfg.BatchSize,
			Workers:    cfg.Workers,
			StartAfter: cfg.StartAfter,
		},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner, Writer: writer}
	return m
}

// Caps builds the language capability map over one inference client.
// Only lv and ru carry models; everything else is skipped at runtime
func Caps(client *infer.Client) domain.Capabilities {
	caps := domain.Capabilities{}
	for _, lang := range []string{"lv", "ru"} {
		caps[lang] = domain.SchemePair{
			Normal: classifierFor(client, lang, emotion.SchemeNormal),
			Ekman:  classifierFor(client, lang, emotion.SchemeEkman),
		}
	}
	return caps
}

func classifierFor(client *infer.Client, lang string, scheme emotion.Scheme) domain.Classifier {
	return domain.ClassifierFunc(func(ctx context.Context, text string) (map[string]float64, error) {
		return client.Classify(ctx, lang, scheme, text)
	})
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "classify" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
