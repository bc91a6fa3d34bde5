package module

import (
	"context"

	"moodwire/internal/services/api/records/domain"
	recordssvc "moodwire/internal/services/api/records/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptRecordsPort struct{ svc recordssvc.Service }

// PageRaw returns one offset page of ingested comments
func (a adaptRecordsPort) PageRaw(ctx context.Context, in domain.RawPageInput) ([]domain.RawComment, error) {
	return a.svc.PageRaw(ctx, in)
}

// PageClassified returns one cursor page of classified comments
func (a adaptRecordsPort) PageClassified(ctx context.Context, in domain.ClassifiedPageInput) (domain.ClassifiedPage, error) {
	return a.svc.PageClassified(ctx, in)
}
