package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	PageRaw(ctx context.Context, in RawPageInput) ([]RawComment, error)
	PageClassified(ctx context.Context, in ClassifiedPageInput) (ClassifiedPage, error)
}
