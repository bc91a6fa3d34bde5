package domain

import (
	"context"

	commentsdom "moodwire/internal/services/comments/domain"
)

// CommentsReader is the slice of the comments read surface classify needs
type CommentsReader = commentsdom.ReaderPort

// Classifier scores one text under one fixed (language, scheme) pair.
// Scores are non-negative and roughly sum to one before rounding
type Classifier interface {
	Classify(ctx context.Context, text string) (map[string]float64, error)
}

// ClassifierFunc adapts a function to the Classifier port
type ClassifierFunc func(ctx context.Context, text string) (map[string]float64, error)

// Classify implements Classifier
func (f ClassifierFunc) Classify(ctx context.Context, text string) (map[string]float64, error) {
	return f(ctx, text)
}

// SchemePair bundles the two per-scheme classifiers for one language
type SchemePair struct {
	Normal Classifier
	Ekman  Classifier
}

// Capabilities maps a language to its classifier pair. Built once at
// startup; languages absent from the map are skipped, never errors
type Capabilities map[string]SchemePair

// RunnerPort drives the batch classification loop
type RunnerPort interface {
	// Run classifies unclassified comments in ascending-id batches of
	// batchSize until an empty batch, then returns. A failing batch aborts
	// only its own commit; batches committed before it stand
	Run(ctx context.Context, batchSize int) (Report, error)
}

// WriterPort persists classified records idempotently per comment id
type WriterPort interface {
	WriteBatch(ctx context.Context, xs []ClassifiedRecord) (int, error)
}

// StorageRepo is the storage repository interface
type StorageRepo interface {
	// InsertClassified inserts records, skipping comment ids already present
	InsertClassified(ctx context.Context, xs []ClassifiedRecord) (int, error)
}

// Ports are dependencies injected into the classify module
type Ports struct {
	Comments CommentsReader // required
}
