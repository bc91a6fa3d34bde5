package domain

import "context"

// ReaderPort is the read interface over raw comments
type ReaderPort interface {
	// PageRaw returns one offset/limit page ordered by id
	PageRaw(ctx context.Context, in PageInput) ([]RawComment, error)
	// NextUnclassified returns up to Limit supported-language comments with
	// id > AfterID that have no classified row yet, ascending by id
	NextUnclassified(ctx context.Context, in BatchInput) ([]RawComment, error)
	// CountUnclassified reports how many comments still await classification
	CountUnclassified(ctx context.Context) (int64, error)
}
