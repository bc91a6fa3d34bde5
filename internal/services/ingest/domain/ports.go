package domain

import "context"

// RunnerPort is the public port exposed by the module
type RunnerPort interface {
	// ProcessDir ingests every pending unit under dir. A failed unit never
	// aborts the run; only top-level storage errors do
	ProcessDir(ctx context.Context, dir string) (RunReport, error)
	// ProcessUnit ingests a single unit file inside one transaction
	ProcessUnit(ctx context.Context, path string) (UnitResult, error)
}

// StorageRepo is the storage repository interface
type StorageRepo interface {
	// SuccessUnits returns the set of unit names already logged Success for kind
	SuccessUnits(ctx context.Context, kind string) (map[string]struct{}, error)

	// ExistingArticleIDs filters ids down to those already stored
	ExistingArticleIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error)

	// InsertComments appends comment rows
	InsertComments(ctx context.Context, cs []Comment) (int, error)

	// InsertArticles inserts article rows, skipping ids that raced in
	InsertArticles(ctx context.Context, as []Article) (int, error)

	// LogImport appends one ledger entry
	LogImport(ctx context.Context, kind, unit, status, note string) error
}

// Embedder produces headline embeddings; ok=false when lang is unsupported
type Embedder interface {
	Embed(ctx context.Context, text, lang string) ([]float32, bool, error)
}

// KeywordExtractor pulls salient terms from a headline or body. Moodwire
// stores whatever an implementation returns without interpreting it; none
// ships in-tree, implementations plug in the same way an Embedder does
type KeywordExtractor interface {
	Keywords(ctx context.Context, text, lang string) ([]string, error)
}

// Clusterer groups headline embeddings, returning one cluster index per
// input vector. Like KeywordExtractor this is a plug-in seam only
type Clusterer interface {
	Cluster(ctx context.Context, vecs [][]float32, k int) ([]int, error)
}
