// Package domain defines core types and interfaces for feed ingestion
package domain

import "time"

// Ledger statuses recorded in import_log
const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// Comment is one comment record ready for insert, language already detected
type Comment struct {
	Region      string
	ArticleID   int64
	Nickname    string
	IPHash      string
	CommentedAt time.Time
	Body        string
	Lang        string
}

// Article is one article record ready for insert. Embedding is nil when the
// headline language has no embedding model
type Article struct {
	ArticleID    int64
	Region       string
	Headline     string
	HeadlineLang string
	PublishedAt  time.Time
	URL          string
	Embedding    []float32
}

// UnitResult reports one processed unit
type UnitResult struct {
	Unit     string // base filename, the ledger key
	Kind     string // comments | articles
	Rows     int    // parsed rows
	Inserted int
	Skipped  int // malformed lines plus duplicate/known articles
	Status   string
	Note     string
}

// RunReport summarizes one ProcessDir invocation
type RunReport struct {
	Units     int // candidate units found
	Processed int // actually attempted this run
	Succeeded int
	Failed    int
	AlreadyIn int // skipped via the Success ledger
}
