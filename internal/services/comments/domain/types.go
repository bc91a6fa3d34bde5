// Package domain defines core types and interfaces for the comments read surface
package domain

import "time"

// RawComment is one ingested comment as stored
type RawComment struct {
	ID          int64
	Region      string
	ArticleID   int64
	Nickname    string
	IPHash      string
	CommentedAt time.Time
	Body        string
	Lang        string
}

// PageInput is a plain offset/limit page request
type PageInput struct {
	Offset int
	Limit  int // hard-capped in service
}

// BatchInput selects the next ascending-id slice of unclassified comments.
// AfterID is a scan-start hint, never a correctness gate: the classified
// predicate in the query is what makes the batch resumable
type BatchInput struct {
	AfterID int64
	Limit   int
}
