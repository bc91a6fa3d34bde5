// Package domain defines the core types and interfaces for the classify service
package domain

import "time"

// ClassifiedRecord is one comment with both scheme verdicts attached,
// ready to persist
type ClassifiedRecord struct {
	CommentID   int64
	ArticleID   int64
	CommentedAt time.Time
	Body        string
	Lang        string

	NormalScores map[string]float64
	NormalLabel  string
	NormalScore  float64

	EkmanScores map[string]float64
	EkmanLabel  string
	EkmanScore  float64
}

// Report summarizes one Run invocation
type Report struct {
	Batches      int // committed batches
	Scanned      int // raw comments fetched
	SkippedEmpty int // empty body
	SkippedLang  int // no classifier pair for the language
	Written      int // rows actually inserted (after conflict skips)
}
