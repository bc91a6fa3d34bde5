// Package feed reads raw comment and article feed units.
//
// A unit is one tab-separated .txt file, optionally gzip-compressed
// (.txt.gz). Units whose filename contains "meta" carry article metadata;
// every other unit carries comments. Rows that cannot be parsed are
// skipped, a bad line in a multi-gigabyte dump must never sink the unit
package feed

import "time"

// Kind says what a unit's rows describe
type Kind string

// Unit kinds
const (
	KindComments Kind = "comments"
	KindArticles Kind = "articles"
)

// CommentRow is one parsed comment feed line:
// region, article_id, nickname, ip_hash, timestamp, body
type CommentRow struct {
	Region      string
	ArticleID   int64
	Nickname    string
	IPHash      string
	CommentedAt time.Time
	Body        string
}

// ArticleRow is one parsed article metadata line:
// region, article_id, headline, timestamp, url
type ArticleRow struct {
	Region      string
	ArticleID   int64
	Headline    string
	PublishedAt time.Time
	URL         string
}
