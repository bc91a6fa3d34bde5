// Package repo provides the Postgres repository for the comments read surface
package repo

import (
	"context"

	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/comments/domain"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the comments repository
type Storage interface {
	PageRaw(ctx context.Context, offset, limit int) ([]domain.RawComment, error)
	NextUnclassified(ctx context.Context, afterID int64, limit int) ([]domain.RawComment, error)
	CountUnclassified(ctx context.Context) (int64, error)
}

type pg struct{ q repokit.Queryer }

const rawCols = `
	c.id,
	c.region,
	c.article_id,
	c.nickname,
	c.ip_hash,
	c.commented_at,
	c.body,
	c.lang`

func (s *pg) PageRaw(ctx context.Context, offset, limit int) ([]domain.RawComment, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+rawCols+`
		FROM raw_comments c
		ORDER BY c.id
		OFFSET $1
		LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRaw(rows, limit)
}

// NextUnclassified keys on id only; the NOT EXISTS predicate is what makes
// re-running after a failed batch safe
func (s *pg) NextUnclassified(ctx context.Context, afterID int64, limit int) ([]domain.RawComment, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+rawCols+`
		FROM raw_comments c
		WHERE c.id > $1
			AND c.lang IN ('lv', 'ru')
			AND NOT EXISTS (SELECT 1 FROM classified_comments cc WHERE cc.comment_id = c.id)
		ORDER BY c.id
		LIMIT $2
	`, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRaw(rows, limit)
}

func (s *pg) CountUnclassified(ctx context.Context) (int64, error) {
	var n int64
	err := s.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM raw_comments c
		WHERE c.lang IN ('lv', 'ru')
			AND NOT EXISTS (SELECT 1 FROM classified_comments cc WHERE cc.comment_id = c.id)
	`).Scan(&n)
	return n, err
}

func scanRaw(rows repokit.Rows, capHint int) ([]domain.RawComment, error) {
	out := make([]domain.RawComment, 0, capHint)
	for rows.Next() {
		var r domain.RawComment
		if err := rows.Scan(
			&r.ID, &r.Region, &r.ArticleID, &r.Nickname,
			&r.IPHash, &r.CommentedAt, &r.Body, &r.Lang,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
