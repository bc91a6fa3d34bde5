// Package service contains records workflows
package service

import (
	"context"
	"time"

	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/api/records/domain"
	"moodwire/internal/services/api/records/repo"
	commentsdom "moodwire/internal/services/comments/domain"
)

const defaultPageLimit = 100

// Service defines the records service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the records service
type Svc struct {
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	comments commentsdom.ReaderPort
}

// New constructs a records service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], comments commentsdom.ReaderPort) *Svc {
	if db == nil {
		panic("records.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("records.Service requires a non nil Repo binder")
	}
	if comments == nil {
		panic("records.Service requires a non nil comments reader")
	}
	return &Svc{binder: binder, db: db, comments: comments}
}

// PageRaw returns one offset page of ingested comments
func (s *Svc) PageRaw(ctx context.Context, in domain.RawPageInput) ([]domain.RawComment, error) {
	if in.Limit <= 0 {
		in.Limit = defaultPageLimit
	}
	rows, err := s.comments.PageRaw(ctx, commentsdom.PageInput{Offset: in.Offset, Limit: in.Limit})
	if err != nil {
		return nil, err
	}
	out := make([]domain.RawComment, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.RawComment{
			ID:          r.ID,
			Region:      r.Region,
			ArticleID:   r.ArticleID,
			Nickname:    r.Nickname,
			IPHash:      r.IPHash,
			CommentedAt: r.CommentedAt.UTC().Format(time.RFC3339),
			Body:        r.Body,
			Lang:        r.Lang,
		})
	}
	return out, nil
}

// PageClassified returns one cursor page of classified comments. The returned
// cursor is the last comment id in the page; an empty page carries the cursor
// the caller sent, so polling loops can stop on items == 0
func (s *Svc) PageClassified(ctx context.Context, in domain.ClassifiedPageInput) (domain.ClassifiedPage, error) {
	if in.Limit <= 0 {
		in.Limit = defaultPageLimit
	}
	var rows []repo.RowClassified
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rows, err = s.binder.Bind(q).ClassifiedPage(ctx, in.Cursor, in.Limit)
		return err
	})
	if err != nil {
		return domain.ClassifiedPage{}, err
	}

	page := domain.ClassifiedPage{
		Items:      make([]domain.ClassifiedComment, 0, len(rows)),
		NextCursor: in.Cursor,
	}
	for _, r := range rows {
		page.Items = append(page.Items, domain.ClassifiedComment{
			CommentID:    r.CommentID,
			ArticleID:    r.ArticleID,
			CommentedAt:  r.CommentedAt.UTC().Format(time.RFC3339),
			Lang:         r.Lang,
			Body:         r.Body,
			NormalLabel:  r.NormalLabel,
			NormalScore:  r.NormalScore,
			NormalScores: r.NormalScores,
			EkmanLabel:   r.EkmanLabel,
			EkmanScore:   r.EkmanScore,
			EkmanScores:  r.EkmanScores,
		})
	}
	if len(rows) > 0 {
		page.NextCursor = rows[len(rows)-1].CommentID
	}
	return page, nil
}
