// Package repo provides repository implementations for the classify service
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/classify/domain"
)

// binder implements repokit.Binder[domain.StorageRepo]
type binder struct{}

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorageRepo { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

// InsertClassified writes a batch in one multi-row insert; comment ids that
// already have a row are skipped, which is what makes WriteBatch idempotent
func (s *pg) InsertClassified(ctx context.Context, xs []domain.ClassifiedRecord) (int, error) {
	if len(xs) == 0 {
		return 0, nil
	}
	const cols = 11
	var sb strings.Builder
	sb.WriteString(`INSERT INTO classified_comments
		(comment_id, article_id, commented_at, body, lang,
		 normal_scores, normal_label, normal_score,
		 ekman_scores, ekman_label, ekman_score)
		VALUES `)
	args := make([]any, 0, len(xs)*cols)
	for i, r := range xs {
		normScores, err := json.Marshal(r.NormalScores)
		if err != nil {
			return 0, fmt.Errorf("marshal normal scores for comment %d: %w", r.CommentID, err)
		}
		ekmanScores, err := json.Marshal(r.EkmanScores)
		if err != nil {
			return 0, fmt.Errorf("marshal ekman scores for comment %d: %w", r.CommentID, err)
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*cols + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d::jsonb,$%d,$%d,$%d::jsonb,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10)
		args = append(args,
			r.CommentID, r.ArticleID, r.CommentedAt, r.Body, r.Lang,
			normScores, r.NormalLabel, r.NormalScore,
			ekmanScores, r.EkmanLabel, r.EkmanScore,
		)
	}
	sb.WriteString(` ON CONFLICT (comment_id) DO NOTHING`)
	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
