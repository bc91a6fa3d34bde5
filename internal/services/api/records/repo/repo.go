// Package repo provides postgres access for records
package repo

import (
	"context"
	"encoding/json"
	"time"

	"moodwire/internal/modkit/repokit"
)

// Repo defines the repository contract for records
type Repo interface {
	ClassifiedPage(ctx context.Context, afterID int64, limit int) ([]RowClassified, error)
}

// RowClassified is one classified comment row with both verdicts
type RowClassified struct {
	CommentID    int64
	ArticleID    int64
	CommentedAt  time.Time
	Lang         string
	Body         string
	NormalLabel  string
	NormalScore  float64
	NormalScores map[string]float64
	EkmanLabel   string
	EkmanScore   float64
	EkmanScores  map[string]float64
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) ClassifiedPage(ctx context.Context, afterID int64, limit int) ([]RowClassified, error) {
	const sql = `
		SELECT comment_id, article_id, commented_at, lang, body,
		       normal_label, normal_score, normal_scores,
		       ekman_label, ekman_score, ekman_scores
		FROM classified_comments
		WHERE comment_id > $1
		ORDER BY comment_id
		LIMIT $2`
	rows, err := r.q.Query(ctx, sql, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RowClassified
	for rows.Next() {
		var rr RowClassified
		var normRaw, ekmanRaw []byte
		if err := rows.Scan(
			&rr.CommentID,
			&rr.ArticleID,
			&rr.CommentedAt,
			&rr.Lang,
			&rr.Body,
			&rr.NormalLabel,
			&rr.NormalScore,
			&normRaw,
			&rr.EkmanLabel,
			&rr.EkmanScore,
			&ekmanRaw,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(normRaw, &rr.NormalScores); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(ekmanRaw, &rr.EkmanScores); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
