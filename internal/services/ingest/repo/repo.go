// Package repo provides postgres access for ingestion writes
package repo

import (
	"context"
	"fmt"

	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/ingest/domain"
)

type (
	// PG is a Postgres binder for domain.StorageRepo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

// SuccessUnits loads the dedup ledger for one kind. Only Success rows count;
// Failed attempts stay retryable
func (r *queries) SuccessUnits(ctx context.Context, kind string) (map[string]struct{}, error) {
	rows, err := r.q.Query(ctx, `
		SELECT unit
		FROM import_log
		WHERE kind = $1 AND status = $2
	`, kind, domain.StatusSuccess)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		out[u] = struct{}{}
	}
	return out, rows.Err()
}

func (r *queries) ExistingArticleIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	out := map[int64]struct{}{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT article_id FROM raw_articles WHERE article_id = ANY($1::bigint[])
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

func (r *queries) InsertComments(ctx context.Context, cs []domain.Comment) (int, error) {
	inserted := 0
	for _, c := range cs {
		tag, err := r.q.Exec(ctx, `
			INSERT INTO raw_comments (region, article_id, nickname, ip_hash, commented_at, body, lang)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, c.Region, c.ArticleID, c.Nickname, c.IPHash, c.CommentedAt, c.Body, c.Lang)
		if err != nil {
			return inserted, fmt.Errorf("insert comment article=%d: %w", c.ArticleID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (r *queries) InsertArticles(ctx context.Context, as []domain.Article) (int, error) {
	inserted := 0
	for _, a := range as {
		// embedding may be nil; real[] accepts NULL
		var emb any
		if a.Embedding != nil {
			emb = a.Embedding
		}
		tag, err := r.q.Exec(ctx, `
			INSERT INTO raw_articles (article_id, region, headline, headline_lang, published_at, url, embedding)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (article_id) DO NOTHING
		`, a.ArticleID, a.Region, a.Headline, a.HeadlineLang, a.PublishedAt, a.URL, emb)
		if err != nil {
			return inserted, fmt.Errorf("insert article %d: %w", a.ArticleID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (r *queries) LogImport(ctx context.Context, kind, unit, status, note string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO import_log (kind, unit, status, note, logged_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), now())
	`, kind, unit, status, note)
	return err
}
