// Package repo provides repository implementations for the aggregate service
package repo

import (
	"context"
	"time"

	"moodwire/internal/core/emotion"
	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/aggregate/domain"
)

// binder implements repokit.Binder[domain.StorageRepo]
type binder struct{}

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.StorageRepo { return &pg{q: q} }

type pg struct{ q repokit.Queryer }

// labelCol maps a validated scheme to its label column. Callers validate the
// scheme first; anything else panics rather than interpolating user input
func labelCol(scheme string) string {
	switch emotion.Scheme(scheme) {
	case emotion.SchemeNormal:
		return "normal_label"
	case emotion.SchemeEkman:
		return "ekman_label"
	}
	panic("aggregate repo: unknown scheme " + scheme)
}

func scoreCol(scheme string) string {
	switch emotion.Scheme(scheme) {
	case emotion.SchemeNormal:
		return "normal_score"
	case emotion.SchemeEkman:
		return "ekman_score"
	}
	panic("aggregate repo: unknown scheme " + scheme)
}

func (s *pg) LabelRows(ctx context.Context, scheme, lang string, start, end time.Time) ([]domain.LabelRow, error) {
	rows, err := s.q.Query(ctx, `
		SELECT commented_at, `+labelCol(scheme)+`, article_id
		FROM classified_comments
		WHERE lang = $1 AND commented_at >= $2 AND commented_at < $3
	`, lang, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LabelRow
	for rows.Next() {
		var r domain.LabelRow
		if err := rows.Scan(&r.At, &r.Label, &r.ArticleID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *pg) MaxClassifiedAt(ctx context.Context) (time.Time, bool, error) {
	var at *time.Time
	if err := s.q.QueryRow(ctx, `SELECT MAX(commented_at) FROM classified_comments`).Scan(&at); err != nil {
		return time.Time{}, false, err
	}
	if at == nil {
		return time.Time{}, false, nil
	}
	return at.UTC(), true, nil
}

func (s *pg) DoneDays(ctx context.Context, scheme string) (map[string]struct{}, error) {
	rows, err := s.q.Query(ctx, `
		SELECT day::text FROM agg_days_done WHERE scheme = $1
	`, scheme)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out[d] = struct{}{}
	}
	return out, rows.Err()
}

func (s *pg) DayCounts(ctx context.Context, scheme string, day time.Time) ([]domain.DayCount, error) {
	rows, err := s.q.Query(ctx, `
		SELECT lang, `+labelCol(scheme)+`, COUNT(*)
		FROM classified_comments
		WHERE commented_at >= $1 AND commented_at < $1 + interval '1 day'
		GROUP BY lang, `+labelCol(scheme)+`
	`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DayCount
	for rows.Next() {
		c := domain.DayCount{Scheme: scheme}
		if err := rows.Scan(&c.Lang, &c.Emotion, &c.N); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReplaceDayCache runs inside the per-day transaction the service opens;
// delete-then-insert keeps recomputation idempotent
func (s *pg) ReplaceDayCache(ctx context.Context, scheme string, day time.Time, counts []domain.DayCount) error {
	if _, err := s.q.Exec(ctx, `
		DELETE FROM agg_emotion_days WHERE day = $1 AND scheme = $2
	`, day, scheme); err != nil {
		return err
	}
	for _, c := range counts {
		if _, err := s.q.Exec(ctx, `
			INSERT INTO agg_emotion_days (day, lang, scheme, emotion, n)
			VALUES ($1, $2, $3, $4, $5)
		`, day, c.Lang, scheme, c.Emotion, c.N); err != nil {
			return err
		}
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO agg_days_done (day, scheme)
		VALUES ($1, $2)
		ON CONFLICT (day, scheme) DO NOTHING
	`, day, scheme)
	return err
}

func (s *pg) DayDetail(ctx context.Context, scheme string, day time.Time, lang string) ([]domain.DetailRow, error) {
	rows, err := s.q.Query(ctx, `
		SELECT
			cc.comment_id,
			cc.commented_at,
			cc.body,
			a.headline,
			cc.`+labelCol(scheme)+`,
			ROUND(cc.`+scoreCol(scheme)+` * 100)::int
		FROM classified_comments cc
		JOIN raw_articles a ON a.article_id = cc.article_id
		WHERE cc.lang = $1
			AND cc.commented_at >= $2
			AND cc.commented_at < $2 + interval '1 day'
		ORDER BY cc.commented_at, cc.comment_id
	`, lang, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DetailRow
	for rows.Next() {
		var r domain.DetailRow
		if err := rows.Scan(&r.CommentID, &r.CommentedAt, &r.Body, &r.Headline, &r.Label, &r.Percent); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
