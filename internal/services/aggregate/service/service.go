// Package service implements the aggregate service
package service

import (
	"context"
	"time"

	"moodwire/internal/core/buckets"
	"moodwire/internal/core/emotion"
	"moodwire/internal/modkit/repokit"
	"moodwire/internal/platform/logger"
	"moodwire/internal/services/aggregate/domain"
)

// Config for the aggregate service
type Config struct {
	// MinDate overrides the aggregation floor; zero -> domain.MinDate
	MinDate time.Time
}

// Service implements domain.QueryPort and domain.RunnerPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Cfg    Config
}

// New constructs the aggregate service
func New(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo], cfg Config) *Service {
	if db == nil {
		panic("aggregate.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("aggregate.Service requires a non nil Repo binder")
	}
	if cfg.MinDate.IsZero() {
		cfg.MinDate = domain.MinDate
	}
	return &Service{DB: db, Binder: binder, Cfg: cfg}
}

// clampWindow applies the date floor and collapses reversed ranges to the
// single period containing end
func (s *Service) clampWindow(start, end time.Time, g buckets.Granularity) (time.Time, time.Time) {
	if start.Before(s.Cfg.MinDate) {
		start = s.Cfg.MinDate
	}
	if end.Before(s.Cfg.MinDate) {
		end = s.Cfg.MinDate
	}
	if start.After(end) {
		start = end
	}
	return buckets.PeriodFloor(start, g), buckets.PeriodFloor(end, g)
}

// Aggregate implements domain.QueryPort
func (s *Service) Aggregate(ctx context.Context, scheme string, start, end time.Time, g buckets.Granularity) (*domain.ChartData, error) {
	if !emotion.Scheme(scheme).Valid() || !g.Valid() {
		return nil, nil
	}
	lo, hi := s.clampWindow(start, end, g)
	// end-exclusive upper bound, one period past the floored end
	upper := buckets.NextPeriod(hi, g)

	tables := map[string]buckets.Table{}
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		for _, lang := range domain.Languages {
			rows, err := r.LabelRows(ctx, scheme, lang, lo, upper)
			if err != nil {
				return err
			}
			tables[lang] = countTable(rows, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &domain.ChartData{
		Scheme:      scheme,
		Granularity: string(g),
		Periods:     buckets.Periods(lo, hi, g),
		ByLang:      map[string]domain.LangView{},
	}
	all := make([]buckets.Table, 0, len(domain.Languages))
	for _, lang := range domain.Languages {
		t := tables[lang]
		out.ByLang[lang] = viewOf(t)
		all = append(all, t)
	}
	// Combined percentages come from summed counts, never averaged shares
	out.Combined = viewOf(buckets.Combine(all...))
	return out, nil
}

func countTable(rows []domain.LabelRow, g buckets.Granularity) buckets.Table {
	bs := make([]buckets.Row, 0, len(rows))
	for _, r := range rows {
		bs = append(bs, buckets.Row{At: r.At, Label: r.Label, ArticleID: articleKey(r.ArticleID)})
	}
	return buckets.CountTable(bs, g)
}

func articleKey(id int64) string {
	if id == 0 {
		return ""
	}
	// ids are positive and fit comfortably; a compact decimal key suffices
	buf := [20]byte{}
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = byte('0' + id%10)
		id /= 10
	}
	return string(buf[i:])
}

func viewOf(t buckets.Table) domain.LangView {
	return domain.LangView{
		Counts:   t.Counts,
		Totals:   t.Totals,
		Articles: t.Articles,
		Percent:  buckets.Normalize(t),
		Grand:    buckets.GrandShares(t),
	}
}

// RunDaily implements domain.RunnerPort. Each pending day commits in its own
// transaction; recomputing an already-cached day reproduces identical rows
func (s *Service) RunDaily(ctx context.Context, scheme string, start, end time.Time) (domain.DailyReport, error) {
	var rep domain.DailyReport
	if !emotion.Scheme(scheme).Valid() {
		return rep, nil
	}
	lo, hi := s.clampWindow(start, end, buckets.Day)
	log := logger.C(ctx)

	var done map[string]struct{}
	if err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		done, err = s.Binder.Bind(q).DoneDays(ctx, scheme)
		return err
	}); err != nil {
		return rep, err
	}

	for day := lo; !day.After(hi); day = day.AddDate(0, 0, 1) {
		rep.Days++
		if _, ok := done[day.Format("2006-01-02")]; ok {
			rep.Done++
			continue
		}
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
			r := s.Binder.Bind(q)
			counts, err := r.DayCounts(ctx, scheme, day)
			if err != nil {
				return err
			}
			return r.ReplaceDayCache(ctx, scheme, day, counts)
		})
		if err != nil {
			return rep, err
		}
		rep.Written++
		log.Debug().Str("day", day.Format("2006-01-02")).Str("scheme", scheme).Msg("aggregate: day cached")
	}
	return rep, nil
}

// PeriodDetail implements domain.QueryPort
func (s *Service) PeriodDetail(ctx context.Context, scheme string, date time.Time, lang string) ([]domain.DetailRow, error) {
	if !emotion.Scheme(scheme).Valid() {
		return nil, nil
	}
	day := buckets.PeriodFloor(date, buckets.Day)

	var out []domain.DetailRow
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).DayDetail(ctx, scheme, day, lang)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AllowedPeriodRange implements domain.QueryPort
func (s *Service) AllowedPeriodRange(ctx context.Context) (domain.PeriodRange, error) {
	pr := domain.PeriodRange{Min: s.Cfg.MinDate}
	var maxAt time.Time
	var ok bool
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		maxAt, ok, err = s.Binder.Bind(q).MaxClassifiedAt(ctx)
		return err
	})
	if err != nil {
		return domain.PeriodRange{}, err
	}
	if !ok || maxAt.Before(pr.Min) {
		maxAt = pr.Min
	}
	pr.Max = maxAt
	pr.Months = buckets.Periods(pr.Min, pr.Max, buckets.Month)
	return pr, nil
}
