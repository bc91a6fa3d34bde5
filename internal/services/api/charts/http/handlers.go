// Package http provides http transport for charts
package http

import (
	stdhttp "net/http"
	"time"

	"moodwire/internal/core/buckets"
	"moodwire/internal/modkit/httpkit"
	perr "moodwire/internal/platform/errors"
	"moodwire/internal/services/api/charts/domain"
	aggdom "moodwire/internal/services/aggregate/domain"
)

// Register mounts charts endpoints on the given router
func Register(r httpkit.Router, q aggdom.QueryPort) {
	h := &handlers{query: q}

	// chart series by scheme and window
	httpkit.PostJSON[domain.EmotionsInput](r, "/emotions", h.emotions)

	// single day drill-down
	httpkit.Get(r, "/day", h.day)
}

type handlers struct{ query aggdom.QueryPort }

// swagger:route POST /charts/emotions Charts chartsEmotions
// @Summary Emotion chart series for a month window
// @Tags Charts
// @Accept json
// @Produce json
// @Param payload body domain.EmotionsInput true "Query"
// @Success 200 type domain.EmotionsResponse "ok"
// @Router /charts/emotions [post]
func (h *handlers) emotions(r *stdhttp.Request, in domain.EmotionsInput) (any, error) {
	start, err := time.ParseInLocation("2006-01", in.StartMonth, time.UTC)
	if err != nil {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "start_month %q is not YYYY-MM", in.StartMonth)
	}
	endMonth, err := time.ParseInLocation("2006-01", in.EndMonth, time.UTC)
	if err != nil {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "end_month %q is not YYYY-MM", in.EndMonth)
	}
	// widen to the last day so day and week grouping cover the whole end month
	end := endMonth.AddDate(0, 1, -1)

	data, err := h.query.Aggregate(r.Context(), in.Scheme, start, end, buckets.Granularity(in.GroupBy))
	if err != nil {
		return nil, err
	}
	out := domain.EmotionsResponse{Scheme: in.Scheme, GroupBy: in.GroupBy}
	if data != nil {
		out.Data = toChartData(data)
	}
	return out, nil
}

// swagger:route GET /charts/day Charts chartsDay
// @Summary Classified comments of a single day
// @Tags Charts
// @Produce json
// @Param scheme query string true "Label scheme" example(normal)
// @Param date query string true "Day" example(2025-03-01)
// @Param lang query string true "Language" example(lv)
// @Success 200 {array} domain.DayRow "ok"
// @Router /charts/day [get]
func (h *handlers) day(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	scheme := q.Get("scheme")
	lang := q.Get("lang")
	if scheme == "" || lang == "" {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "scheme and lang query params are required")
	}
	date, err := time.ParseInLocation("2006-01-02", q.Get("date"), time.UTC)
	if err != nil {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "date %q is not YYYY-MM-DD", q.Get("date"))
	}

	rows, err := h.query.PeriodDetail(r.Context(), scheme, date, lang)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DayRow, 0, len(rows))
	for _, d := range rows {
		out = append(out, domain.DayRow{
			CommentID:   d.CommentID,
			CommentedAt: d.CommentedAt.UTC().Format(time.RFC3339),
			Body:        d.Body,
			Headline:    d.Headline,
			Label:       d.Label,
			Percent:     d.Percent,
		})
	}
	return out, nil
}

func toChartData(d *aggdom.ChartData) *domain.ChartData {
	out := &domain.ChartData{
		Periods: d.Periods,
		ByLang:  make(map[string]domain.LangView, len(d.ByLang)),
	}
	for lang, v := range d.ByLang {
		out.ByLang[lang] = toLangView(v)
	}
	out.Combined = toLangView(d.Combined)
	return out
}

func toLangView(v aggdom.LangView) domain.LangView {
	return domain.LangView{
		Counts:   v.Counts,
		Totals:   v.Totals,
		Articles: v.Articles,
		Percent:  v.Percent,
		Grand:    v.Grand,
	}
}
