// Package domain holds DTOs for the charts http surface
package domain

// EmotionsInput selects a scheme and month window for chart data.
// An unknown scheme is not an error; the response carries null data
type EmotionsInput struct {
	Scheme     string `json:"scheme" validate:"required" example:"normal"`
	StartMonth string `json:"start_month" validate:"required,datetime=2006-01" example:"2025-01"`
	EndMonth   string `json:"end_month" validate:"required,datetime=2006-01" example:"2025-06"`
	GroupBy    string `json:"group_by" validate:"required,oneof=day week month" example:"month"`
}

// LangView is the chart series for one language or the combined view
type LangView struct {
	Counts   map[string]map[string]int64   `json:"counts"`
	Totals   map[string]int64              `json:"totals"`
	Articles map[string]int64              `json:"articles"`
	Percent  map[string]map[string]float64 `json:"percent"`
	Grand    map[string]float64            `json:"grand"`
}

// EmotionsResponse is the chart payload; Data is null for unknown schemes
type EmotionsResponse struct {
	Scheme  string     `json:"scheme" example:"normal"`
	GroupBy string     `json:"group_by" example:"month"`
	Data    *ChartData `json:"data"`
}

// ChartData carries every period key in the window plus per-language and
// combined series
type ChartData struct {
	Periods  []string            `json:"periods"`
	ByLang   map[string]LangView `json:"by_lang"`
	Combined LangView            `json:"combined"`
}

// DayRow is one classified comment of the drill-down day
type DayRow struct {
	CommentID   int64  `json:"comment_id" example:"42"`
	CommentedAt string `json:"commented_at" example:"2025-03-01T10:15:00Z"`
	Body        string `json:"body" example:"labs raksts"`
	Headline    string `json:"headline" example:"Rīgā atklāta jauna skola"`
	Label       string `json:"label" example:"joy"`
	Percent     int    `json:"percent" example:"78"`
}
