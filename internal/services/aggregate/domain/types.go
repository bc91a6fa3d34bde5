// Package domain defines the core types and interfaces for the aggregate service
package domain

import "time"

// MinDate is the aggregation floor; nothing older is ever reported
var MinDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Languages with classified content. Aggregation covers exactly these;
// the combined view is their cell-wise sum
var Languages = []string{"lv", "ru"}

// LabelRow is one classified observation as read from storage
type LabelRow struct {
	At        time.Time
	Label     string
	ArticleID int64
}

// LangView is the aggregate view for one language (or the combined view)
type LangView struct {
	Counts   map[string]map[string]int64   // period -> emotion -> n
	Totals   map[string]int64              // period -> total comments
	Articles map[string]int64              // period -> distinct articles
	Percent  map[string]map[string]float64 // period -> emotion -> share of period total
	Grand    map[string]float64            // emotion -> share across the whole window
}

// ChartData is the full answer to one Aggregate call
type ChartData struct {
	Scheme      string
	Granularity string
	Periods     []string // every period key in the window, ascending
	ByLang      map[string]LangView
	Combined    LangView
}

// DetailRow is one classified comment joined to its article headline,
// for the single-day drill-down
type DetailRow struct {
	CommentID   int64
	CommentedAt time.Time
	Body        string
	Headline    string
	Label       string
	Percent     int // dominant score as a rounded percentage
}

// PeriodRange reports what window the API may ask about
type PeriodRange struct {
	Min    time.Time
	Max    time.Time
	Months []string // every month key in [Min, Max]
}

// DayCount is one cached cell of the daily aggregate table
type DayCount struct {
	Lang    string
	Scheme  string
	Emotion string
	N       int64
}

// DailyReport summarizes one RunDaily invocation
type DailyReport struct {
	Days    int // days in range
	Done    int // already cached, skipped
	Written int // days computed this run
}
