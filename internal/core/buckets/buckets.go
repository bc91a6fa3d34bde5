// Package buckets implements the pure time-bucketing and tabulation math
// behind chart aggregation. Everything here is deterministic and free of
// I/O so the aggregation service can be tested without a database.
//
// Period keys are strings: "YYYY-MM-DD" for day and week granularity
// (a week is keyed by the Monday that starts it) and "YYYY-MM" for months.
// All bucketing is done in UTC
package buckets

import (
	"time"
)

// Granularity selects the width of a period bucket
type Granularity string

// Supported granularities
const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// Valid reports whether g names a known granularity
func (g Granularity) Valid() bool { return g == Day || g == Week || g == Month }

// PeriodFloor truncates ts down to the start of its period in UTC.
// Weeks start on Monday per ISO-8601
func PeriodFloor(ts time.Time, g Granularity) time.Time {
	ts = ts.UTC()
	switch g {
	case Week:
		d := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		// Monday=0 .. Sunday=6
		back := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -back)
	case Month:
		return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// NextPeriod returns the start of the period after p. p must already be
// period-floored for the result to be a period boundary
func NextPeriod(p time.Time, g Granularity) time.Time {
	switch g {
	case Week:
		return p.AddDate(0, 0, 7)
	case Month:
		return p.AddDate(0, 1, 0)
	default:
		return p.AddDate(0, 0, 1)
	}
}

// Key renders the period containing ts as its string key
func Key(ts time.Time, g Granularity) string {
	p := PeriodFloor(ts, g)
	if g == Month {
		return p.Format("2006-01")
	}
	return p.Format("2006-01-02")
}

// Periods enumerates every period key in [floor(start), floor(end)] inclusive,
// in ascending order. Returns nil when start is after end
func Periods(start, end time.Time, g Granularity) []string {
	lo := PeriodFloor(start, g)
	hi := PeriodFloor(end, g)
	if lo.After(hi) {
		return nil
	}
	var out []string
	for p := lo; !p.After(hi); p = NextPeriod(p, g) {
		out = append(out, Key(p, g))
	}
	return out
}

// Row is one classified observation feeding a count table
type Row struct {
	At        time.Time
	Label     string
	ArticleID string
}

// Table is a per-period emotion count table with per-period totals and
// unique-article counts. Keys of Counts/Totals/Articles are period keys
type Table struct {
	Counts   map[string]map[string]int64 // period -> label -> n
	Totals   map[string]int64            // period -> total comments
	Articles map[string]int64            // period -> distinct articles
}

// NewTable returns an empty Table
func NewTable() Table {
	return Table{
		Counts:   map[string]map[string]int64{},
		Totals:   map[string]int64{},
		Articles: map[string]int64{},
	}
}

// CountTable buckets rows by period and tallies label counts, totals, and
// unique articles per period
func CountTable(rows []Row, g Granularity) Table {
	t := NewTable()
	seen := map[string]map[string]struct{}{} // period -> article set
	for _, r := range rows {
		k := Key(r.At, g)
		cell := t.Counts[k]
		if cell == nil {
			cell = map[string]int64{}
			t.Counts[k] = cell
		}
		cell[r.Label]++
		t.Totals[k]++
		if r.ArticleID != "" {
			arts := seen[k]
			if arts == nil {
				arts = map[string]struct{}{}
				seen[k] = arts
			}
			arts[r.ArticleID] = struct{}{}
		}
	}
	for k, arts := range seen {
		t.Articles[k] = int64(len(arts))
	}
	return t
}

// AddCount adds n observations of label in period k. Used when counts come
// pre-tallied from SQL instead of row by row
func (t Table) AddCount(k, label string, n int64) {
	cell := t.Counts[k]
	if cell == nil {
		cell = map[string]int64{}
		t.Counts[k] = cell
	}
	cell[label] += n
	t.Totals[k] += n
}

// Combine merges count tables cell-wise. Missing cells count as zero, so
// combining with an empty table returns the other table's counts unchanged.
// Article counts are summed; they are only exact when the inputs partition
// the articles (which per-language tables do)
func Combine(tables ...Table) Table {
	out := NewTable()
	for _, t := range tables {
		for k, cell := range t.Counts {
			for label, n := range cell {
				out.AddCount(k, label, n)
			}
		}
		for k, n := range t.Articles {
			out.Articles[k] += n
		}
	}
	return out
}

// Normalize converts a period's label counts into shares of the period
// total. Periods with a zero total yield no entry rather than NaNs
func Normalize(t Table) map[string]map[string]float64 {
	out := map[string]map[string]float64{}
	for k, cell := range t.Counts {
		total := t.Totals[k]
		if total <= 0 {
			continue
		}
		pct := make(map[string]float64, len(cell))
		for label, n := range cell {
			pct[label] = float64(n) / float64(total)
		}
		out[k] = pct
	}
	return out
}

// GrandShares returns each label's share of all observations across every
// period, or nil when the table is empty
func GrandShares(t Table) map[string]float64 {
	var total int64
	sums := map[string]int64{}
	for _, cell := range t.Counts {
		for label, n := range cell {
			sums[label] += n
			total += n
		}
	}
	if total == 0 {
		return nil
	}
	out := make(map[string]float64, len(sums))
	for label, n := range sums {
		out[label] = float64(n) / float64(total)
	}
	return out
}
