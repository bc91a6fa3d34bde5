package buckets

import (
	"math"
	"testing"
	"time"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriodFloorAndKey(t *testing.T) {
	ts := time.Date(2021, 3, 17, 15, 4, 5, 0, time.UTC) // a Wednesday

	if got := Key(ts, Day); got != "2021-03-17" {
		t.Fatalf("day key = %q", got)
	}
	if got := Key(ts, Week); got != "2021-03-15" { // the preceding Monday
		t.Fatalf("week key = %q", got)
	}
	if got := Key(ts, Month); got != "2021-03" {
		t.Fatalf("month key = %q", got)
	}

	// A Monday floors to itself
	mon := d("2021-03-15")
	if got := PeriodFloor(mon, Week); !got.Equal(mon) {
		t.Fatalf("monday week floor = %v", got)
	}
	// A Sunday floors back six days
	if got := Key(d("2021-03-21"), Week); got != "2021-03-15" {
		t.Fatalf("sunday week key = %q", got)
	}
}

func TestNextPeriod(t *testing.T) {
	if got := NextPeriod(d("2021-01-31"), Day); !got.Equal(d("2021-02-01")) {
		t.Fatalf("next day = %v", got)
	}
	if got := NextPeriod(d("2021-03-15"), Week); !got.Equal(d("2021-03-22")) {
		t.Fatalf("next week = %v", got)
	}
	if got := NextPeriod(d("2021-12-01"), Month); !got.Equal(d("2022-01-01")) {
		t.Fatalf("next month = %v", got)
	}
}

func TestPeriods(t *testing.T) {
	got := Periods(d("2021-01-15"), d("2021-03-02"), Month)
	want := []string{"2021-01", "2021-02", "2021-03"}
	if len(got) != len(want) {
		t.Fatalf("periods = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("periods = %v, want %v", got, want)
		}
	}

	if Periods(d("2021-03-02"), d("2021-01-15"), Month) != nil {
		t.Fatalf("reversed range should yield nil")
	}
}

// Month buckets partition the range: every timestamp lands in exactly one bucket
func TestBoundaryDisjointness(t *testing.T) {
	jan := time.Date(2021, 1, 31, 23, 59, 59, 0, time.UTC)
	feb := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)
	if Key(jan, Month) == Key(feb, Month) {
		t.Fatalf("jan/feb boundary should split buckets")
	}
	if Key(jan, Month) != "2021-01" || Key(feb, Month) != "2021-02" {
		t.Fatalf("boundary keys = %q %q", Key(jan, Month), Key(feb, Month))
	}
}

func TestCountTable(t *testing.T) {
	rows := []Row{
		{At: d("2021-01-10"), Label: "positive", ArticleID: "a1"},
		{At: d("2021-01-11"), Label: "negative", ArticleID: "a1"},
		{At: d("2021-01-12"), Label: "negative", ArticleID: "a2"},
		{At: d("2021-02-01"), Label: "neutral", ArticleID: "a3"},
	}
	tab := CountTable(rows, Month)

	if tab.Counts["2021-01"]["negative"] != 2 || tab.Counts["2021-01"]["positive"] != 1 {
		t.Fatalf("jan counts = %v", tab.Counts["2021-01"])
	}
	if tab.Totals["2021-01"] != 3 || tab.Totals["2021-02"] != 1 {
		t.Fatalf("totals = %v", tab.Totals)
	}
	if tab.Articles["2021-01"] != 2 { // a1 deduped
		t.Fatalf("jan articles = %d", tab.Articles["2021-01"])
	}
}

func TestCombine_Additivity(t *testing.T) {
	lv := NewTable()
	lv.AddCount("2021-01", "positive", 2)
	lv.AddCount("2021-01", "negative", 1)
	lv.Articles["2021-01"] = 2

	ru := NewTable()
	ru.AddCount("2021-01", "negative", 4)
	ru.AddCount("2021-02", "neutral", 1)
	ru.Articles["2021-01"] = 1

	both := Combine(lv, ru)
	if both.Counts["2021-01"]["negative"] != 5 {
		t.Fatalf("combined negative = %d", both.Counts["2021-01"]["negative"])
	}
	if both.Counts["2021-01"]["positive"] != 2 {
		t.Fatalf("combined positive = %d", both.Counts["2021-01"]["positive"])
	}
	if both.Totals["2021-01"] != 7 || both.Totals["2021-02"] != 1 {
		t.Fatalf("combined totals = %v", both.Totals)
	}
	if both.Articles["2021-01"] != 3 {
		t.Fatalf("combined articles = %d", both.Articles["2021-01"])
	}
}

// Combining with an empty table must not change the other input
func TestCombine_EmptySafety(t *testing.T) {
	lv := NewTable()
	lv.AddCount("2021-01", "positive", 3)

	both := Combine(lv, NewTable())
	if both.Counts["2021-01"]["positive"] != 3 || both.Totals["2021-01"] != 3 {
		t.Fatalf("combine with empty changed counts: %v", both.Counts)
	}
}

func TestNormalize(t *testing.T) {
	tab := NewTable()
	tab.AddCount("2021-01", "positive", 1)
	tab.AddCount("2021-01", "negative", 3)
	tab.AddCount("2021-02", "neutral", 0) // zero-total period

	pct := Normalize(tab)
	if got := pct["2021-01"]["negative"]; got != 0.75 {
		t.Fatalf("negative share = %v", got)
	}
	sum := 0.0
	for _, v := range pct["2021-01"] {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("shares should sum to 1, got %v", sum)
	}
	if _, ok := pct["2021-02"]; ok {
		t.Fatalf("zero-total period should be absent, got %v", pct["2021-02"])
	}
}

func TestGrandShares(t *testing.T) {
	tab := NewTable()
	tab.AddCount("2021-01", "positive", 1)
	tab.AddCount("2021-02", "positive", 1)
	tab.AddCount("2021-02", "negative", 2)

	gs := GrandShares(tab)
	if gs["positive"] != 0.5 || gs["negative"] != 0.5 {
		t.Fatalf("grand shares = %v", gs)
	}

	if GrandShares(NewTable()) != nil {
		t.Fatalf("empty table should yield nil shares")
	}
}
