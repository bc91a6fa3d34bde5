package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"moodwire/internal/services/classify/domain"
	commentsdom "moodwire/internal/services/comments/domain"
)

// fakeReader serves batches from a fixed comment set, honoring the
// classified set the fake writer maintains
type fakeReader struct {
	comments   []commentsdom.RawComment
	classified map[int64]bool
}

func (f *fakeReader) NextUnclassified(_ context.Context, in commentsdom.BatchInput) ([]commentsdom.RawComment, error) {
	var out []commentsdom.RawComment
	for _, c := range f.comments {
		if c.ID <= in.AfterID || f.classified[c.ID] {
			continue
		}
		if c.Lang != "lv" && c.Lang != "ru" {
			continue
		}
		out = append(out, c)
		if len(out) == in.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeReader) PageRaw(context.Context, commentsdom.PageInput) ([]commentsdom.RawComment, error) {
	return nil, nil
}

func (f *fakeReader) CountUnclassified(context.Context) (int64, error) { return 0, nil }

// fakeWriter marks records classified and counts commits
type fakeWriter struct {
	reader  *fakeReader
	commits int
	records []domain.ClassifiedRecord
	err     error
}

func (f *fakeWriter) WriteBatch(_ context.Context, xs []domain.ClassifiedRecord) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.commits++
	n := 0
	for _, r := range xs {
		if f.reader.classified[r.CommentID] {
			continue // idempotent per comment id
		}
		f.reader.classified[r.CommentID] = true
		f.records = append(f.records, r)
		n++
	}
	return n, nil
}

// uniformCaps scores everything with fixed distributions
func uniformCaps() domain.Capabilities {
	normal := domain.ClassifierFunc(func(context.Context, string) (map[string]float64, error) {
		return map[string]float64{"positive": 0.111111119, "neutral": 0.55, "negative": 0.338888881}, nil
	})
	ekman := domain.ClassifierFunc(func(context.Context, string) (map[string]float64, error) {
		return map[string]float64{"anger": 0.6, "joy": 0.1, "neutral": 0.3}, nil
	})
	pair := domain.SchemePair{Normal: normal, Ekman: ekman}
	return domain.Capabilities{"lv": pair, "ru": pair}
}

func raw(id int64, lang, body string) commentsdom.RawComment {
	return commentsdom.RawComment{
		ID: id, ArticleID: id * 10, Lang: lang, Body: body,
		CommentedAt: time.Date(2021, 3, 17, 12, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Minute),
	}
}

func TestRun_ThreeCommentsTwoBatches(t *testing.T) {
	fr := &fakeReader{
		comments: []commentsdom.RawComment{
			raw(1, "lv", "pirmais komentārs"),
			raw(2, "ru", "второй комментарий"),
			raw(3, "lv", "trešais komentārs"),
		},
		classified: map[int64]bool{},
	}
	fw := &fakeWriter{reader: fr}
	r := NewRunner(fr, fw, uniformCaps(), Config{})

	rep, err := r.Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fw.commits != 2 {
		t.Fatalf("commits = %d, want 2", fw.commits)
	}
	if rep.Written != 3 || rep.Batches != 2 || rep.Scanned != 3 {
		t.Fatalf("report = %+v", rep)
	}

	langs := map[string]int{}
	for _, rec := range fw.records {
		langs[rec.Lang]++
	}
	if langs["lv"] != 2 || langs["ru"] != 1 {
		t.Fatalf("langs = %v", langs)
	}
}

func TestRun_ScoresRoundedAndArgMaxed(t *testing.T) {
	fr := &fakeReader{
		comments:   []commentsdom.RawComment{raw(1, "lv", "teksts")},
		classified: map[int64]bool{},
	}
	fw := &fakeWriter{reader: fr}
	r := NewRunner(fr, fw, uniformCaps(), Config{})

	if _, err := r.Run(context.Background(), 10); err != nil {
		t.Fatalf("Run: %v", err)
	}
	rec := fw.records[0]
	if rec.NormalScores["positive"] != 0.11111 {
		t.Fatalf("normal positive = %v, want rounded 0.11111", rec.NormalScores["positive"])
	}
	if rec.NormalLabel != "neutral" || rec.NormalScore != 0.55 {
		t.Fatalf("normal verdict = %q %v", rec.NormalLabel, rec.NormalScore)
	}
	if rec.EkmanLabel != "anger" || rec.EkmanScore != 0.6 {
		t.Fatalf("ekman verdict = %q %v", rec.EkmanLabel, rec.EkmanScore)
	}
}

func TestRun_SkipsEmptyBody(t *testing.T) {
	fr := &fakeReader{
		comments: []commentsdom.RawComment{
			raw(1, "lv", "   "),
			raw(2, "lv", "īsts teksts"),
		},
		classified: map[int64]bool{},
	}
	fw := &fakeWriter{reader: fr}
	r := NewRunner(fr, fw, uniformCaps(), Config{})

	rep, err := r.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.SkippedEmpty != 1 || rep.Written != 1 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestRun_SkipsUncoveredLanguage(t *testing.T) {
	fr := &fakeReader{
		comments:   []commentsdom.RawComment{raw(1, "lv", "teksts")},
		classified: map[int64]bool{},
	}
	fw := &fakeWriter{reader: fr}
	// capability map with ru only: the lv comment has no classifier pair
	caps := domain.Capabilities{"ru": uniformCaps()["ru"]}
	r := NewRunner(fr, fw, caps, Config{})

	rep, err := r.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.SkippedLang != 1 || rep.Written != 0 || fw.commits != 0 {
		t.Fatalf("report = %+v commits = %d", rep, fw.commits)
	}
}

func TestRun_BatchFailureLeavesEarlierCommits(t *testing.T) {
	fr := &fakeReader{
		comments: []commentsdom.RawComment{
			raw(1, "lv", "pirmais"),
			raw(2, "lv", "otrais"),
			raw(3, "lv", "trešais"),
		},
		classified: map[int64]bool{},
	}
	fw := &fakeWriter{reader: fr}
	r := NewRunner(fr, fw, uniformCaps(), Config{})

	// First run commits batch one, then the writer starts failing
	rep, err := r.Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if rep.Written != 3 {
		t.Fatalf("first run report = %+v", rep)
	}

	// Re-run with a failing writer: predicate finds nothing left, so the
	// failing writer is never reached and earlier commits stand
	fw.err = errors.New("db down")
	rep, err = r.Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("re-run: %v", err)
	}
	if rep.Written != 0 || len(fr.classified) != 3 {
		t.Fatalf("re-run report = %+v classified = %v", rep, fr.classified)
	}
}

func TestRun_ClassifierErrorAbortsBatch(t *testing.T) {
	fr := &fakeReader{
		comments:   []commentsdom.RawComment{raw(1, "lv", "teksts")},
		classified: map[int64]bool{},
	}
	fw := &fakeWriter{reader: fr}
	boom := errors.New("model offline")
	caps := domain.Capabilities{"lv": {
		Normal: domain.ClassifierFunc(func(context.Context, string) (map[string]float64, error) { return nil, boom }),
		Ekman:  domain.ClassifierFunc(func(context.Context, string) (map[string]float64, error) { return nil, boom }),
	}}
	r := NewRunner(fr, fw, caps, Config{})

	if _, err := r.Run(context.Background(), 10); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want model offline", err)
	}
	if fw.commits != 0 {
		t.Fatalf("no batch should have committed")
	}
}
