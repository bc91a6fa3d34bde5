// Package service implements the classify service
package service

import (
	"context"
	"strings"
	"sync"

	"moodwire/internal/core/emotion"
	"moodwire/internal/platform/logger"
	"moodwire/internal/services/classify/domain"
	commentsdom "moodwire/internal/services/comments/domain"
)

// Config for the classify runner
type Config struct {
	// BatchSize is the default batch size when Run gets <=0
	BatchSize int
	// Workers bounds concurrent classifier calls within a batch; <=0 -> 1
	Workers int
	// StartAfter seeds the scan cursor. Purely a hint to skip already-scanned
	// id ranges; the unclassified predicate re-filters regardless
	StartAfter int64
}

// Runner implements domain.RunnerPort
type Runner struct {
	Comments commentsdom.ReaderPort
	Writer   domain.WriterPort
	Caps     domain.Capabilities
	Cfg      Config
}

// NewRunner constructs the classify runner
func NewRunner(comments commentsdom.ReaderPort, writer domain.WriterPort, caps domain.Capabilities, cfg Config) *Runner {
	if comments == nil {
		panic("classify.Runner requires a comments reader")
	}
	if writer == nil {
		panic("classify.Runner requires a writer")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Runner{Comments: comments, Writer: writer, Caps: caps, Cfg: cfg}
}

// Run implements domain.RunnerPort. The cursor lives in memory for the
// duration of the call; re-running after a failure is safe because the
// batch query re-filters on the classified predicate
func (s *Runner) Run(ctx context.Context, batchSize int) (domain.Report, error) {
	if batchSize <= 0 {
		batchSize = s.Cfg.BatchSize
	}
	log := logger.C(ctx)

	var rep domain.Report
	after := s.Cfg.StartAfter
	for {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rows, err := s.Comments.NextUnclassified(ctx, commentsdom.BatchInput{AfterID: after, Limit: batchSize})
		if err != nil {
			return rep, err
		}
		if len(rows) == 0 {
			log.Info().
				Int("batches", rep.Batches).
				Int("scanned", rep.Scanned).
				Int("written", rep.Written).
				Int("skipped_empty", rep.SkippedEmpty).
				Int("skipped_lang", rep.SkippedLang).
				Msg("classify: drained")
			return rep, nil
		}
		after = rows[len(rows)-1].ID
		rep.Scanned += len(rows)

		staged, skippedEmpty, skippedLang, err := s.classifyBatch(ctx, rows)
		rep.SkippedEmpty += skippedEmpty
		rep.SkippedLang += skippedLang
		if err != nil {
			return rep, err
		}

		if len(staged) > 0 {
			n, err := s.Writer.WriteBatch(ctx, staged)
			if err != nil {
				return rep, err
			}
			rep.Written += n
			rep.Batches++
			log.Debug().
				Int64("cursor", after).
				Int("staged", len(staged)).
				Int("written", n).
				Msg("classify: batch committed")
		}
	}
}

// classifyBatch scores one batch, fanning classifier calls across workers.
// The first classifier error aborts the batch
func (s *Runner) classifyBatch(ctx context.Context, rows []commentsdom.RawComment) (
	staged []domain.ClassifiedRecord, skippedEmpty, skippedLang int, err error,
) {
	out := make([]*domain.ClassifiedRecord, len(rows))

	var mu sync.Mutex
	var firstErr error
	fail := func(e error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = e
		}
		mu.Unlock()
	}

	sem := make(chan struct{}, s.Cfg.Workers)
	var wg sync.WaitGroup
	for i := range rows {
		c := rows[i]
		if strings.TrimSpace(c.Body) == "" {
			skippedEmpty++
			continue
		}
		pair, ok := s.Caps[c.Lang]
		if !ok {
			skippedLang++
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			rec, e := s.classifyOne(ctx, pair, c)
			if e != nil {
				fail(e)
				return
			}
			out[i] = rec
		}(i)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, skippedEmpty, skippedLang, firstErr
	}

	staged = make([]domain.ClassifiedRecord, 0, len(rows))
	for _, r := range out {
		if r != nil {
			staged = append(staged, *r)
		}
	}
	return staged, skippedEmpty, skippedLang, nil
}

func (s *Runner) classifyOne(ctx context.Context, pair domain.SchemePair, c commentsdom.RawComment) (*domain.ClassifiedRecord, error) {
	rec := &domain.ClassifiedRecord{
		CommentID:   c.ID,
		ArticleID:   c.ArticleID,
		CommentedAt: c.CommentedAt,
		Body:        c.Body,
		Lang:        c.Lang,
	}

	normal, err := pair.Normal.Classify(ctx, c.Body)
	if err != nil {
		return nil, err
	}
	rec.NormalScores = emotion.Distribution(normal).Round()
	rec.NormalLabel, rec.NormalScore, _ = emotion.ArgMax(emotion.SchemeNormal, rec.NormalScores)

	ekman, err := pair.Ekman.Classify(ctx, c.Body)
	if err != nil {
		return nil, err
	}
	rec.EkmanScores = emotion.Distribution(ekman).Round()
	rec.EkmanLabel, rec.EkmanScore, _ = emotion.ArgMax(emotion.SchemeEkman, rec.EkmanScores)

	return rec, nil
}
