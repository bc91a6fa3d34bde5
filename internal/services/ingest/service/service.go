// Package service provides the feed ingestion implementation
package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"moodwire/internal/adapters/feed"
	"moodwire/internal/core/langid"
	"moodwire/internal/core/normalize"
	"moodwire/internal/modkit/repokit"
	"moodwire/internal/platform/logger"
	"moodwire/internal/platform/store"
	"moodwire/internal/services/ingest/domain"
)

// Config holds configuration options for the ingest service
type Config struct {
	// Workers is the number of units processed in parallel; <=0 -> 1
	Workers int
	// InsertChunk is the per-TX insert chunk size; <=0 -> 500
	InsertChunk int
	// EmbedHeadlines enables headline embedding for lv/ru article units
	EmbedHeadlines bool
}

// Service implements domain.RunnerPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Detect langid.Detector
	Embed  domain.Embedder // optional; only consulted when Cfg.EmbedHeadlines
	Norm   *normalize.Normalizer
	Cfg    Config
}

// New constructs the ingest service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.StorageRepo],
	det langid.Detector,
	emb domain.Embedder,
	cfg Config,
) *Service {
	if db == nil {
		panic("ingest.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ingest.Service requires a non nil Repo binder")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.InsertChunk <= 0 {
		cfg.InsertChunk = 500
	}
	return &Service{DB: db, Binder: binder, Detect: det, Embed: emb, Norm: normalize.New(), Cfg: cfg}
}

// ProcessDir implements domain.RunnerPort. Units already logged Success are
// skipped before any record table is touched; a failed unit is logged and
// the run moves on
func (s *Service) ProcessDir(ctx context.Context, dir string) (domain.RunReport, error) {
	ctx = store.WithRunID(ctx, uuid.NewString())
	log := logger.C(ctx)

	units, err := feed.ListUnits(dir)
	if err != nil {
		return domain.RunReport{}, err
	}

	// Consult the ledger once, up front
	var doneComments, doneArticles map[string]struct{}
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		var err error
		if doneComments, err = r.SuccessUnits(ctx, string(feed.KindComments)); err != nil {
			return err
		}
		doneArticles, err = r.SuccessUnits(ctx, string(feed.KindArticles))
		return err
	})
	if err != nil {
		return domain.RunReport{}, err
	}

	rep := domain.RunReport{Units: len(units)}
	var pending []string
	for _, u := range units {
		done := doneComments
		if feed.KindOf(u) == feed.KindArticles {
			done = doneArticles
		}
		if _, ok := done[filepath.Base(u)]; ok {
			rep.AlreadyIn++
			continue
		}
		pending = append(pending, u)
	}
	log.Info().
		Str("dir", dir).
		Int("units", rep.Units).
		Int("pending", len(pending)).
		Int("already_in", rep.AlreadyIn).
		Msg("ingest: run start")

	// Workers claim units off a shared channel. Per-unit transactions mean
	// ordering across workers does not matter for correctness
	var succeeded, failed int64
	queue := make(chan string)
	var wg sync.WaitGroup
	for range s.Cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range queue {
				res, err := s.ProcessUnit(ctx, unit)
				if err != nil || res.Status != domain.StatusSuccess {
					atomic.AddInt64(&failed, 1)
					log.Error().Err(err).Str("unit", res.Unit).Str("note", res.Note).Msg("ingest: unit failed")
					continue
				}
				atomic.AddInt64(&succeeded, 1)
				log.Info().
					Str("unit", res.Unit).
					Str("kind", res.Kind).
					Int("rows", res.Rows).
					Int("inserted", res.Inserted).
					Int("skipped", res.Skipped).
					Msg("ingest: unit done")
			}
		}()
	}

feedLoop:
	for _, u := range pending {
		select {
		case <-ctx.Done():
			break feedLoop
		case queue <- u:
		}
	}
	close(queue)
	wg.Wait()

	rep.Processed = int(succeeded + failed)
	rep.Succeeded = int(succeeded)
	rep.Failed = int(failed)
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	return rep, nil
}

// ProcessUnit implements domain.RunnerPort. The unit's rows and its ledger
// entry commit atomically; any failure rolls the whole unit back and logs
// Failed so the unit stays retryable
func (s *Service) ProcessUnit(ctx context.Context, path string) (domain.UnitResult, error) {
	res := domain.UnitResult{
		Unit: filepath.Base(path),
		Kind: string(feed.KindOf(path)),
	}

	var err error
	if feed.KindOf(path) == feed.KindArticles {
		err = s.processArticles(ctx, path, &res)
	} else {
		err = s.processComments(ctx, path, &res)
	}
	if err != nil {
		res.Status = domain.StatusFailed
		res.Note = err.Error()
		// Ledger write happens outside the rolled-back unit transaction
		if lerr := s.DB.Tx(ctx, func(q repokit.Queryer) error {
			return s.Binder.Bind(q).LogImport(ctx, res.Kind, res.Unit, domain.StatusFailed, res.Note)
		}); lerr != nil {
			return res, errors.Join(err, lerr)
		}
		return res, err
	}
	res.Status = domain.StatusSuccess
	return res, nil
}

func (s *Service) processComments(ctx context.Context, path string, res *domain.UnitResult) error {
	rd, err := feed.Open(path)
	if err != nil {
		return err
	}
	defer rd.Close() // nolint:errcheck

	var batch []domain.Comment
	for {
		row, err := rd.NextComment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		batch = append(batch, domain.Comment{
			Region:      row.Region,
			ArticleID:   row.ArticleID,
			Nickname:    row.Nickname,
			IPHash:      row.IPHash,
			CommentedAt: row.CommentedAt,
			Body:        row.Body,
			Lang:        string(s.Detect.Detect(s.Norm.Normalize(row.Body))),
		})
	}
	res.Rows, res.Skipped = rd.Stats()

	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		for i := 0; i < len(batch); i += s.Cfg.InsertChunk {
			end := min(i+s.Cfg.InsertChunk, len(batch))
			n, err := r.InsertComments(ctx, batch[i:end])
			res.Inserted += n
			if err != nil {
				return err
			}
		}
		return r.LogImport(ctx, res.Kind, res.Unit, domain.StatusSuccess, "")
	})
}

func (s *Service) processArticles(ctx context.Context, path string, res *domain.UnitResult) error {
	rd, err := feed.Open(path)
	if err != nil {
		return err
	}
	defer rd.Close() // nolint:errcheck

	// Duplicate ids inside a unit keep the first occurrence
	seen := map[int64]struct{}{}
	var batch []domain.Article
	for {
		row, err := rd.NextArticle()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if _, dup := seen[row.ArticleID]; dup {
			res.Skipped++
			continue
		}
		seen[row.ArticleID] = struct{}{}
		headline := s.Norm.Normalize(row.Headline)
		batch = append(batch, domain.Article{
			ArticleID:    row.ArticleID,
			Region:       row.Region,
			Headline:     row.Headline,
			HeadlineLang: string(s.Detect.Detect(headline)),
			PublishedAt:  row.PublishedAt,
			URL:          row.URL,
		})
	}
	rows, skipped := rd.Stats()
	res.Rows = rows
	res.Skipped += skipped

	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)

		ids := make([]int64, 0, len(batch))
		for _, a := range batch {
			ids = append(ids, a.ArticleID)
		}
		known, err := r.ExistingArticleIDs(ctx, ids)
		if err != nil {
			return err
		}

		fresh := batch[:0]
		for _, a := range batch {
			if _, ok := known[a.ArticleID]; ok {
				res.Skipped++
				continue
			}
			if s.Cfg.EmbedHeadlines && s.Embed != nil && (a.HeadlineLang == string(langid.LangLV) || a.HeadlineLang == string(langid.LangRU)) {
				vec, ok, err := s.Embed.Embed(ctx, a.Headline, a.HeadlineLang)
				if err != nil {
					return err
				}
				if ok {
					a.Embedding = vec
				}
			}
			fresh = append(fresh, a)
		}

		for i := 0; i < len(fresh); i += s.Cfg.InsertChunk {
			end := min(i+s.Cfg.InsertChunk, len(fresh))
			n, err := r.InsertArticles(ctx, fresh[i:end])
			res.Inserted += n
			if err != nil {
				return err
			}
		}
		return r.LogImport(ctx, res.Kind, res.Unit, domain.StatusSuccess, "")
	})
}
