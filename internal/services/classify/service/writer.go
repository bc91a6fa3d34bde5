package service

import (
	"context"

	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/classify/domain"
	"moodwire/internal/services/classify/repo"
)

// WriterConfig controls batch persistence
type WriterConfig struct {
	// InsertChunk caps rows per insert statement; <=0 -> 500
	InsertChunk int
}

// WriterService implements domain.WriterPort
type WriterService struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Cfg    WriterConfig
}

// NewWriter constructs the classify writer service
func NewWriter(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo], cfg WriterConfig) *WriterService {
	if cfg.InsertChunk <= 0 {
		cfg.InsertChunk = 500
	}
	return &WriterService{DB: db, Binder: binder, Cfg: cfg}
}

// NewPGWriter is the common wiring: writer over the Postgres repo
func NewPGWriter(db repokit.TxRunner, cfg WriterConfig) *WriterService {
	return NewWriter(db, repo.NewPG(), cfg)
}

// WriteBatch implements domain.WriterPort. The whole batch commits in one
// transaction; a failure rolls all of it back
func (s *WriterService) WriteBatch(ctx context.Context, xs []domain.ClassifiedRecord) (int, error) {
	if len(xs) == 0 {
		return 0, nil
	}
	written := 0
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		for i := 0; i < len(xs); i += s.Cfg.InsertChunk {
			end := min(i+s.Cfg.InsertChunk, len(xs))
			n, err := r.InsertClassified(ctx, xs[i:end])
			if err != nil {
				return err
			}
			written += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
