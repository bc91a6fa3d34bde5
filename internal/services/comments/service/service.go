// Package service provides the comments read-surface implementation
package service

import (
	"context"

	"moodwire/internal/modkit/repokit"
	"moodwire/internal/services/comments/domain"
	"moodwire/internal/services/comments/repo"
)

// Config for the comments service
type Config struct {
	// HardLimit is the maximum allowed limit per page or batch; defaults to 1000 if <=0
	HardLimit int
}

// Service implements domain.ReaderPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config
}

// New constructs a new comments service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 1000
	}
	return &Service{DB: db, Binder: b, Cfg: cfg}
}

func (s *Service) cap(limit int) int {
	if limit <= 0 || limit > s.Cfg.HardLimit {
		return s.Cfg.HardLimit
	}
	return limit
}

// PageRaw implements domain.ReaderPort
func (s *Service) PageRaw(ctx context.Context, in domain.PageInput) ([]domain.RawComment, error) {
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	var out []domain.RawComment
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).PageRaw(ctx, offset, s.cap(in.Limit))
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NextUnclassified implements domain.ReaderPort
func (s *Service) NextUnclassified(ctx context.Context, in domain.BatchInput) ([]domain.RawComment, error) {
	var out []domain.RawComment
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).NextUnclassified(ctx, in.AfterID, s.cap(in.Limit))
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountUnclassified implements domain.ReaderPort
func (s *Service) CountUnclassified(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		n, err = s.Binder.Bind(q).CountUnclassified(ctx)
		return err
	})
	return n, err
}
