package module

import (
	"time"

	"moodwire/internal/platform/config"
)

// Options holds configuration settings for the classify module
type Options struct {
	BatchSize    int
	Workers      int
	InsertChunk  int
	StartAfter   int64
	InferBaseURL string
	InferTimeout time.Duration
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_CLASSIFY_")
	inf := cfg.Prefix("CORE_INFER_")
	return Options{
		BatchSize:    cf.MayInt("BATCH_SIZE", 500),
		Workers:      cf.MayInt("WORKERS", 2),
		InsertChunk:  cf.MayInt("INSERT_CHUNK", 500),
		StartAfter:   int64(cf.MayInt("START_AFTER", 0)),
		InferBaseURL: inf.MayString("BASE_URL", "http://localhost:8500"),
		InferTimeout: inf.MayDuration("TIMEOUT", 30*time.Second),
	}
}
