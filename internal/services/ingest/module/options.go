package module

import (
	"time"

	"moodwire/internal/platform/config"
)

// Options holds configuration options for the ingest service
type Options struct {
	Workers        int
	InsertChunk    int
	EmbedHeadlines bool
	InferBaseURL   string
	InferTimeout   time.Duration
	TxTimeout      time.Duration
}

// FromConfig reads the ingest options from config with CORE_IMPORT_ prefix
func FromConfig(cfg config.Conf) Options {
	imp := cfg.Prefix("CORE_IMPORT_")
	inf := cfg.Prefix("CORE_INFER_")
	return Options{
		Workers:        imp.MayInt("WORKERS", 1),
		InsertChunk:    imp.MayInt("INSERT_CHUNK", 500),
		EmbedHeadlines: imp.MayBool("EMBED_HEADLINES", false),
		InferBaseURL:   inf.MayString("BASE_URL", ""),
		InferTimeout:   inf.MayDuration("TIMEOUT", 30*time.Second),
		TxTimeout:      imp.MayDuration("TX_TIMEOUT", 0),
	}
}
