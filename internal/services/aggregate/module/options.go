package module

import (
	"time"

	"moodwire/internal/platform/config"
	"moodwire/internal/platform/logger"
)

// Options configures the aggregate module
type Options struct {
	MinDate time.Time
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_AGG_")
	out := Options{}
	if s := af.MayString("MIN_DATE", ""); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			logger.Named("aggregate").Warn().Str("min_date", s).Err(err).Msg("invalid CORE_AGG_MIN_DATE, using default")
		} else {
			out.MinDate = t.UTC()
		}
	}
	return out
}
