package domain

import (
	"context"
	"time"

	"moodwire/internal/core/buckets"
)

// QueryPort is the public port exposed by the aggregate module
type QueryPort interface {
	// Aggregate builds chart data for the window. Unknown scheme or
	// granularity yields a nil ChartData and no error
	Aggregate(ctx context.Context, scheme string, start, end time.Time, g buckets.Granularity) (*ChartData, error)

	// PeriodDetail lists one day's classified comments with headlines.
	// Unknown scheme yields nil and no error
	PeriodDetail(ctx context.Context, scheme string, date time.Time, lang string) ([]DetailRow, error)

	// AllowedPeriodRange reports the min/max window plus the month list
	AllowedPeriodRange(ctx context.Context) (PeriodRange, error)
}

// RunnerPort drives the incremental daily cache
type RunnerPort interface {
	// RunDaily recomputes the per-day aggregate cache for every day in
	// [start, end] not yet marked done, one transaction per day
	RunDaily(ctx context.Context, scheme string, start, end time.Time) (DailyReport, error)
}

// StorageRepo is the storage repository interface
type StorageRepo interface {
	// LabelRows streams classified observations for one scheme and language
	// in [start, end)
	LabelRows(ctx context.Context, scheme, lang string, start, end time.Time) ([]LabelRow, error)

	// MaxClassifiedAt reports the newest classified timestamp; ok=false on
	// an empty table
	MaxClassifiedAt(ctx context.Context) (time.Time, bool, error)

	// DoneDays returns the cached-day set for one scheme
	DoneDays(ctx context.Context, scheme string) (map[string]struct{}, error)

	// DayCounts tallies one day's label counts per language from the
	// classified table
	DayCounts(ctx context.Context, scheme string, day time.Time) ([]DayCount, error)

	// ReplaceDayCache rewrites one day's cache rows and marks the day done
	ReplaceDayCache(ctx context.Context, scheme string, day time.Time, counts []DayCount) error

	// DayDetail joins one day's classified comments to article headlines.
	// Comments whose article never made it into the feed are omitted
	DayDetail(ctx context.Context, scheme string, day time.Time, lang string) ([]DetailRow, error)
}
