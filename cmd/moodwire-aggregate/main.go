package main

import (
	"context"
	"flag"
	"time"

	"moodwire/internal/modkit"
	"moodwire/internal/modkit/module"
	"moodwire/internal/modkit/repokit"
	"moodwire/internal/platform/config"
	"moodwire/internal/platform/logger"
	"moodwire/internal/platform/store"

	"moodwire/internal/core/emotion"
	aggregatemod "moodwire/internal/services/aggregate/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()
	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast before any work starts
	repokit.MustGuard(context.Background(), st)

	var (
		fStart  = flag.String("start", "", "UTC start day YYYY-MM-DD")
		fEnd    = flag.String("end", "", "UTC end day YYYY-MM-DD inclusive")
		fScheme = flag.String("scheme", "", "label scheme to cache (default: all)")
	)
	flag.Parse()

	if *fStart == "" || *fEnd == "" {
		l.Panic().Msg("must provide -start and -end")
	}
	start, err := time.ParseInLocation("2006-01-02", *fStart, time.UTC)
	if err != nil {
		l.Panic().Err(err).Msg("bad -start")
	}
	end, err := time.ParseInLocation("2006-01-02", *fEnd, time.UTC)
	if err != nil {
		l.Panic().Err(err).Msg("bad -end")
	}
	if end.Before(start) {
		l.Panic().Str("start", start.String()).Str("end", end.String()).Msg("-end before -start")
	}

	schemes := make([]string, 0, 2)
	if *fScheme != "" {
		if !emotion.Scheme(*fScheme).Valid() {
			l.Panic().Str("scheme", *fScheme).Msg("unknown scheme")
		}
		schemes = append(schemes, *fScheme)
	} else {
		for _, s := range emotion.Schemes() {
			schemes = append(schemes, string(s))
		}
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	mod := aggregatemod.New(deps)
	module.Register(mod.Name(), mod.Ports())

	runner := module.MustPortsOf[aggregatemod.Ports](mod).Runner
	ctx := context.Background()

	for _, scheme := range schemes {
		rep, err := runner.RunDaily(ctx, scheme, start, end)
		if err != nil {
			l.Fatal().Err(err).Str("scheme", scheme).Msg("aggregate run failed")
		}
		l.Info().
			Str("scheme", scheme).
			Int("days", rep.Days).
			Int("done", rep.Done).
			Int("written", rep.Written).
			Msg("aggregate run done")
	}
}
