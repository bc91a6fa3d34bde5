package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"moodwire/internal/modkit"
	"moodwire/internal/modkit/module"
	"moodwire/internal/modkit/repokit"
	"moodwire/internal/platform/config"
	"moodwire/internal/platform/logger"
	"moodwire/internal/platform/store"

	ingestmod "moodwire/internal/services/ingest/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

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
		fDir     = flag.String("dir", "", "feed directory of .txt/.txt.gz units")
		fUnit    = flag.String("unit", "", "single feed unit to process (overrides -dir)")
		fWorkers = flag.Int("workers", 0, "unit worker concurrency (0 keeps CORE_IMPORT_WORKERS)")
		fEmbed   = flag.Bool("embed", false, "embed lv/ru headlines via the inference sidecar")
	)
	flag.Parse()

	if *fDir == "" && *fUnit == "" {
		l.Panic().Msg("must provide -dir or -unit")
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// Surface flags to the module's FromConfig
	if *fWorkers > 0 {
		mustSetEnv("CORE_IMPORT_WORKERS", strconv.Itoa(*fWorkers))
	}
	if *fEmbed {
		mustSetEnv("CORE_IMPORT_EMBED_HEADLINES", "1")
	}

	mod := ingestmod.New(deps)
	module.Register(mod.Name(), mod.Ports())

	runner := module.MustPortsOf[ingestmod.Ports](mod).Runner
	ctx := context.Background()

	if *fUnit != "" {
		res, err := runner.ProcessUnit(ctx, *fUnit)
		if err != nil {
			l.Fatal().Err(err).Str("unit", *fUnit).Msg("import failed")
		}
		l.Info().
			Str("unit", res.Unit).
			Str("status", res.Status).
			Int("rows", res.Rows).
			Int("inserted", res.Inserted).
			Int("skipped", res.Skipped).
			Msg("import unit done")
		return
	}

	rep, err := runner.ProcessDir(ctx, *fDir)
	if err != nil {
		l.Fatal().Err(err).Str("dir", *fDir).Msg("import failed")
	}
	l.Info().
		Int("units", rep.Units).
		Int("processed", rep.Processed).
		Int("succeeded", rep.Succeeded).
		Int("failed", rep.Failed).
		Int("already_in", rep.AlreadyIn).
		Msg("import run done")
}
