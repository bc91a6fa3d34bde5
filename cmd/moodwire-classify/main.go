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

	classifydom "moodwire/internal/services/classify/domain"
	classifymod "moodwire/internal/services/classify/module"
	commentsmod "moodwire/internal/services/comments/module"
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
		fBatch   = flag.Int("batch", 0, "comments per batch (0 keeps CORE_CLASSIFY_BATCH_SIZE)")
		fWorkers = flag.Int("workers", 0, "concurrent inference calls per batch")
		fAfter   = flag.Int64("after", 0, "scan-start comment id hint")
		fInfer   = flag.String("infer", "", "inference sidecar base URL")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	if *fWorkers > 0 {
		mustSetEnv("CORE_CLASSIFY_WORKERS", strconv.Itoa(*fWorkers))
	}
	mustSetEnv("CORE_INFER_BASE_URL", *fInfer)

	comments := commentsmod.New(deps)
	module.Register(comments.Name(), comments.Ports())
	reader := module.MustPortsOf[commentsmod.Ports](comments).Reader

	mod := classifymod.New(deps,
		classifymod.Options{
			BatchSize:  *fBatch,
			Workers:    *fWorkers,
			StartAfter: *fAfter,
		},
		modkit.WithPorts(classifydom.Ports{Comments: reader}),
	)
	module.Register(mod.Name(), mod.Ports())

	runner := module.MustPortsOf[classifymod.Ports](mod).Runner

	rep, err := runner.Run(context.Background(), *fBatch)
	if err != nil {
		l.Fatal().Err(err).Msg("classify run failed")
	}
	l.Info().
		Int("batches", rep.Batches).
		Int("scanned", rep.Scanned).
		Int("skipped_empty", rep.SkippedEmpty).
		Int("skipped_lang", rep.SkippedLang).
		Int("written", rep.Written).
		Msg("classify run done")
}
