package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"lifering/internal/modkit"
	"lifering/internal/modkit/module"
	"lifering/internal/platform/config"
	"lifering/internal/platform/logger"
	"lifering/internal/platform/store"

	indexermod "lifering/internal/services/indexer/module"
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
		AppName: "lifering-indexer",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
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

	var (
		fConc   = flag.Int("concurrency", 2, "worker concurrency")
		fBatch  = flag.Int("batch", 32, "DB lease batch size per poll")
		fRetry  = flag.Int("retry_base_ms", 500, "base backoff (ms) for transient failures")
		fMaxAtt = flag.Int("max_attempts", 10, "max attempts before giving up")
		fLease  = flag.Duration("lease", 60*time.Second, "job lease duration")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// Export as env so the module can also read via FromConfig.
	mustSetEnv("INDEXER_WORKER_CONCURRENCY", fmt.Sprintf("%d", *fConc))
	mustSetEnv("INDEXER_QUEUE_TAKE_BATCH", fmt.Sprintf("%d", *fBatch))
	mustSetEnv("INDEXER_RETRY_BASE", fmt.Sprintf("%dms", *fRetry))
	mustSetEnv("INDEXER_MAX_ATTEMPTS", fmt.Sprintf("%d", *fMaxAtt))
	mustSetEnv("INDEXER_LEASE_FOR", fLease.String())

	mod := indexermod.New(deps, indexermod.Options{
		Concurrency:    *fConc,
		QueueTakeBatch: *fBatch,
		RetryBaseMs:    *fRetry,
		MaxAttempts:    *fMaxAtt,
		LeaseFor:       *fLease,
	})
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[indexermod.Ports](mod)

	if err := ports.Worker.Run(context.Background()); err != nil {
		l.Fatal().Err(err).Msg("indexer worker failed")
	}
}
