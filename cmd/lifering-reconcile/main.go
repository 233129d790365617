package main

import (
	"context"
	"flag"

	"lifering/internal/modkit"
	"lifering/internal/modkit/module"
	"lifering/internal/platform/config"
	"lifering/internal/platform/logger"
	"lifering/internal/platform/store"

	assessmod "lifering/internal/services/assess/module"
	settingsmod "lifering/internal/services/settings/module"
)

// Rebuilds the comment moderation pointer cache from the append-only
// assessment log. Run after restoring a backup or repairing bad rows.
func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "lifering-reconcile",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
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
		fComment = flag.String("comment", "", "rebuild the pointer for a single comment id")
		fAll     = flag.Bool("all", false, "rebuild pointers for every assessed comment")
	)
	flag.Parse()

	if *fComment == "" && !*fAll {
		l.Fatal().Msg("nothing to do: pass -comment <id> or -all")
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	settings := settingsmod.New(deps)
	settingsPorts := module.MustPortsOf[settingsmod.Ports](settings)

	assess := assessmod.New(deps, assessmod.Options{}, modkit.WithPorts(assessmod.DepPorts{
		Settings: settingsPorts.Reader,
	}))
	rebuild := module.MustPortsOf[assessmod.Ports](assess).Rebuild

	ctx := context.Background()

	if *fComment != "" {
		if err := rebuild.RebuildPointer(ctx, *fComment); err != nil {
			l.Fatal().Err(err).Str("comment_id", *fComment).Msg("pointer rebuild failed")
		}
		l.Info().Str("comment_id", *fComment).Msg("pointer rebuilt")
		return
	}

	n, err := rebuild.RebuildAll(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("pointer rebuild failed")
	}
	l.Info().Int("pointers", n).Msg("pointer cache rebuilt")
}
