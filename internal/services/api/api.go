// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"strings"

	"lifering/internal/platform/config"
	"lifering/internal/platform/logger"
	phttp "lifering/internal/platform/net/http"
	"lifering/internal/platform/store"

	"lifering/internal/modkit"
	"lifering/internal/modkit/httpkit"
	"lifering/internal/modkit/module"
	"lifering/internal/modkit/swaggerkit"

	assessmod "lifering/internal/services/assess/module"
	corpusmod "lifering/internal/services/corpus/module"
	indexermod "lifering/internal/services/indexer/module"
	metamod "lifering/internal/services/meta/module"
	reviewmod "lifering/internal/services/review/module"
	settingsmod "lifering/internal/services/settings/module"
	statsmod "lifering/internal/services/stats/module"
	trainingmod "lifering/internal/services/training/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// identityPort extracts the reviewer id from the bearer token when one is
// present. The upstream gateway owns enforcement, so anonymous requests
// still pass; handlers that need attribution read the id off the context
type identityPort struct{}

func (identityPort) Parse(r *http.Request) (string, string, error) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(authz) <= len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return "", "", nil
	}
	return strings.TrimSpace(authz[len(prefix):]), "", nil
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Settings first: downstream modules read the live snapshot through its port
	settings := settingsmod.New(deps)
	settingsPorts := module.MustPortsOf[settingsmod.Ports](settings)

	// Worker indexer module owns the EnqueueIndex port used by corpus writes
	indexer := indexermod.New(deps, indexermod.Options{})
	indexerPorts := module.MustPortsOf[indexermod.Ports](indexer)

	assess := assessmod.New(
		deps,
		assessmod.Options{},
		modkit.WithPorts(assessmod.DepPorts{
			Settings: settingsPorts.Reader,
		}),
	)
	assessPorts := module.MustPortsOf[assessmod.Ports](assess)

	training := trainingmod.New(
		deps,
		modkit.WithPorts(trainingmod.DepPorts{
			Assessments: assessPorts.Reader,
			Settings:    settingsPorts.Reader,
		}),
	)

	corpus := corpusmod.New(
		deps,
		modkit.WithPorts(corpusmod.DepPorts{
			Indexer: indexerPorts.Enqueuer,
		}),
	)

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.DepPorts{Settings: settingsPorts.Reader})),
		settings,
		indexer, // include worker so its ports are registered
		assess,
		reviewmod.New(deps),
		training,
		corpus,
		statsmod.New(deps),
	}

	// versioned API with a common middleware stack plus identity extraction
	mw := append(httpkit.CommonStack(), httpkit.Auth(identityPort{}))
	httpkit.MountAPIV1(r, mw, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
