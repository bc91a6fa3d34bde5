// Package api provides the HTTP API for the application
package api

import (
	"moodwire/internal/platform/config"
	"moodwire/internal/platform/logger"
	phttp "moodwire/internal/platform/net/http"
	"moodwire/internal/platform/store"

	"moodwire/internal/modkit"
	"moodwire/internal/modkit/httpkit"
	"moodwire/internal/modkit/module"
	"moodwire/internal/modkit/swaggerkit"

	chartsmod "moodwire/internal/services/api/charts/module"
	metamod "moodwire/internal/services/api/meta/module"
	recordsmod "moodwire/internal/services/api/records/module"

	aggregatemod "moodwire/internal/services/aggregate/module"
	commentsmod "moodwire/internal/services/comments/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// Domain modules first; the http modules borrow their ports
	comments := commentsmod.New(deps)
	reader := module.MustPortsOf[commentsmod.Ports](comments).Reader

	aggregate := aggregatemod.New(deps)
	query := module.MustPortsOf[aggregatemod.Ports](aggregate).Query

	mods := []module.Module{
		comments,
		aggregate,
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Periods: query})),
		recordsmod.New(deps, modkit.WithPorts(recordsmod.Ports{Comments: reader})),
		chartsmod.New(deps, modkit.WithPorts(chartsmod.Ports{Query: query})),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
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
