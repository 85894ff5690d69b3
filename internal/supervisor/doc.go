// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor provides process supervision for Marquee using suture v4.

Long-running services are grouped into three child supervisors so a failure
in one layer restarts only that layer:

	RootSupervisor ("marquee")
	├── EngineSupervisor ("engine-layer")
	│   └── RefreshService (startup build, periodic rebuild)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (if EVENTS_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed router never takes the HTTP server down with it, and the previous
engine keeps serving while a failed rebuild is retried on the next tick.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddEngineService(services.NewRefreshService(provider, refreshCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog, bridged onto zerolog by logging.NewSlogLogger.
*/
package supervisor
