// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

Each wrapper turns a component's own lifecycle (ListenAndServe/Shutdown,
Run/Close, a ticker loop) into suture's context-aware Serve:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Available services:

  - HTTPServerService wraps *http.Server and drains connections on shutdown.
  - RefreshService builds the recommendation engine on startup and rebuilds
    it on a fixed interval. A failed build is logged and retried on the
    next tick; the previous engine keeps serving.
  - EventRouterService runs the watermill refresh-event router and closes
    it when the supervisor stops.

All wrappers implement fmt.Stringer so supervisor log lines name them.
*/
package services
