// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package supervisor runs the long-lived services of Bookend under a suture v4
supervisor tree.

The tree has two layers so that a failing maintenance job never takes the
HTTP server with it:

	RootSupervisor ("bookend")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── SweeperService (overview cache cleanup, filter store sweep)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff.
Supervisor events are logged through sutureslog, which writes to the
zerolog-backed slog adapter in internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(services.NewSweeperService(engine, store, cfg.FilterStore.SweepInterval))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	return tree.Serve(ctx)

The dataset itself is loaded once before the tree starts. It is not a
supervised service: a failed load ends the process.
*/
package supervisor
