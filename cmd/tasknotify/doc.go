// Package main hosts the tasknotify CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the daemon API: status inspection, due-task listing, task
// snapshot submission, device token management, test notifications, and
// configuration scaffolding. Configuration resolution and API plumbing are
// centralized in commandContext so subcommands stay declarative.
package main
