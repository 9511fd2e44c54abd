// Package logging builds the slog loggers used across tasknotify.
//
// Two formats are supported: a compact console format for interactive use and
// JSON for everything else. "auto" picks between them based on whether the
// output is a terminal. Attr helpers exist so call sites stay terse and the
// component field stays consistent.
package logging
