// Package spies provides recording test doubles for the observability and journal collaborators
// of circulation.Library: a slog.Handler, a context-aware logger, a metrics collector, a tracing
// collector, and a journal.
//
// All spies are safe for concurrent use.
package spies
