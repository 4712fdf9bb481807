// Package circulation implements the library operations on top of the catalog and the ordered index.
//
// Library is the only entry point that mutates either structure. Every Operation goes through
// Library.Execute, which applies it completely (catalog, index, and counters) and returns a Result.
// Business failures such as an unknown record id or a full waitlist are reported inside the Result
// (see Result.Err), they never abort processing.
//
// Library keeps two flip counters: the ordered index counts color-changing rotations, while the
// library adds a fixed increment for every add, lend, and return, plus the index delta of every
// remove. The flip count report is the sum of both.
//
// Optional collaborators are configured with functional options:
//   - WithLogger / WithContextualLogger for structured logging (log/slog compatible)
//   - WithMetrics / WithTracing for metrics and spans (see package oteladapters)
//   - WithJournal for an outbound audit trail of domain events (see package shell)
//   - WithArrivalClock / WithNow for deterministic claim ordering and event timestamps
//
// A Library is not safe for concurrent use. Sequencer serializes operations from many goroutines
// onto one goroutine owning the Library.
package circulation
