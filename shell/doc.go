// Package shell connects the circulation to its journal.
//
// It maps core.DomainEvent values to journal.Entry DTOs and back (JSON via jsoniter), attaches
// EventMetadata with message, causation, and correlation ids, and offers JournalRecorder, which
// the circulation uses to write every batch of events it produces.
package shell
