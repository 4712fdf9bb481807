package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

func newHistoryCommand(cfg *Config) *cobra.Command {
	var recordID int
	var eventTypes []string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the journaled events of one record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := newLogger(cfg, cmd.ErrOrStderr())

			env, err := newEnvironment(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer env.close()

			if env.journal.reader == nil {
				return fmt.Errorf("%w: %q", ErrJournalNotQueryable, cfg.Journal)
			}

			entries, err := env.journal.reader.Query(ctx, historyFilter(recordID, eventTypes))
			if err != nil {
				return err
			}

			events, err := shell.DomainEventsFrom(entries)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, event := range events {
				fmt.Fprintf(out, "%s %s %s\n",
					event.HasOccurredAt().Format(time.RFC3339Nano),
					event.IsEventType(),
					describe(event),
				)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&recordID, "record-id", 0, "record to show the history of")
	cmd.Flags().StringSliceVar(&eventTypes, "event-type", nil, "only these event types (repeatable)")
	_ = cmd.MarkFlagRequired("record-id")

	return cmd
}

func historyFilter(recordID int, eventTypes []string) journal.Filter {
	if len(eventTypes) == 0 {
		eventTypes = core.EventTypes()
	}

	return journal.BuildFilter().
		AnyEventTypeOf(eventTypes...).
		AllPredicatesOf(journal.P("RecordID", recordID)).
		Finalize()
}

func describe(event core.DomainEvent) string {
	switch e := event.(type) {
	case core.RecordAddedToCatalog:
		return fmt.Sprintf("title=%q author=%q available=%t", e.Title, e.Author, e.Available)
	case core.RecordLentToPatron:
		return fmt.Sprintf("patron=%d", e.PatronID)
	case core.ClaimQueuedForRecord:
		return fmt.Sprintf("patron=%d priority=%d arrival=%d", e.PatronID, e.Priority, e.Arrival)
	case core.RecordReturnedByPatron:
		return fmt.Sprintf("patron=%d", e.PatronID)
	case core.RecordAllottedToPatron:
		return fmt.Sprintf("patron=%d priority=%d", e.PatronID, e.Priority)
	case core.RecordRemovedFromCatalog:
		return fmt.Sprintf("cancelled=%v", e.CancelledPatronIDs)
	case core.AddingRecordFailed:
		return e.FailureInfo
	case core.LendingRecordFailed:
		return fmt.Sprintf("patron=%d %s", e.PatronID, e.FailureInfo)
	case core.ReturningRecordFailed:
		return fmt.Sprintf("patron=%d %s", e.PatronID, e.FailureInfo)
	case core.RemovingRecordFailed:
		return e.FailureInfo
	default:
		return ""
	}
}
