package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

func Test_DomainEventFrom_RestoresEveryEventType(t *testing.T) {
	occurredAt := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)

	events := core.DomainEvents{
		core.BuildRecordAddedToCatalog(1, "Alpha", "A1", true, occurredAt),
		core.BuildRecordLentToPatron(1, 5, occurredAt),
		core.BuildClaimQueuedForRecord(1, 7, 2, 3, occurredAt),
		core.BuildRecordReturnedByPatron(1, 5, occurredAt),
		core.BuildRecordAllottedToPatron(1, 7, 2, occurredAt),
		core.BuildRecordRemovedFromCatalog(1, []int{9, 11}, occurredAt),
		core.BuildAddingRecordFailed(1, "record already exists", occurredAt),
		core.BuildLendingRecordFailed(1, 5, "record not found", occurredAt),
		core.BuildReturningRecordFailed(1, 5, "record not found", occurredAt),
		core.BuildRemovingRecordFailed(1, "record not found", occurredAt),
	}
	require.Len(t, events, len(core.EventTypes()))

	for _, event := range events {
		t.Run(event.IsEventType(), func(t *testing.T) {
			// arrange
			entry, err := shell.EntryFrom(event, shell.EventMetadata{})
			require.NoError(t, err)

			// act
			restored, err := shell.DomainEventFrom(entry)

			// assert
			require.NoError(t, err)
			assert.Equal(t, event, restored)
			assert.Equal(t, event.IsEventType(), entry.EventType)
			assert.True(t, occurredAt.Equal(entry.OccurredAt))
		})
	}
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	entry, _ := journal.BuildEntryWithEmptyMetadata("SomethingElse", time.Now(), []byte(`{}`))

	_, err := shell.DomainEventFrom(entry)

	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_JournalRecorder_Record_ChainsCausationWithinOneCorrelation(t *testing.T) {
	// arrange
	ctx := context.Background()
	memory := journal.NewMemoryJournal()
	recorder, err := shell.NewJournalRecorder(memory)
	require.NoError(t, err)
	now := time.Now()

	// act
	recordErr := recorder.Record(
		ctx,
		core.BuildRecordReturnedByPatron(10, 5, now),
		core.BuildRecordAllottedToPatron(10, 9, 1, now),
	)

	// assert
	require.NoError(t, recordErr)
	entries, _ := memory.Query(ctx, journal.BuildFilter().Finalize())
	require.Len(t, entries, 2)

	first, err := shell.EventMetadataFrom(entries[0])
	require.NoError(t, err)
	second, err := shell.EventMetadataFrom(entries[1])
	require.NoError(t, err)

	assert.Equal(t, first.CorrelationID, second.CorrelationID)
	assert.Equal(t, first.CorrelationID, first.CausationID)
	assert.Equal(t, first.MessageID, second.CausationID)
	assert.NotEqual(t, first.MessageID, second.MessageID)
}

func Test_JournalRecorder_Record_NoEventsIsNoOp(t *testing.T) {
	memory := journal.NewMemoryJournal()
	recorder, _ := shell.NewJournalRecorder(memory)

	err := recorder.Record(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, memory.Len())
}

func Test_NewJournalRecorder_RejectsNilAppender(t *testing.T) {
	_, err := shell.NewJournalRecorder(nil)

	assert.ErrorIs(t, err, shell.ErrNilAppender)
}
