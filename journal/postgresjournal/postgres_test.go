package postgresjournal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/postgreswrapper"
)

func Test_Journal_AppendThenQuery_ReturnsEntriesInAppendOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	pg := postgreswrapper.New(t).Journal()
	occurredAt := core.ToOccurredAt(time.Now())

	first, err := journal.BuildEntryWithEmptyMetadata("First", occurredAt, []byte(`{"RecordID": 1}`))
	require.NoError(t, err)
	second, err := journal.BuildEntryWithEmptyMetadata("Second", occurredAt, []byte(`{"RecordID": 2}`))
	require.NoError(t, err)

	// act
	require.NoError(t, pg.Append(ctx, first, second))
	entries, err := pg.Query(ctx, journal.BuildFilter().Finalize())

	// assert
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "First", entries[0].EventType)
	assert.Equal(t, "Second", entries[1].EventType)
	assert.True(t, occurredAt.Equal(entries[0].OccurredAt))
	assert.JSONEq(t, `{"RecordID": 1}`, string(entries[0].PayloadJSON))
}

func Test_Journal_Query_SelectsOneRecordsHistory(t *testing.T) {
	// arrange
	ctx := context.Background()
	pg := postgreswrapper.New(t).Journal()
	recorder, err := shell.NewJournalRecorder(pg)
	require.NoError(t, err)
	now := time.Now()

	require.NoError(t, recorder.Record(ctx,
		core.BuildRecordAddedToCatalog(7, "Dune", "Herbert", true, now),
		core.BuildRecordAddedToCatalog(8, "Emma", "Austen", true, now),
	))
	require.NoError(t, recorder.Record(ctx, core.BuildRecordLentToPatron(7, 100, now)))
	require.NoError(t, recorder.Record(ctx, core.BuildClaimQueuedForRecord(7, 101, 2, 1, now)))

	filter := journal.BuildFilter().
		AnyEventTypeOf(core.RecordAddedToCatalogEventType, core.RecordLentToPatronEventType).
		AllPredicatesOf(journal.P("RecordID", 7)).
		Finalize()

	// act
	entries, err := pg.Query(ctx, filter)
	require.NoError(t, err)
	events, err := shell.DomainEventsFrom(entries)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, core.RecordAddedToCatalogEventType, events[0].IsEventType())
	assert.Equal(t, core.RecordLentToPatronEventType, events[1].IsEventType())
	assert.Equal(t, 100, events[1].(core.RecordLentToPatron).PatronID)
}

func Test_Journal_Append_KeepsEventMetadataChain(t *testing.T) {
	// arrange
	ctx := context.Background()
	pg := postgreswrapper.New(t).Journal()
	recorder, err := shell.NewJournalRecorder(pg)
	require.NoError(t, err)
	now := time.Now()

	// act
	require.NoError(t, recorder.Record(ctx,
		core.BuildRecordReturnedByPatron(3, 100, now),
		core.BuildRecordAllottedToPatron(3, 101, 1, now),
	))
	entries, err := pg.Query(ctx, journal.BuildFilter().Finalize())

	// assert
	require.NoError(t, err)
	require.Len(t, entries, 2)

	returned, err := shell.EventMetadataFrom(entries[0])
	require.NoError(t, err)
	allotted, err := shell.EventMetadataFrom(entries[1])
	require.NoError(t, err)

	assert.Equal(t, returned.CorrelationID, allotted.CorrelationID)
	assert.Equal(t, returned.MessageID, allotted.CausationID)
}
