package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

func Test_BuildEntry_RejectsInvalidJSON(t *testing.T) {
	_, payloadErr := journal.BuildEntry("T", time.Now(), []byte("{not json"), []byte("{}"))
	_, metadataErr := journal.BuildEntry("T", time.Now(), []byte("{}"), []byte("nope"))
	entry, err := journal.BuildEntryWithEmptyMetadata("T", time.Now(), []byte(`{"RecordID":1}`))

	assert.ErrorIs(t, payloadErr, journal.ErrInvalidPayloadJSON)
	assert.ErrorIs(t, metadataErr, journal.ErrInvalidMetadataJSON)
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), entry.MetadataJSON)
}

func Test_FilterBuilder_SanitizesInput(t *testing.T) {
	// act
	filter := journal.BuildFilter().
		AnyEventTypeOf("B", "", "A", "B").
		AnyPredicateOf(journal.P("RecordID", 10), journal.P("", 1), journal.P("RecordID", 10), journal.P("PatronID", nil)).
		Finalize()

	// assert
	assert.Equal(t, []string{"A", "B"}, filter.EventTypes())
	require.Len(t, filter.Predicates(), 1)
	assert.Equal(t, "RecordID", filter.Predicates()[0].Key())
	assert.Equal(t, 10, filter.Predicates()[0].Val())
	assert.False(t, filter.AllPredicatesMustMatch())
}

func Test_Filter_Matches(t *testing.T) {
	entry, err := journal.BuildEntryWithEmptyMetadata(
		"RecordLentToPatron",
		time.Now(),
		[]byte(`{"RecordID":10,"PatronID":5}`),
	)
	require.NoError(t, err)

	testCases := []struct {
		description string
		filter      journal.Filter
		expected    bool
	}{
		{
			description: "empty filter",
			filter:      journal.BuildFilter().Finalize(),
			expected:    true,
		},
		{
			description: "matching event type",
			filter:      journal.BuildFilter().AnyEventTypeOf("RecordLentToPatron").Finalize(),
			expected:    true,
		},
		{
			description: "other event type",
			filter:      journal.BuildFilter().AnyEventTypeOf("RecordAddedToCatalog").Finalize(),
			expected:    false,
		},
		{
			description: "any predicate with one hit",
			filter:      journal.BuildFilter().AnyPredicateOf(journal.P("RecordID", 11), journal.P("PatronID", 5)).Finalize(),
			expected:    true,
		},
		{
			description: "all predicates with one miss",
			filter:      journal.BuildFilter().AllPredicatesOf(journal.P("RecordID", 10), journal.P("PatronID", 6)).Finalize(),
			expected:    false,
		},
		{
			description: "event type and all predicates",
			filter: journal.BuildFilter().
				AnyEventTypeOf("RecordLentToPatron").
				AllPredicatesOf(journal.P("RecordID", 10), journal.P("PatronID", 5)).
				Finalize(),
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.filter.Matches(entry))
		})
	}
}

func Test_MemoryJournal_AppendAndQuery(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := journal.NewMemoryJournal()
	first, _ := journal.BuildEntryWithEmptyMetadata("RecordAddedToCatalog", time.Now(), []byte(`{"RecordID":1}`))
	second, _ := journal.BuildEntryWithEmptyMetadata("RecordAddedToCatalog", time.Now(), []byte(`{"RecordID":2}`))
	third, _ := journal.BuildEntryWithEmptyMetadata("RecordLentToPatron", time.Now(), []byte(`{"RecordID":1}`))

	// act
	require.NoError(t, j.Append(ctx, first, second))
	require.NoError(t, j.Append(ctx, third))
	forRecordOne, err := j.Query(ctx, journal.BuildFilter().AnyPredicateOf(journal.P("RecordID", 1)).Finalize())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, j.Len())
	assert.Equal(t, journal.Entries{first, third}, forRecordOne)
}

func Test_MemoryJournal_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	entry, _ := journal.BuildEntryWithEmptyMetadata("T", time.Now(), []byte(`{}`))

	err := journal.NewMemoryJournal().Append(ctx, entry)

	assert.ErrorIs(t, err, context.Canceled)
}
