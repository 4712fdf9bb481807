package postgresjournal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/postgresjournal/internal/adapters"
)

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

type fakeRows struct {
	rows   [][]any
	cursor int
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.cursor >= len(r.rows) {
		return false
	}

	r.cursor++

	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.cursor-1]
	*dest[0].(*string) = row[0].(string)
	*dest[1].(*time.Time) = row[1].(time.Time)
	*dest[2].(*[]byte) = row[2].([]byte)
	*dest[3].(*[]byte) = row[3].([]byte)

	return nil
}

func (r *fakeRows) Err() error {
	return nil
}

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

type fakeAdapter struct {
	queries      []string
	rows         *fakeRows
	rowsAffected int64
	err          error
}

func (a *fakeAdapter) Query(_ context.Context, query string) (adapters.DBRows, error) {
	a.queries = append(a.queries, query)
	if a.err != nil {
		return nil, a.err
	}

	return a.rows, nil
}

func (a *fakeAdapter) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	a.queries = append(a.queries, query)
	if a.err != nil {
		return nil, a.err
	}

	return fakeResult{rowsAffected: a.rowsAffected}, nil
}

func Test_Journal_Append_BuildsOneInsertForAllEntries(t *testing.T) {
	// arrange
	db := &fakeAdapter{rowsAffected: 2}
	j, err := newJournal(db, WithTableName("audit"))
	require.NoError(t, err)
	first, _ := journal.BuildEntryWithEmptyMetadata("RecordAddedToCatalog", time.Now(), []byte(`{"RecordID":1}`))
	second, _ := journal.BuildEntryWithEmptyMetadata("RecordLentToPatron", time.Now(), []byte(`{"RecordID":1}`))

	// act
	appendErr := j.Append(context.Background(), first, second)

	// assert
	require.NoError(t, appendErr)
	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], `INSERT INTO "audit"`)
	assert.Contains(t, db.queries[0], `'{"RecordID":1}'::jsonb`)
	assert.Contains(t, db.queries[0], `'RecordLentToPatron'`)
}

func Test_Journal_Append_FailsWhenFewerRowsAreWritten(t *testing.T) {
	// arrange
	db := &fakeAdapter{rowsAffected: 0}
	j, _ := newJournal(db)
	entry, _ := journal.BuildEntryWithEmptyMetadata("RecordAddedToCatalog", time.Now(), []byte(`{}`))

	// act
	err := j.Append(context.Background(), entry)

	// assert
	assert.ErrorIs(t, err, journal.ErrAppendingEntriesFailed)
}

func Test_Journal_Append_WrapsDatabaseErrors(t *testing.T) {
	// arrange
	dbErr := errors.New("connection refused")
	j, _ := newJournal(&fakeAdapter{err: dbErr})
	entry, _ := journal.BuildEntryWithEmptyMetadata("RecordAddedToCatalog", time.Now(), []byte(`{}`))

	// act
	err := j.Append(context.Background(), entry)

	// assert
	assert.ErrorIs(t, err, journal.ErrAppendingEntriesFailed)
	assert.ErrorIs(t, err, dbErr)
}

func Test_Journal_Query_FiltersByEventTypeAndPayload(t *testing.T) {
	// arrange
	occurredAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	db := &fakeAdapter{rows: &fakeRows{rows: [][]any{
		{"RecordLentToPatron", occurredAt, []byte(`{"RecordID":10,"PatronID":5}`), []byte(`{}`)},
	}}}
	j, _ := newJournal(db)
	filter := journal.BuildFilter().
		AnyEventTypeOf("RecordLentToPatron", "RecordReturnedByPatron").
		AnyPredicateOf(journal.P("RecordID", 10)).
		Finalize()

	// act
	entries, err := j.Query(context.Background(), filter)

	// assert
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "RecordLentToPatron", entries[0].EventType)
	assert.Equal(t, occurredAt, entries[0].OccurredAt)
	assert.True(t, db.rows.closed)

	query := db.queries[0]
	assert.Contains(t, query, `FROM "circulation_journal"`)
	assert.Contains(t, query, `IN ('RecordLentToPatron', 'RecordReturnedByPatron')`)
	assert.Contains(t, query, `payload @> '{"RecordID":10}'::jsonb`)
	assert.Contains(t, query, `ORDER BY "sequence_number" ASC`)
}

func Test_Journal_Query_EmptyFilterHasNoWhereClause(t *testing.T) {
	db := &fakeAdapter{rows: &fakeRows{}}
	j, _ := newJournal(db)

	_, err := j.Query(context.Background(), journal.BuildFilter().Finalize())

	require.NoError(t, err)
	assert.NotContains(t, db.queries[0], "WHERE")
}

func Test_Journal_CreateTable_QuotesSchemaQualifiedName(t *testing.T) {
	db := &fakeAdapter{}
	j, _ := newJournal(db, WithTableName("audit.circulation"))

	err := j.CreateTable(context.Background())

	require.NoError(t, err)
	assert.Contains(t, db.queries[0], `CREATE TABLE IF NOT EXISTS "audit"."circulation"`)
	assert.Contains(t, db.queries[0], "payload JSONB NOT NULL")
}

func Test_NewJournal_RejectsInvalidConfiguration(t *testing.T) {
	_, tableErr := newJournal(&fakeAdapter{}, WithTableName(""))
	_, nilPoolErr := NewJournalFromPGXPool(nil)
	_, nilSQLErr := NewJournalFromSQLDB(nil)
	_, nilSQLXErr := NewJournalFromSQLX(nil)

	assert.ErrorIs(t, tableErr, journal.ErrEmptyTableNameSupplied)
	assert.ErrorIs(t, nilPoolErr, journal.ErrNilDatabaseConnection)
	assert.ErrorIs(t, nilSQLErr, journal.ErrNilDatabaseConnection)
	assert.ErrorIs(t, nilSQLXErr, journal.ErrNilDatabaseConnection)
}
