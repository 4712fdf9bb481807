package postgresjournal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/postgresjournal/internal/adapters"
)

const (
	defaultTableName              = "circulation_journal"
	logMsgBuildSelectQueryFailed  = "failed to build select query"
	logMsgBuildInsertQueryFailed  = "failed to build insert query"
	logMsgDBQueryFailed           = "database query execution failed"
	logMsgDBExecFailed            = "database execution failed during journal append"
	logMsgCloseRowsFailed         = "failed to close database rows"
	logMsgScanRowFailed           = "failed to scan database row"
	logMsgBuildEntryFailed        = "failed to build journal entry from database row"
	logMsgRowsAffectedMismatch    = "journal append affected fewer rows than expected"
	logMsgQueryCompleted          = "query completed"
	logMsgEntriesAppended         = "entries appended"
	logMsgTableCreated            = "journal table ensured"
	logMsgSQLExecuted             = "executed sql for: "
	logMsgOperation               = "journal operation: "
	logAttrError                  = "error"
	logAttrQuery                  = "query"
	logAttrEventType              = "event_type"
	logAttrEntryCount             = "entry_count"
	logAttrDurationMS             = "duration_ms"
	logAttrRowsAffected           = "rows_affected"
	logAttrTable                  = "table"
	logActionQuery                = "query"
	logActionAppend               = "append"
	logActionCreateTable          = "create table"
	colSequenceNumber             = "sequence_number"
	colEventType                  = "event_type"
	colOccurredAt                 = "occurred_at"
	colPayload                    = "payload"
	colMetadata                   = "metadata"
	dialectPostgres               = "postgres"
	castJsonb                     = "?::jsonb"
	predicateContainsJsonb        = colPayload + " @> ?::jsonb"
	createTableStatementFormatter = `CREATE TABLE IF NOT EXISTS %s (
	%s BIGSERIAL PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TIMESTAMP WITH TIME ZONE NOT NULL,
	%s JSONB NOT NULL,
	%s JSONB NOT NULL
)`
)

type (
	sqlQueryString = string
)

// Logger interface for SQL query logging, operational information, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Journal appends journal.Entry rows to a PostgreSQL table and reads them back in append order.
type Journal struct {
	db        adapters.DBAdapter
	tableName string
	logger    Logger
}

// Option defines a functional option for configuring Journal.
type Option func(*Journal) error

// WithTableName sets the table name for the Journal.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return journal.ErrEmptyTableNameSupplied
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
//
// Debug level: SQL statements with execution timing
// Info level: entry counts and durations
// Warn level: cleanup failures
// Error level: failures that abort the operation.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// NewJournalFromPGXPool creates a new Journal using a pgx Pool.
func NewJournalFromPGXPool(db *pgxpool.Pool, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapter(db), options...)
}

// NewJournalFromSQLDB creates a new Journal using a sql.DB (e.g. opened with the lib/pq driver).
func NewJournalFromSQLDB(db *sql.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLAdapter(db), options...)
}

// NewJournalFromSQLX creates a new Journal using a sqlx.DB.
func NewJournalFromSQLX(db *sqlx.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLXAdapter(db), options...)
}

func newJournal(db adapters.DBAdapter, options ...Option) (*Journal, error) {
	j := &Journal{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// CreateTable creates the journal table if it does not exist yet.
func (j *Journal) CreateTable(ctx context.Context) error {
	statement := j.buildCreateTableStatement()

	start := time.Now()
	_, execErr := j.db.Exec(ctx, statement)
	j.logQueryWithDuration(statement, logActionCreateTable, time.Since(start))

	if execErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, statement)
		}

		return errors.Join(journal.ErrCreatingTableFailed, execErr)
	}

	j.logOperation(logMsgTableCreated, logAttrTable, j.tableName)

	return nil
}

// Append inserts the entries with a single INSERT statement.
func (j *Journal) Append(ctx context.Context, entry journal.Entry, more ...journal.Entry) error {
	allEntries := append(journal.Entries{entry}, more...)

	sqlQuery, buildQueryErr := j.buildInsertQuery(allEntries)
	if buildQueryErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEntryCount, len(allEntries))
		}

		return buildQueryErr
	}

	start := time.Now()
	result, execErr := j.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return errors.Join(journal.ErrAppendingEntriesFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return errors.Join(journal.ErrAppendingEntriesFailed, rowsAffectedErr)
	}

	if rowsAffected != int64(len(allEntries)) {
		if j.logger != nil {
			j.logger.Error(logMsgRowsAffectedMismatch, logAttrEntryCount, len(allEntries), logAttrRowsAffected, rowsAffected)
		}

		return journal.ErrAppendingEntriesFailed
	}

	j.logOperation(
		logMsgEntriesAppended,
		logAttrEntryCount, len(allEntries),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	return nil
}

// Query reads the entries matching filter in append order.
func (j *Journal) Query(ctx context.Context, filter journal.Filter) (journal.Entries, error) {
	sqlQuery, buildQueryErr := j.buildSelectQuery(filter)
	if buildQueryErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		}

		return nil, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := j.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, errors.Join(journal.ErrQueryingEntriesFailed, queryErr)
	}
	defer j.closeRows(rows)

	entries, scanErr := j.scanEntries(rows)
	if scanErr != nil {
		return nil, scanErr
	}

	j.logOperation(
		logMsgQueryCompleted,
		logAttrEntryCount, len(entries),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	return entries, nil
}

func (j *Journal) scanEntries(rows adapters.DBRows) (journal.Entries, error) {
	entries := make(journal.Entries, 0)

	for rows.Next() {
		var (
			eventType  string
			occurredAt time.Time
			payload    []byte
			metadata   []byte
		)

		if scanErr := rows.Scan(&eventType, &occurredAt, &payload, &metadata); scanErr != nil {
			if j.logger != nil {
				j.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
			}

			return nil, errors.Join(journal.ErrScanningDBRowFailed, scanErr)
		}

		entry, buildErr := journal.BuildEntry(eventType, occurredAt, payload, metadata)
		if buildErr != nil {
			if j.logger != nil {
				j.logger.Error(logMsgBuildEntryFailed, logAttrError, buildErr.Error(), logAttrEventType, eventType)
			}

			return nil, errors.Join(journal.ErrBuildingEntryFailed, buildErr)
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, errors.Join(journal.ErrQueryingEntriesFailed, rowsErr)
	}

	return entries, nil
}

func (j *Journal) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if j.logger != nil {
			j.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (j *Journal) buildCreateTableStatement() sqlQueryString {
	table := pgx.Identifier(strings.Split(j.tableName, ".")).Sanitize()

	return fmt.Sprintf(
		createTableStatementFormatter,
		table, colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata,
	)
}

func (j *Journal) buildInsertQuery(entries journal.Entries) (sqlQueryString, error) {
	rows := make([]any, len(entries))
	for i, entry := range entries {
		rows[i] = goqu.Record{
			colEventType:  entry.EventType,
			colOccurredAt: entry.OccurredAt,
			colPayload:    goqu.L(castJsonb, string(entry.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(entry.MetadataJSON)),
		}
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(j.tableName).
		Rows(rows...)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j *Journal) buildSelectQuery(filter journal.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt, whereErr := j.addWhereClause(filter, selectStmt)
	if whereErr != nil {
		return "", whereErr
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j *Journal) addWhereClause(filter journal.Filter, selectStmt *goqu.SelectDataset) (*goqu.SelectDataset, error) {
	if filter.IsEmpty() {
		return selectStmt, nil
	}

	expressions := make([]exp.Expression, 0, 2)

	if eventTypes := filter.EventTypes(); len(eventTypes) > 0 {
		vals := make([]any, len(eventTypes))
		for i, eventType := range eventTypes {
			vals[i] = eventType
		}

		expressions = append(expressions, goqu.C(colEventType).In(vals...))
	}

	if predicates := filter.Predicates(); len(predicates) > 0 {
		predicateExpressions := make([]exp.Expression, 0, len(predicates))

		for _, predicate := range predicates {
			containsJSON, marshalErr := jsoniter.ConfigFastest.MarshalToString(
				map[string]any{predicate.Key(): predicate.Val()},
			)
			if marshalErr != nil {
				return nil, errors.Join(journal.ErrBuildingQueryFailed, marshalErr)
			}

			predicateExpressions = append(predicateExpressions, goqu.L(predicateContainsJsonb, containsJSON))
		}

		if filter.AllPredicatesMustMatch() {
			expressions = append(expressions, goqu.And(predicateExpressions...))
		} else {
			expressions = append(expressions, goqu.Or(predicateExpressions...))
		}
	}

	return selectStmt.Where(goqu.And(expressions...)), nil
}

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (j *Journal) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if j.logger != nil {
		j.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (j *Journal) logOperation(action string, args ...any) {
	if j.logger != nil {
		j.logger.Info(logMsgOperation+action, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
