package journal

import (
	"errors"
)

var (
	// ErrInvalidPayloadJSON is returned when an Entry is built from invalid payload JSON.
	ErrInvalidPayloadJSON = errors.New("payload json is not valid")

	// ErrInvalidMetadataJSON is returned when an Entry is built from invalid metadata JSON.
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

	// ErrEmptyTableNameSupplied is returned when an empty table name is configured.
	ErrEmptyTableNameSupplied = errors.New("empty journal table name supplied")

	// ErrNilDatabaseConnection is returned when a nil database connection is supplied.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed is returned when a SQL statement cannot be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingEntriesFailed is returned when reading entries back fails.
	ErrQueryingEntriesFailed = errors.New("querying journal entries failed")

	// ErrScanningDBRowFailed is returned when a database row cannot be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrBuildingEntryFailed is returned when a scanned row does not form a valid Entry.
	ErrBuildingEntryFailed = errors.New("building journal entry failed")

	// ErrAppendingEntriesFailed is returned when entries cannot be written.
	ErrAppendingEntriesFailed = errors.New("appending journal entries failed")

	// ErrCreatingTableFailed is returned when the journal table cannot be created.
	ErrCreatingTableFailed = errors.New("creating journal table failed")
)
