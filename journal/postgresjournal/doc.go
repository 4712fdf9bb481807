// Package postgresjournal provides a PostgreSQL implementation of journal.Appender and journal.Reader.
//
// Entries are stored in one table with a BIGSERIAL sequence number, the event type, the occurrence
// time, and JSONB payload and metadata columns. Statements are built with goqu and executed through
// one of three adapters: pgxpool.Pool, sql.DB (lib/pq), or sqlx.DB.
//
// Usage:
//
//	pool, _ := pgxpool.NewWithConfig(ctx, config.PGXPoolConfig(dsn))
//	j, _ := postgresjournal.NewJournalFromPGXPool(pool, postgresjournal.WithLogger(logger))
//	_ = j.CreateTable(ctx)
//	_ = j.Append(ctx, entry)
//	entries, _ := j.Query(ctx, journal.BuildFilter().AnyPredicateOf(journal.P("RecordID", 10)).Finalize())
package postgresjournal
