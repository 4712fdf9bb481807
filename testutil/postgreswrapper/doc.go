// Package postgreswrapper opens a postgresjournal.Journal for integration tests on a throwaway table.
//
// The driver is chosen by the ADAPTER_TYPE environment variable (pgx.pool, sql.db or sqlx.db; default
// pgx.pool) and the database by POSTGRES_TEST_DSN (default config.DefaultPostgresDSN). Tests are skipped
// when the database can not be reached.
package postgreswrapper
