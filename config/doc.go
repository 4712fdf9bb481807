// Package config builds the infrastructure clients used by the circulation command:
// PostgreSQL connections for the journal (pgx.Pool, sql.DB via lib/pq, sqlx.DB) and the
// OpenTelemetry providers exporting traces and metrics over OTLP gRPC.
package config
