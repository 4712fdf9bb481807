// Package main is the circulation command line tool.
//
// It runs command files against an in-memory Library (run), serves the same Library over HTTP (serve),
// and reads the recorded event history of one record back from a PostgreSQL journal (history).
//
// Every operation can be recorded as domain events to a journal:
//   - none: no journal (default)
//   - memory: in-process, useful for debugging a single run
//   - postgres: a PostgreSQL table, through pgx.Pool, sql.DB with lib/pq, or sqlx.DB
//   - kafka: one message per event on a Kafka topic
//
// Structured logs go to stderr through log/slog. With --otlp-endpoint set, traces, metrics, and logs
// are exported over OTLP gRPC, and the Library logs through the OpenTelemetry slog bridge so every
// operation log carries the trace and span id of its circulation.execute span.
package main
