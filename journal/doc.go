// Package journal defines the append-only audit trail that circulation events are written to.
//
// An Entry is a scalar DTO (event type, occurrence time, payload JSON, metadata JSON) so that
// journal backends stay agnostic of the domain event structs. Backends implement Appender and,
// where they can read back, Reader:
//
//   - MemoryJournal keeps entries in process memory
//   - postgresjournal writes to a PostgreSQL table via pgx, database/sql or sqlx
//   - kafkajournal publishes entries to a Kafka topic
//
// The journal is write-mostly: nothing in the circulation reads it to rebuild state.
// Reader exists for inspection and auditing.
package journal
