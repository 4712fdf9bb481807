// Package adapters lets the PostgreSQL journal run on pgxpool.Pool, sql.DB or sqlx.DB.
//
// All three satisfy DBAdapter. The journal builds complete SQL strings with goqu, so the
// adapters only need plain Query and Exec.
package adapters
