// Package history records planner runs in SQLite.
//
// Each run keeps its input, dialogue column, detected language, constraints
// snapshot and statistics, plus one row per take. The database lives in the
// configured state directory and is opened with WAL journaling and a busy
// timeout; writes retry on SQLITE_BUSY with bounded backoff.
//
// Schema changes bump schemaVersion in schema.go. An older database is
// rejected with ErrSchemaMismatch and must be purged or deleted.
package history
