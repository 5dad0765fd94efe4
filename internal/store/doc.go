// Package store provides the durable command journal.
//
// Every command the kernel bridge issues (option pushes, primitive
// definitions, script statements, direct boolean calls, synchronize
// barriers, deferred flushes, finalization) can be recorded as one row,
// ordered by a strictly increasing per-session sequence number and
// identified by a content-addressed SHA-256 id over the canonical
// encoding of the record.
//
// The journal is an audit and replay-inspection surface, not a source
// of truth: the kernel's model graph is authoritative, and the builder
// works identically with no journal attached. Idempotent writes
// (ON CONFLICT DO NOTHING on the content id) make re-recording a
// replayed session harmless.
//
// Uses SQLite with WAL mode for concurrent read access.
package store
