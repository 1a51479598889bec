// Package collection persists each user's board game collection in SQLite.
//
// The Store owns the database connection, schema initialization, ownership
// queries, and the bulk add used by the commit engine. Rows are unique on
// (user_id, game_id); Add inserts with ON CONFLICT DO NOTHING, so the
// database conflict key, not any in-memory check, is the authoritative
// guard against duplicate rows when commits race.
//
// Schema changes bump schemaVersion in schema.go; the database is cheap to
// rebuild from a fresh scan, so there is no migration chain.
package collection
