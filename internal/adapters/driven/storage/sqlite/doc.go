// Package sqlite provides a unified SQLite-based implementation of the
// storage port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It implements multiple
// store interfaces through a single database connection:
//
//   - PromptStore: Authoritative prompt persistence and the substring
//     fallback search
//   - TagStore: Tag persistence and the hard-delete cascade
//   - SearchIndex: Ranked FTS5 search and bulk index population
//
// # Index Synchronisation
//
// The derived prompts_fts table is maintained by explicit hook methods
// (indexSync) that the prompt and tag stores invoke inside the same
// transaction as the triggering mutation. There are no database triggers:
// the synchronisation contract lives in Go, where it is portable and
// testable, and a failed hook rolls the whole mutation back.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory as .up.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.promptstash/data/promptstash.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
