// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PromptStore: Authoritative prompt persistence. Every mutation keeps
//     the derived search index in sync within the same unit of work, and
//     also serves the substring fallback search.
//   - TagStore: Tag persistence, slug lookups and the hard-delete cascade.
//   - SearchIndex: Ranked full-text search over the derived index, plus
//     idempotent bulk (re)population.
//   - Normaliser: Canonicalises raw text for indexing and search.
//   - ConfigStore: Application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
