// Package domain defines the core business entities for promptstash.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Prompt: A stored text prompt with tags, pin state and soft-delete marker
//   - Tag: A named label with a unique slug
//   - SearchQuery / SearchPage: The search contract exposed by the facade
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
