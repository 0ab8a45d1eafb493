// Package domain defines the core business entities for levelscout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FilterSpec: A parsed, validated search command
//   - CandidateRef: A remote search hit before detail is fetched
//   - DetailRecord: Full per-level data fetched by id
//   - Match: A detail record that passed all active filters
//   - Session: Per-invocation pagination state over a fixed match list
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
