// Package domain defines the core business entities for the docchat
// retrieval pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A bounded passage of source text produced by the splitter
//   - IndexEntry: The unit stored in the vector index
//   - SearchResult: A scored retrieval hit
//   - PageFragment: A positioned text fragment from page extraction
//   - IndexExport: The versioned persistence envelope for an index
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
