// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingClient: External embedding endpoint
//   - ChatClient: External chat/completion endpoint (blocking + streaming)
//   - VectorIndex: In-memory vector storage and similarity search
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - KeywordIndex: Plain text search used as the degraded-mode fallback
//     when vector search errors.
//   - PageExtractor: Positioned-fragment page extraction. Callers that
//     already hold extracted pages pass them directly to ingestion.
//   - ConfigStore: Configuration persistence.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
