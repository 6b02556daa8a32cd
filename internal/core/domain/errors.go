package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Initialization errors.

	// ErrNotInitialized indicates the pipeline has not been constructed
	// or its index has been torn down.
	ErrNotInitialized = errors.New("pipeline not initialized")

	// ErrInvalidCredential indicates the caller-supplied credential is
	// missing or fails the minimal shape check.
	ErrInvalidCredential = errors.New("invalid credential")

	// Pipeline errors.

	// ErrEmbeddingFailed indicates the external embedding call failed
	// after exhausting retries.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrRetrievalFailed indicates the search subsystem failed on a
	// mandatory step.
	ErrRetrievalFailed = errors.New("retrieval failed")

	// ErrGenerationFailed indicates the chat/completion call failed.
	ErrGenerationFailed = errors.New("generation failed")

	// Import validation errors.

	// ErrInvalidFormat indicates an export blob is malformed or carries
	// an unknown version tag.
	ErrInvalidFormat = errors.New("invalid export format")

	// ErrDimensionMismatch indicates an export blob was produced with a
	// different embedding dimension than the current configuration.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
