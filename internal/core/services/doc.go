// Package services implements the core orchestration of the question
// answering pipeline: document ingestion, cached embedding, semantic
// retrieval with reranking, context assembly, answer generation and
// index portability. Services depend only on the port interfaces and
// receive their adapters through constructor injection.
package services
