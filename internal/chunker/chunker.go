// Package chunker turns extracted page text into overlapping,
// retrieval-sized chunks. It hosts the text splitter and the positioned
// page-text reconstructor.
package chunker

import (
	"strings"

	"github.com/frederico-kluser/docchat/internal/core/domain"
)

// separators are tried in priority order when a fragment exceeds the
// chunk size: paragraph breaks first, single words last.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ": ", " "}

// Splitter splits raw text into chunks bounded by an estimated token
// size, seeding each chunk with an overlap tail from its predecessor to
// preserve cross-chunk continuity for retrieval.
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter creates a splitter with the given chunk size and overlap,
// both in estimated tokens. Non-positive values fall back to defaults.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = domain.DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 10
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split returns the ordered chunk strings for text. Empty or
// whitespace-only input yields no chunks. A single sentence longer than
// the chunk size is emitted as one oversized chunk; text is never
// silently dropped.
func (s *Splitter) Split(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if domain.EstimateTokens(trimmed) <= s.chunkSize {
		return []string{trimmed}
	}

	sentences := s.fragments(trimmed)

	var chunks []string
	var current string
	for _, sentence := range sentences {
		candidate := sentence
		if current != "" {
			candidate = current + " " + sentence
		}
		if current != "" && domain.EstimateTokens(candidate) > s.chunkSize {
			chunks = append(chunks, current)
			tail := s.overlapTail(current)
			if tail != "" {
				current = tail + " " + sentence
			} else {
				current = sentence
			}
			continue
		}
		current = candidate
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// fragments splits text progressively: each separator in priority order
// is applied only to pieces still exceeding the chunk size. Empty
// fragments are discarded.
func (s *Splitter) fragments(text string) []string {
	parts := []string{text}
	for _, sep := range separators {
		var next []string
		for _, part := range parts {
			if domain.EstimateTokens(part) <= s.chunkSize {
				next = append(next, part)
				continue
			}
			for _, piece := range strings.Split(part, sep) {
				piece = strings.TrimSpace(piece)
				if piece != "" {
					next = append(next, piece)
				}
			}
		}
		parts = next
	}
	return parts
}

// overlapTail returns the trailing whole words of chunk worth at most the
// overlap token budget. Words are never split.
func (s *Splitter) overlapTail(chunk string) string {
	if s.overlap == 0 {
		return ""
	}
	words := strings.Fields(chunk)
	budget := s.overlap
	start := len(words)
	for start > 0 {
		cost := domain.EstimateTokens(words[start-1]) + 1
		if cost > budget {
			break
		}
		budget -= cost
		start--
	}
	if start == len(words) {
		return ""
	}
	return strings.Join(words[start:], " ")
}
