package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
	"github.com/frederico-kluser/docchat/internal/logger"
)

const rerankMaxTokens = 100

// Retriever answers similarity queries over the active document. Vector
// search is the primary path; when it fails the retriever degrades to
// keyword search over the same entries. Optional LLM reranking and
// adjacent-chunk expansion refine the candidate set.
type Retriever struct {
	embedder *Embedder
	index    driven.VectorIndex
	keyword  driven.KeywordIndex
	chat     driven.ChatClient
	cfg      domain.Config
}

// NewRetriever creates a Retriever. keyword and chat may be nil, which
// disables the degraded fallback and reranking respectively.
func NewRetriever(embedder *Embedder, index driven.VectorIndex, keyword driven.KeywordIndex, chat driven.ChatClient, cfg domain.Config) *Retriever {
	return &Retriever{embedder: embedder, index: index, keyword: keyword, chat: chat, cfg: cfg}
}

// Retrieve returns the passages most relevant to query, best first.
func (r *Retriever) Retrieve(ctx context.Context, query string, opts domain.RetrieveOptions) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("retriever: %w: empty query", domain.ErrInvalidInput)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = r.cfg.RetrieveLimit
	}
	if limit <= 0 {
		limit = domain.DefaultRetrieveLimit
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = r.cfg.SimilarityThreshold
	}

	// Over-fetch so reranking has candidates to demote.
	candidates, err := r.search(ctx, query, limit*2, threshold)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if opts.UseReranking && r.chat != nil && len(candidates) > 1 {
		candidates = r.rerank(ctx, query, candidates)
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if opts.IncludeContext {
		r.expandAdjacent(candidates)
	}

	return candidates, nil
}

func (r *Retriever) search(ctx context.Context, query string, limit int, threshold float64) ([]domain.SearchResult, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err == nil {
		results, searchErr := r.index.Search(vec, limit, threshold)
		if searchErr == nil {
			return results, nil
		}
		err = searchErr
	}

	logger.Warn("Vector search unavailable, degrading to keyword search: %v", err)
	results, kwErr := r.keywordSearch(query, limit)
	if kwErr != nil {
		return nil, fmt.Errorf("%w: vector: %v; keyword: %v", domain.ErrRetrievalFailed, err, kwErr)
	}
	return results, nil
}

func (r *Retriever) keywordSearch(query string, limit int) ([]domain.SearchResult, error) {
	if r.keyword == nil {
		return nil, errors.New("no keyword index configured")
	}
	hits, err := r.keyword.Search(query, limit)
	if err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		entry, err := r.index.Get(hit.ID)
		if err != nil {
			continue
		}
		results = append(results, domain.SearchResult{Entry: entry, Score: hit.Score, Origin: "keyword"})
	}
	return results, nil
}

// rerank asks the chat model to reorder candidates by relevance to the
// query. Any failure, including an unparseable ranking, keeps the
// original similarity ordering.
func (r *Retriever) rerank(ctx context.Context, query string, candidates []domain.SearchResult) []domain.SearchResult {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Pergunta: %s\n\nTrechos:\n", query)
	for i, c := range candidates {
		fmt.Fprintf(&prompt, "%d. %s\n", i+1, c.Entry.Text)
	}
	prompt.WriteString("\nOrdene os trechos do mais relevante para o menos relevante em relação à pergunta. Responda APENAS com os números separados por vírgula, por exemplo: 3,1,2")

	result, err := r.chat.Chat(ctx, []driven.ChatMessage{
		{Role: "user", Content: prompt.String()},
	}, driven.ChatOptions{MaxTokens: rerankMaxTokens, Temperature: 0})
	if err != nil {
		logger.Warn("Rerank call failed, keeping similarity order: %v", err)
		return candidates
	}

	order, ok := parseRanking(result.Content, len(candidates))
	if !ok {
		logger.Warn("Rerank response unparseable, keeping similarity order: %q", result.Content)
		return candidates
	}

	reordered := make([]domain.SearchResult, 0, len(candidates))
	for _, idx := range order {
		reordered = append(reordered, candidates[idx])
	}
	return reordered
}

// parseRanking parses a comma-separated list of 1-based positions into a
// permutation of [0, n). Positions the model omitted are appended in
// their original order.
func parseRanking(response string, n int) ([]int, bool) {
	response = strings.TrimSpace(response)
	seen := make(map[int]bool, n)
	order := make([]int, 0, n)
	for _, part := range strings.Split(response, ",") {
		pos, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, false
		}
		idx := pos - 1
		if idx < 0 || idx >= n || seen[idx] {
			return nil, false
		}
		seen[idx] = true
		order = append(order, idx)
	}
	if len(order) == 0 {
		return nil, false
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			order = append(order, i)
		}
	}
	return order, true
}

// expandAdjacent widens each result's text with the chunks immediately
// before and after it on the same page, when they exist. Scores and
// metadata are untouched.
func (r *Retriever) expandAdjacent(results []domain.SearchResult) {
	for i := range results {
		meta := results[i].Entry.Metadata
		text := results[i].Entry.Text

		prevID := domain.EntryID(meta.SourceDocument, meta.PageNumber, meta.ChunkIndexOnPage-1)
		if prev, err := r.index.Get(prevID); err == nil {
			text = prev.Text + "\n" + text
		}
		nextID := domain.EntryID(meta.SourceDocument, meta.PageNumber, meta.ChunkIndexOnPage+1)
		if next, err := r.index.Get(nextID); err == nil {
			text = text + "\n" + next.Text
		}

		results[i].Entry.Text = text
	}
}
