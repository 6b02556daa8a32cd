package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
	"github.com/frederico-kluser/docchat/internal/core/ports/driving"
	"github.com/frederico-kluser/docchat/internal/logger"
)

// NoInformationAnswer is returned when retrieval finds nothing relevant.
// The model is not called in that case.
const NoInformationAnswer = "Não encontrei informações relevantes no documento para responder a essa pergunta."

const systemPrompt = "Você é um assistente que responde perguntas sobre um documento. " +
	"Responda com base APENAS no contexto fornecido. " +
	"Se o contexto não contiver a informação necessária, diga isso claramente. " +
	"Responda no mesmo idioma da pergunta."

const excerptLength = 120

// Generator turns retrieval results into grounded answers. Answers are
// cached by query plus the fingerprints of the sources they were
// grounded on, so a repeated question over an unchanged index skips the
// model entirely.
type Generator struct {
	retriever *Retriever
	chat      driven.ChatClient
	cache     driven.ResponseCache
	cfg       domain.Config
}

// NewGenerator creates a Generator. cache may be nil to disable answer
// caching.
func NewGenerator(retriever *Retriever, chat driven.ChatClient, cache driven.ResponseCache, cfg domain.Config) *Generator {
	return &Generator{retriever: retriever, chat: chat, cache: cache, cfg: cfg}
}

// Answer generates a grounded response in blocking mode.
func (g *Generator) Answer(ctx context.Context, query string, opts driving.AnswerOptions) (domain.Answer, error) {
	return g.answer(ctx, query, opts, nil)
}

// AnswerStream generates a grounded response, delivering text deltas to
// onDelta as they arrive. Cache hits and the no-information answer are
// delivered as a single delta.
func (g *Generator) AnswerStream(ctx context.Context, query string, opts driving.AnswerOptions, onDelta func(delta string) error) (domain.Answer, error) {
	return g.answer(ctx, query, opts, onDelta)
}

func (g *Generator) answer(ctx context.Context, query string, opts driving.AnswerOptions, onDelta func(delta string) error) (domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Answer{}, fmt.Errorf("generator: %w: empty query", domain.ErrInvalidInput)
	}

	results, err := g.retriever.Retrieve(ctx, query, opts.Retrieve)
	if err != nil {
		return domain.Answer{}, err
	}

	if len(results) == 0 {
		answer := domain.Answer{Content: NoInformationAnswer}
		if err := emit(onDelta, answer.Content); err != nil {
			return domain.Answer{}, err
		}
		return answer, nil
	}

	key := responseKey(query, results)
	if g.cache != nil {
		if cached, ok := g.cache.Get(key); ok {
			logger.Debug("Response cache hit for %q", query)
			cached.Cached = true
			if err := emit(onDelta, cached.Content); err != nil {
				return domain.Answer{}, err
			}
			return cached, nil
		}
	}

	maxContext := opts.MaxContextTokens
	if maxContext <= 0 {
		maxContext = g.cfg.ContextTokens
	}
	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Contexto:\n%s\n\nPergunta: %s", assembleContext(results, maxContext), query)},
	}
	chatOpts := driven.ChatOptions{
		MaxTokens:   g.cfg.AnswerTokens,
		Temperature: g.cfg.Temperature,
	}

	var result *driven.ChatResult
	if onDelta != nil {
		result, err = g.chat.ChatStream(ctx, messages, chatOpts, onDelta)
	} else {
		result, err = g.chat.Chat(ctx, messages, chatOpts)
	}
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	answer := domain.Answer{
		Content:          result.Content,
		Sources:          sourceRefs(results),
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
	}
	if g.cache != nil {
		g.cache.Set(key, answer)
	}
	return answer, nil
}

func emit(onDelta func(delta string) error, text string) error {
	if onDelta == nil {
		return nil
	}
	return onDelta(text)
}

// responseKey fingerprints a generation: the query plus the sorted
// content hashes of its sources. Sorting makes the key independent of
// retrieval ordering.
func responseKey(query string, results []domain.SearchResult) string {
	hashes := make([]string, len(results))
	for i, res := range results {
		hashes[i] = res.Entry.Metadata.ContentHash
	}
	sort.Strings(hashes)
	return query + "|" + strings.Join(hashes, ",")
}

func sourceRefs(results []domain.SearchResult) []domain.SourceRef {
	refs := make([]domain.SourceRef, len(results))
	for i, res := range results {
		excerpt := res.Entry.Text
		if runes := []rune(excerpt); len(runes) > excerptLength {
			excerpt = string(runes[:excerptLength]) + "..."
		}
		refs[i] = domain.SourceRef{
			ID:          res.Entry.ID,
			PageNumber:  res.Entry.Metadata.PageNumber,
			Score:       res.Score,
			ContentHash: res.Entry.Metadata.ContentHash,
			Excerpt:     excerpt,
		}
	}
	return refs
}
