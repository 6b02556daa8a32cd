package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frederico-kluser/docchat/internal/adapters/driven/storage/memory"
	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driving"
)

func newTestGenerator(t *testing.T, chat *fakeChatClient) *Generator {
	t.Helper()
	idx := populatedIndex(t)
	client := &fakeEmbeddingClient{vectors: map[string][]float32{
		"O que o gato faz?":     {1, 0, 0},
		"Qual o tema do texto?": {0, 0, 0},
	}}
	cfg := testConfig()
	retriever := NewRetriever(NewEmbedder(client, nil, cfg), idx, nil, nil, cfg)
	return NewGenerator(retriever, chat, memory.NewResponseCache(10, cfg.ResponseCacheTTL), cfg)
}

func TestAnswer_GroundedResponseWithSources(t *testing.T) {
	chat := &fakeChatClient{response: "O gato dorme no sofá."}
	g := newTestGenerator(t, chat)

	answer, err := g.Answer(context.Background(), "O que o gato faz?", driving.AnswerOptions{})
	require.NoError(t, err)

	assert.Equal(t, "O gato dorme no sofá.", answer.Content)
	assert.False(t, answer.Cached)
	assert.Equal(t, 10, answer.PromptTokens)
	assert.Equal(t, 5, answer.CompletionTokens)
	require.NotEmpty(t, answer.Sources)
	assert.Equal(t, "doc_p1_c0", answer.Sources[0].ID)
	assert.Equal(t, 1, answer.Sources[0].PageNumber)
	assert.NotEmpty(t, answer.Sources[0].Excerpt)

	// The model sees the retrieved passages and the question.
	require.Len(t, chat.lastMsgs, 2)
	assert.Equal(t, "system", chat.lastMsgs[0].Role)
	assert.Contains(t, chat.lastMsgs[1].Content, "gato dorme")
	assert.Contains(t, chat.lastMsgs[1].Content, "O que o gato faz?")
}

func TestAnswer_ZeroResultsSkipsModel(t *testing.T) {
	chat := &fakeChatClient{response: "não deveria ser chamado"}
	g := newTestGenerator(t, chat)

	// Query vector is near-orthogonal to every entry, below the threshold.
	answer, err := g.Answer(context.Background(), "Qual o tema do texto?", driving.AnswerOptions{})
	require.NoError(t, err)

	assert.Equal(t, NoInformationAnswer, answer.Content)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 0, chat.callCount())
}

func TestAnswer_RepeatedQuestionServedFromCache(t *testing.T) {
	chat := &fakeChatClient{response: "O gato dorme no sofá."}
	g := newTestGenerator(t, chat)

	first, err := g.Answer(context.Background(), "O que o gato faz?", driving.AnswerOptions{})
	require.NoError(t, err)
	second, err := g.Answer(context.Background(), "O que o gato faz?", driving.AnswerOptions{})
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, 1, chat.callCount())
}

func TestAnswer_EmptyQueryRejected(t *testing.T) {
	g := newTestGenerator(t, &fakeChatClient{})
	_, err := g.Answer(context.Background(), "", driving.AnswerOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnswer_ModelFailureWrapped(t *testing.T) {
	chat := &fakeChatClient{err: assert.AnError}
	g := newTestGenerator(t, chat)

	_, err := g.Answer(context.Background(), "O que o gato faz?", driving.AnswerOptions{})
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestAnswerStream_DeliversDeltasAndCaches(t *testing.T) {
	chat := &fakeChatClient{response: "O gato dorme no sofá."}
	g := newTestGenerator(t, chat)

	var deltas []string
	answer, err := g.AnswerStream(context.Background(), "O que o gato faz?", driving.AnswerOptions{}, func(delta string) error {
		deltas = append(deltas, delta)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "O gato dorme no sofá.", strings.Join(deltas, ""))
	assert.Equal(t, "O gato dorme no sofá.", answer.Content)
	assert.NotEmpty(t, answer.Sources)

	// A second ask streams the cached answer as a single delta.
	deltas = nil
	cached, err := g.AnswerStream(context.Background(), "O que o gato faz?", driving.AnswerOptions{}, func(delta string) error {
		deltas = append(deltas, delta)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, []string{"O gato dorme no sofá."}, deltas)
	assert.Equal(t, 1, chat.callCount())
}

func TestResponseKey_IndependentOfSourceOrder(t *testing.T) {
	a := domain.SearchResult{Entry: entryAt("doc_p1_c0", "alfa", nil, 1, 0)}
	b := domain.SearchResult{Entry: entryAt("doc_p1_c1", "beta", nil, 1, 1)}

	assert.Equal(t,
		responseKey("pergunta", []domain.SearchResult{a, b}),
		responseKey("pergunta", []domain.SearchResult{b, a}))
	assert.NotEqual(t,
		responseKey("pergunta", []domain.SearchResult{a}),
		responseKey("outra pergunta", []domain.SearchResult{a}))
}

func TestAssembleContext_BudgetAndAnnotation(t *testing.T) {
	results := []domain.SearchResult{
		{Entry: entryAt("doc_p1_c0", strings.Repeat("a", 60), nil, 1, 0), Score: 0.9},
		{Entry: entryAt("doc_p2_c0", strings.Repeat("b", 60), nil, 2, 0), Score: 0.8},
	}

	full := assembleContext(results, 1000)
	assert.Contains(t, full, "[Página 1, relevância 90%]")
	assert.Contains(t, full, "[Página 2, relevância 80%]")
	assert.True(t, strings.Index(full, "aaa") < strings.Index(full, "bbb"))

	// A budget that fits only the first passage drops the second whole.
	tight := assembleContext(results, 30)
	assert.Contains(t, tight, "aaa")
	assert.NotContains(t, tight, "bbb")
}

func TestAssembleContext_ImportanceWeighting(t *testing.T) {
	important := entryAt("doc_p1_c0", "título importante", nil, 1, 0)
	important.Metadata.Importance = 1.5
	plain := entryAt("doc_p2_c0", "texto comum", nil, 2, 0)

	results := []domain.SearchResult{
		{Entry: plain, Score: 0.70},
		{Entry: important, Score: 0.60},
	}
	ctx := assembleContext(results, 1000)
	assert.True(t, strings.Index(ctx, "título importante") < strings.Index(ctx, "texto comum"))
}
