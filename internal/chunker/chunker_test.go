package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frederico-kluser/docchat/internal/core/domain"
)

func TestSplit_EmptyInput(t *testing.T) {
	s := NewSplitter(100, 10)

	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\t  "))
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(100, 10)

	chunks := s.Split("Uma frase curta.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "Uma frase curta.", chunks[0])
}

func TestSplit_ParagraphPriority(t *testing.T) {
	s := NewSplitter(12, 0)

	text := strings.TrimSpace(strings.Repeat("palavra ", 4)) + "\n\n" +
		strings.TrimSpace(strings.Repeat("outra ", 5))
	chunks := s.Split(text)
	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0], "palavra")
	assert.Contains(t, chunks[1], "outra")
	assert.NotContains(t, chunks[0], "outra")
}

func TestSplit_SizeBound(t *testing.T) {
	const chunkSize = 50
	s := NewSplitter(chunkSize, 5)

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Esta frase tem algumas palavras comuns. ")
	}
	chunks := s.Split(b.String())
	require.Greater(t, len(chunks), 1)

	// Token counts are an approximation, so allow 10% slack.
	slack := float64(chunkSize) * 1.1
	limit := int(slack)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, domain.EstimateTokens(chunk), limit, "chunk %d over budget", i)
	}
}

func TestSplit_NoTextDropped(t *testing.T) {
	s := NewSplitter(30, 5)

	text := "O gato subiu no telhado. O cachorro latiu no quintal. " +
		"A chuva caiu durante a noite. O sol nasceu pela manhã. " +
		"As crianças foram para a escola. O dia terminou tranquilo."
	chunks := s.Split(text)
	require.NotEmpty(t, chunks)

	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(strings.NewReplacer(".", "", ",", "").Replace(text)) {
		assert.Contains(t, joined, word)
	}
}

func TestSplit_ConsecutiveChunksShareOverlapWords(t *testing.T) {
	s := NewSplitter(30, 10)

	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("Frase numero um fala de assuntos variados e interessantes. ")
	}
	chunks := s.Split(b.String())
	require.Greater(t, len(chunks), 1)

	for i := 0; i < len(chunks)-1; i++ {
		tailWords := strings.Fields(chunks[i])
		headWords := strings.Fields(chunks[i+1])
		require.NotEmpty(t, tailWords)
		require.NotEmpty(t, headWords)

		tail := map[string]bool{}
		for _, w := range tailWords[len(tailWords)-min(8, len(tailWords)):] {
			tail[w] = true
		}
		shared := false
		for _, w := range headWords[:min(8, len(headWords))] {
			if tail[w] {
				shared = true
				break
			}
		}
		assert.True(t, shared, "chunks %d and %d share no overlap words", i, i+1)
	}
}

func TestSplit_OversizedSentenceEmittedWhole(t *testing.T) {
	s := NewSplitter(10, 0)

	// A single "sentence" with no separators other than spaces still gets
	// split at word level; one giant unbreakable token must survive whole.
	giant := strings.Repeat("x", 200)
	chunks := s.Split("curto. " + giant + ". fim.")
	joined := strings.Join(chunks, " ")
	assert.Contains(t, joined, giant)
}

func TestNewSplitter_Defaults(t *testing.T) {
	s := NewSplitter(0, -1)
	assert.Equal(t, domain.DefaultChunkSize, s.chunkSize)
	assert.Equal(t, domain.DefaultChunkSize/10, s.overlap)
}
