package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/frederico-kluser/docchat/internal/core/domain"
)

// assembleContext builds the grounding context from retrieval results.
// Passages are ordered by score weighted by structural importance and
// appended whole until the token budget is reached; a passage that would
// overflow the budget is skipped along with everything after it.
func assembleContext(results []domain.SearchResult, maxTokens int) string {
	if len(results) == 0 {
		return ""
	}
	if maxTokens <= 0 {
		maxTokens = domain.DefaultContextTokens
	}

	ranked := make([]domain.SearchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return weightedScore(ranked[i]) > weightedScore(ranked[j])
	})

	var b strings.Builder
	used := 0
	for _, res := range ranked {
		passage := fmt.Sprintf("%s\n[Página %d, relevância %.0f%%]",
			res.Entry.Text, res.Entry.Metadata.PageNumber, res.Score*100)
		cost := domain.EstimateTokens(passage)
		if used+cost > maxTokens {
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(passage)
		used += cost
	}
	return b.String()
}

func weightedScore(res domain.SearchResult) float64 {
	importance := res.Entry.Metadata.Importance
	if importance <= 0 {
		importance = 1.0
	}
	return res.Score * importance
}
