package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"rules-bot/internal/core/domain"
	"rules-bot/internal/core/ports"
)

type indexedSection struct {
	section   domain.RuleSection
	embedding []float32
}

// Retriever ranks rule sections against a question by cosine similarity of
// their embeddings. The index is built once and never mutated afterwards.
type Retriever struct {
	embedder ports.Embedder
	topK     int
	index    []indexedSection
}

func NewRetriever(embedder ports.Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{embedder: embedder, topK: topK}
}

// Index embeds every section. Sections are embedded one at a time.
func (r *Retriever) Index(ctx context.Context, sections []domain.RuleSection) error {
	if len(sections) == 0 {
		return fmt.Errorf("no rule sections to index")
	}

	index := make([]indexedSection, 0, len(sections))
	for _, sec := range sections {
		emb, err := r.embedder.Embed(ctx, sec.Text)
		if err != nil {
			return fmt.Errorf("embed section %q: %w", sec.Section, err)
		}
		index = append(index, indexedSection{section: sec, embedding: emb})
	}

	r.index = index
	slog.Info("Indexed rule sections", "count", len(index))
	return nil
}

func (r *Retriever) Len() int {
	return len(r.index)
}

func (r *Retriever) Relevant(ctx context.Context, question string) ([]domain.ScoredSection, error) {
	query, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}
	return rank(r.index, query, r.topK), nil
}

func rank(index []indexedSection, query []float32, topK int) []domain.ScoredSection {
	results := make([]domain.ScoredSection, 0, len(index))
	for _, item := range index {
		results = append(results, domain.ScoredSection{
			RuleSection: item.section,
			Score:       cosineSimilarity(query, item.embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
