package tutor

import (
	"fmt"
	"sort"
	"strings"

	"robotics-tutor-be/pkg/rag/intent"
	"robotics-tutor-be/pkg/store"
)

const (
	resourcePreviewLimit = 150
	contextPreviewLimit  = 200
	maxResources         = 3
	maxFollowUps         = 3
	maxInjectedChunks    = 2
)

// FormatAnswer wraps an (already enhanced) answer in the tutor response
// template. With tutor mode off it is the identity on the answer.
func FormatAnswer(answer string, chunks []store.RetrievedChunk, query string, tutorMode bool, intentData *intent.Result) string {
	if !tutorMode {
		return answer
	}

	var b strings.Builder

	b.WriteString("## 🎓 Physical AI & Humanoid Robotics Tutor Response\n\n")
	b.WriteString(fmt.Sprintf("**Query:** %s\n\n", query))
	b.WriteString(fmt.Sprintf("%s\n\n", answer))

	if len(chunks) > 0 {
		b.WriteString("### 📚 Relevant Resources:\n")
		shown := chunks
		if len(shown) > maxResources {
			shown = shown[:maxResources]
		}
		for i, chunk := range shown {
			b.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, preview(chunk.Content, resourcePreviewLimit), chunk.URL))
			b.WriteString(fmt.Sprintf("   *Relevance Score: %.3f*\n\n", chunk.SimilarityScore))
		}
	}

	followUps := GenerateFollowUps(query, intentData)
	if len(followUps) > 0 {
		b.WriteString("### ❓ **Follow-up Questions:**\n")
		if len(followUps) > maxFollowUps {
			followUps = followUps[:maxFollowUps]
		}
		for i, question := range followUps {
			b.WriteString(fmt.Sprintf("%d. %s\n\n", i+1, question))
		}
	}

	if intentData.PrimaryIntent == intent.TutorRequest || intentData.PrimaryIntent == intent.Clarification {
		b.WriteString("### 🎯 **Learning Objectives:**\n")
		b.WriteString("1. Understand the core concepts explained\n")
		b.WriteString("2. Apply the knowledge to practical scenarios\n")
		b.WriteString("3. Connect with related topics\n\n")
	}

	return b.String()
}

// InjectContext appends a compact reference block to a non-tutor answer,
// citing the two highest-scoring chunks. Note this re-sorts by similarity,
// unlike the retrieval-ordered context block.
func InjectContext(answer string, chunks []store.RetrievedChunk) string {
	if len(chunks) == 0 {
		return answer
	}

	sorted := make([]store.RetrievedChunk, len(chunks))
	copy(sorted, chunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SimilarityScore > sorted[j].SimilarityScore
	})
	if len(sorted) > maxInjectedChunks {
		sorted = sorted[:maxInjectedChunks]
	}

	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\n\n📚 **Reference Materials:** The following information was sourced from our knowledge base:\n\n")

	for i, chunk := range sorted {
		b.WriteString(fmt.Sprintf("**Source %d:** [%s](%s)\n", i+1, chunk.URL, chunk.URL))
		b.WriteString(fmt.Sprintf("**Relevance:** %.3f\n", chunk.SimilarityScore))
		b.WriteString(fmt.Sprintf("**Content:** %s\n\n", preview(chunk.Content, contextPreviewLimit)))
	}

	return b.String()
}

func preview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
