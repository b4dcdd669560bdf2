package confidence

import (
	"robotics-tutor-be/pkg/store"
)

// Level is a coarse bucket summarizing how well retrieved chunks support an
// answer.
type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// Score buckets the mean similarity of the retrieved chunks. No chunks at
// all is Low by definition.
func Score(chunks []store.RetrievedChunk) Level {
	if len(chunks) == 0 {
		return Low
	}

	var sum float64
	for _, chunk := range chunks {
		sum += chunk.SimilarityScore
	}
	avg := sum / float64(len(chunks))

	switch {
	case avg >= 0.7:
		return High
	case avg >= 0.4:
		return Medium
	default:
		return Low
	}
}
