package utils

import "unicode"

// SplitText cuts text into chunks of roughly chunkSize runes with
// overlap runes of shared context between neighbours. Cuts prefer the
// last whitespace inside the final tenth of a chunk so words survive
// the boundary; a chunk with no late whitespace is cut hard.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := end
		for i := end - 1; i > end-chunkSize/10; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[start:cut]))
	}

	return chunks
}
