package answer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`)

// SplitChunks breaks text into chunks of roughly size characters with the
// given overlap. Splitting prefers paragraph boundaries so chunks stay
// readable; a paragraph larger than size is cut on whitespace.
func SplitChunks(text string, size, overlap int) []string {
	if size <= 0 {
		size = 1500
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) > size {
			flush()
			chunks = append(chunks, splitLong(para, size, overlap)...)
			continue
		}
		if current.Len()+len(para)+2 > size {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}

// splitLong cuts an oversized block on whitespace, carrying overlap characters
// into the next piece.
func splitLong(text string, size, overlap int) []string {
	var parts []string
	for len(text) > size {
		cut := size
		// Back up to the last whitespace within the window.
		if idx := strings.LastIndexAny(text[:cut], " \t\n"); idx > size/2 {
			cut = idx
		}
		parts = append(parts, strings.TrimSpace(text[:cut]))
		next := cut - overlap
		if next <= 0 {
			next = cut
		}
		text = text[next:]
	}
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		parts = append(parts, trimmed)
	}
	return parts
}

// RankChunks scores chunks by TF-IDF-weighted overlap with the question's
// terms and returns the k best, in their original document order so the
// stitched context reads front to back.
func RankChunks(question string, chunks []string, k int) []string {
	if k <= 0 || len(chunks) <= k {
		return chunks
	}

	// Document frequencies over the chunk corpus.
	df := make(map[string]int)
	chunkTerms := make([]map[string]int, len(chunks))
	for i, chunk := range chunks {
		tf := termFrequencies(chunk)
		chunkTerms[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	n := float64(len(chunks))
	questionTerms := termFrequencies(question)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(chunks))
	for i := range chunks {
		var score float64
		for term := range questionTerms {
			tf := chunkTerms[i][term]
			if tf == 0 {
				continue
			}
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1.0
			score += float64(tf) * idf
		}
		ranked[i] = scored{index: i, score: score}
	}

	// Stable sort keeps earlier chunks ahead on ties.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	picked := make([]int, 0, k)
	for _, s := range ranked[:k] {
		picked = append(picked, s.index)
	}
	sort.Ints(picked)

	out := make([]string, 0, k)
	for _, idx := range picked {
		out = append(out, chunks[idx])
	}
	return out
}

func termFrequencies(text string) map[string]int {
	tf := make(map[string]int)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		tf[tok]++
	}
	return tf
}
