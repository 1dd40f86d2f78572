package analysis

import (
	"sort"
	"strings"
)

type scoredSentence struct {
	text  string
	score float64
	index int
}

// Summarize picks the three sentences whose words are most frequent in the
// whole text, boosting the first three and last two, and returns them in
// document order.
func Summarize(text string, sentences []string) string {
	if len(sentences) == 0 {
		return ""
	}

	freq := make(map[string]int)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		freq[w]++
	}

	scored := make([]scoredSentence, 0, len(sentences))
	for i, s := range sentences {
		words := strings.Fields(strings.ToLower(s))
		var score float64
		if len(words) > 0 {
			sum := 0
			for _, w := range words {
				sum += freq[w]
			}
			score = float64(sum) / float64(len(words))
		}
		if i < 3 || i > len(sentences)-3 {
			score *= 1.2
		}
		scored = append(scored, scoredSentence{text: strings.TrimSpace(s), score: score, index: i})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > summarySentences {
		scored = scored[:summarySentences]
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].index < scored[j].index
	})

	parts := make([]string, len(scored))
	for i, s := range scored {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}
