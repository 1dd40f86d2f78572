package analysis

import (
	"regexp"
	"sort"
	"strings"
)

var nonWordChars = regexp.MustCompile(`[^\w]`)

var stopWords = toSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"this", "that", "these", "those", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would", "could", "should",
	"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
	"my", "your", "his", "its", "our", "their", "from", "up", "about", "into",
	"through", "during", "before", "after", "above", "below", "between", "among",
	"since", "until", "while", "although", "though", "because", "if", "when", "where",
	"how", "what", "which", "who", "whom", "whose", "why", "can", "may", "might",
	"must", "shall", "very", "too", "so", "just", "now", "then", "here", "there",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord is case-insensitive.
func IsStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

// TopKeywords normalises words (lowercase, word characters only), drops
// stop words and words of three characters or fewer, and returns up to n
// by descending frequency. Ties keep first-occurrence order.
func TopKeywords(words []string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		norm := nonWordChars.ReplaceAllString(strings.ToLower(w), "")
		if len(norm) <= 3 || IsStopWord(norm) {
			continue
		}
		if counts[norm] == 0 {
			order = append(order, norm)
		}
		counts[norm]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	if order == nil {
		return []string{}
	}
	return order
}
