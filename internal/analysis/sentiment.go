package analysis

import "strings"

const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"

	ComplexityHigh   = "High"
	ComplexityMedium = "Medium"
	ComplexityLow    = "Low"
)

var positiveLexicon = []string{
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "positive",
	"successful", "achievement", "growth", "improvement", "benefit", "advantage",
	"opportunity", "solution", "effective", "efficient", "valuable", "important", "significant",
}

var negativeLexicon = []string{
	"bad", "terrible", "awful", "horrible", "negative", "problem", "issue", "challenge",
	"difficulty", "failure", "decline", "decrease", "loss", "risk", "threat", "concern",
	"weakness", "limitation", "obstacle", "barrier",
}

// Sentiment counts how many lexicon entries occur as substrings of the
// lowercased text. One side must outnumber the other by more than 1.5x.
func Sentiment(text string) string {
	lower := strings.ToLower(text)
	pos := countContained(lower, positiveLexicon)
	neg := countContained(lower, negativeLexicon)

	switch {
	case float64(pos) > float64(neg)*1.5:
		return SentimentPositive
	case float64(neg) > float64(pos)*1.5:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func countContained(text string, lexicon []string) int {
	n := 0
	for _, w := range lexicon {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

// Complexity grades text by words per sentence and the share of words
// longer than six characters.
func Complexity(words, sentences []string) string {
	if len(words) == 0 {
		return ComplexityLow
	}
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}

	avgWordsPerSentence := float64(len(words)) / float64(sentenceCount)
	long := 0
	for _, w := range words {
		if len([]rune(w)) > 6 {
			long++
		}
	}
	ratio := float64(long) / float64(len(words))

	switch {
	case avgWordsPerSentence > 20 || ratio > 0.3:
		return ComplexityHigh
	case avgWordsPerSentence > 15 || ratio > 0.2:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}
