// Package analysis computes heuristic statistics, keywords, sentiment,
// complexity, insights and an extractive summary for plain text. All
// functions are pure and safe on empty input.
package analysis

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	wordsPerMinute   = 200
	previewLength    = 500
	maxTopKeywords   = 8
	summarySentences = 3
)

type BasicStats struct {
	WordCount      int  `json:"wordCount"`
	CharCount      int  `json:"charCount"`
	LineCount      int  `json:"lineCount"`
	ParagraphCount int  `json:"paragraphCount"`
	PageCount      *int `json:"pageCount,omitempty"`
}

type ContentAnalysis struct {
	TopKeywords       []string `json:"topKeywords"`
	AverageWordLength float64  `json:"averageWordLength"`
	ReadingTime       string   `json:"readingTime"`
	LanguageDetected  string   `json:"languageDetected"`
	Sentiment         string   `json:"sentiment"`
	Complexity        string   `json:"complexity"`
}

type DocumentAnalysis struct {
	BasicStats      BasicStats      `json:"basicStats"`
	ContentAnalysis ContentAnalysis `json:"contentAnalysis"`
	KeyInsights     []string        `json:"keyInsights"`
	Summary         string          `json:"summary"`
	Preview         string          `json:"preview"`
}

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
)

// Words returns the whitespace-delimited tokens of text.
func Words(text string) []string {
	return strings.Fields(text)
}

// Sentences splits on runs of terminal punctuation and drops blank pieces.
// Pieces are returned untrimmed.
func Sentences(text string) []string {
	return nonBlank(sentenceSplit.Split(text, -1))
}

func Lines(text string) []string {
	return nonBlank(strings.Split(text, "\n"))
}

func Paragraphs(text string) []string {
	return nonBlank(paragraphSplit.Split(text, -1))
}

func nonBlank(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// Analyze runs every heuristic over text. pageCount is reported only when
// the source format has pages and at least one was read.
func Analyze(text string, pageCount *int) DocumentAnalysis {
	words := Words(text)
	sentences := Sentences(text)

	stats := BasicStats{
		WordCount:      len(words),
		CharCount:      utf8.RuneCountInString(text),
		LineCount:      len(Lines(text)),
		ParagraphCount: len(Paragraphs(text)),
	}
	if pageCount != nil && *pageCount > 0 {
		pages := *pageCount
		stats.PageCount = &pages
	}

	return DocumentAnalysis{
		BasicStats: stats,
		ContentAnalysis: ContentAnalysis{
			TopKeywords:       TopKeywords(words, maxTopKeywords),
			AverageWordLength: AverageWordLength(words),
			ReadingTime:       ReadingTime(len(words)),
			LanguageDetected:  DetectLanguage(text),
			Sentiment:         Sentiment(text),
			Complexity:        Complexity(words, sentences),
		},
		KeyInsights: KeyInsights(words, stats),
		Summary:     Summarize(text, sentences),
		Preview:     Preview(text),
	}
}

func AverageWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += utf8.RuneCountInString(w)
	}
	return float64(total) / float64(len(words))
}

func readingMinutes(wordCount int) int {
	return int(math.Ceil(float64(wordCount) / wordsPerMinute))
}

// ReadingTime assumes 200 words per minute.
func ReadingTime(wordCount int) string {
	return fmt.Sprintf("%d minute(s)", readingMinutes(wordCount))
}

// Preview returns the first 500 characters, with an ellipsis when cut.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	return string([]rune(text)[:previewLength]) + "..."
}
