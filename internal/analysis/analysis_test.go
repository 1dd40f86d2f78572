package analysis

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lesson = `Photosynthesis is the process plants use to convert light into chemical energy. It happens in the chloroplasts of plant cells.

The light reactions capture energy from sunlight. The Calvin cycle then uses that energy to build sugars!

Why does photosynthesis matter? Photosynthesis produces the oxygen we breathe and supports growth of ecosystems.`

func TestAnalyze_BasicStats(t *testing.T) {
	pages := 2
	got := Analyze(lesson, &pages)

	assert.Equal(t, len(strings.Fields(lesson)), got.BasicStats.WordCount)
	assert.Equal(t, len([]rune(lesson)), got.BasicStats.CharCount)
	assert.Equal(t, 3, got.BasicStats.LineCount)
	assert.Equal(t, 3, got.BasicStats.ParagraphCount)
	require.NotNil(t, got.BasicStats.PageCount)
	assert.Equal(t, 2, *got.BasicStats.PageCount)
	assert.Equal(t, "1 minute(s)", got.ContentAnalysis.ReadingTime)
	assert.Len(t, got.KeyInsights, 4)
	assert.Equal(t, lesson, got.Preview)
}

func TestAnalyze_PageCountOnlyWhenPositive(t *testing.T) {
	zero := 0
	assert.Nil(t, Analyze(lesson, &zero).BasicStats.PageCount)
	assert.Nil(t, Analyze(lesson, nil).BasicStats.PageCount)

	one := 1
	got := Analyze(lesson, &one).BasicStats.PageCount
	require.NotNil(t, got)
	assert.Equal(t, 1, *got)
}

func TestAnalyze_EmptyText(t *testing.T) {
	got := Analyze("", nil)

	want := DocumentAnalysis{
		BasicStats: BasicStats{},
		ContentAnalysis: ContentAnalysis{
			TopKeywords:      []string{},
			ReadingTime:      "0 minute(s)",
			LanguageDetected: "English",
			Sentiment:        SentimentNeutral,
			Complexity:       ComplexityLow,
		},
		KeyInsights: []string{
			"This is a concise document with focused content",
			"This is a quick read that can be consumed in a short time",
			"Content is organized in concise, digestible sections",
			"Content uses focused terminology with consistent key concepts",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Analyze(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestSentencesLinesParagraphs(t *testing.T) {
	text := "One. Two!! Three?\n\n  \nFour"
	assert.Equal(t, []string{"One", " Two", " Three", "\n\n  \nFour"}, Sentences(text))
	assert.Equal(t, []string{"One. Two!! Three?", "Four"}, Lines(text))
	assert.Len(t, Paragraphs(text), 2)
	assert.Empty(t, Sentences("...!?"))
}

func TestTopKeywords(t *testing.T) {
	words := Words("Energy energy ENERGY, plants plants water the their about cells. cells sun")
	assert.Equal(t, []string{"energy", "plants", "cells", "water"}, TopKeywords(words, 8))
	assert.Equal(t, []string{"energy"}, TopKeywords(words, 1))
}

func TestTopKeywords_Limit(t *testing.T) {
	words := Words("alpha bravo charlie delta echoes foxtrot golfer hotel india juliet")
	got := TopKeywords(words, 8)
	assert.Len(t, got, 8)
	assert.Equal(t, "alpha", got[0])
}

func TestSentiment(t *testing.T) {
	assert.Equal(t, SentimentPositive, Sentiment("A great and effective solution with real growth."))
	assert.Equal(t, SentimentNegative, Sentiment("The main problem is the risk of failure and loss."))
	assert.Equal(t, SentimentNeutral, Sentiment("A good plan with one problem."))
	assert.Equal(t, SentimentNeutral, Sentiment("Nothing to see."))
}

func TestComplexity(t *testing.T) {
	simple := Words("The cat sat. The dog ran.")
	assert.Equal(t, ComplexityLow, Complexity(simple, Sentences("The cat sat. The dog ran.")))

	long := Words("Comprehensive architectural considerations fundamentally transform organizational behaviour")
	assert.Equal(t, ComplexityHigh, Complexity(long, []string{"x"}))

	wordy := Words(strings.Repeat("word ", 17))
	assert.Equal(t, ComplexityMedium, Complexity(wordy, []string{"x"}))

	assert.Equal(t, ComplexityLow, Complexity(nil, nil))
	assert.Equal(t, ComplexityHigh, Complexity(Words(strings.Repeat("a ", 25)), nil))
}

func TestKeyInsights_Thresholds(t *testing.T) {
	words := make([]string, 6000)
	for i := range words {
		words[i] = "same"
	}
	got := KeyInsights(words, BasicStats{WordCount: 6000, ParagraphCount: 10})
	assert.Equal(t, []string{
		"This is a comprehensive document with substantial content",
		"This document requires moderate time investment to read thoroughly",
		"Document contains detailed paragraphs with comprehensive explanations",
		"Content uses focused terminology with consistent key concepts",
	}, got)

	got = KeyInsights(Words("every word here differs"), BasicStats{WordCount: 4, ParagraphCount: 1})
	assert.Equal(t, "Document demonstrates rich vocabulary and varied language use", got[3])
}

func TestSummarize(t *testing.T) {
	sentences := Sentences(lesson)
	summary := Summarize(lesson, sentences)
	assert.NotEmpty(t, summary)

	picked := 0
	for _, s := range sentences {
		if strings.Contains(summary, strings.TrimSpace(s)) {
			picked++
		}
	}
	assert.Equal(t, 3, picked)
	assert.Equal(t, "", Summarize("", nil))
}

func TestSummarize_KeepsDocumentOrder(t *testing.T) {
	text := "Alpha beta. Gamma delta. Epsilon zeta"
	assert.Equal(t, "Alpha beta Gamma delta Epsilon zeta", Summarize(text, Sentences(text)))
}

func TestPreviewAndAverages(t *testing.T) {
	long := strings.Repeat("é", 600)
	p := Preview(long)
	assert.True(t, strings.HasSuffix(p, "..."))
	assert.Equal(t, 503, len([]rune(p)))

	assert.Equal(t, 0.0, AverageWordLength(nil))
	assert.Equal(t, 3.0, AverageWordLength([]string{"ab", "abcd"}))
	assert.Equal(t, "3 minute(s)", ReadingTime(401))
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "English", DetectLanguage(lesson))
	assert.Equal(t, "English", DetectLanguage(""))
}
