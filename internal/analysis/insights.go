package analysis

import "strings"

// KeyInsights returns one observation each about length, reading time,
// paragraph structure and vocabulary diversity.
func KeyInsights(words []string, stats BasicStats) []string {
	insights := make([]string, 0, 4)

	switch {
	case stats.WordCount > 5000:
		insights = append(insights, "This is a comprehensive document with substantial content")
	case stats.WordCount > 1000:
		insights = append(insights, "This document contains moderate-length content")
	default:
		insights = append(insights, "This is a concise document with focused content")
	}

	minutes := readingMinutes(stats.WordCount)
	switch {
	case minutes > 30:
		insights = append(insights, "Estimated reading time suggests this is an in-depth material")
	case minutes > 10:
		insights = append(insights, "This document requires moderate time investment to read thoroughly")
	default:
		insights = append(insights, "This is a quick read that can be consumed in a short time")
	}

	var perParagraph float64
	if stats.ParagraphCount > 0 {
		perParagraph = float64(stats.WordCount) / float64(stats.ParagraphCount)
	}
	switch {
	case perParagraph > 100:
		insights = append(insights, "Document contains detailed paragraphs with comprehensive explanations")
	case perParagraph > 50:
		insights = append(insights, "Well-structured content with balanced paragraph lengths")
	default:
		insights = append(insights, "Content is organized in concise, digestible sections")
	}

	switch diversity := vocabularyDiversity(words); {
	case diversity > 0.6:
		insights = append(insights, "Document demonstrates rich vocabulary and varied language use")
	case diversity > 0.4:
		insights = append(insights, "Moderate vocabulary diversity with some repetition of key terms")
	default:
		insights = append(insights, "Content uses focused terminology with consistent key concepts")
	}

	return insights
}

func vocabularyDiversity(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}
	return float64(len(unique)) / float64(len(words))
}
