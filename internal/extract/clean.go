package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	blankRun        = regexp.MustCompile(`[ \t]+`)
	extraNewlines   = regexp.MustCompile(`\n{3,}`)
	spaceBeforePunc = regexp.MustCompile(`\s+([.,;:!?])`)
	puncThenLetter  = regexp.MustCompile(`([.,;:!?])([a-zA-Z])`)
	joinedWords     = regexp.MustCompile(`([a-z])([A-Z][a-z])`)
	alnumChar       = regexp.MustCompile(`^[a-zA-Z0-9]$`)
	upperChar       = regexp.MustCompile(`^[A-Z]$`)
)

const punctuation = ".,;:!?"

// CleanText normalises text pulled out of a PDF: blanks are collapsed,
// blank lines capped at one, punctuation spacing fixed, words glued at a
// lower/Upper boundary split apart and every line trimmed. Text that looks
// character-separated is passed through ReconstructWords.
func CleanText(text string) string {
	text = blankRun.ReplaceAllString(text, " ")
	text = extraNewlines.ReplaceAllString(text, "\n\n")
	text = spaceBeforePunc.ReplaceAllString(text, "${1}")
	text = puncThenLetter.ReplaceAllString(text, "${1} ${2}")
	for i := 0; i < 4; i++ {
		next := joinedWords.ReplaceAllString(text, "${1} ${2}")
		if next == text {
			break
		}
		text = next
	}

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	if text == "" {
		return text
	}
	words := strings.Fields(text)
	total := 0
	for _, w := range words {
		total += utf8.RuneCountInString(w)
	}
	if len(words) > 10 && float64(total)/float64(len(words)) < 2 {
		text = ReconstructWords(text)
	}
	return text
}

func isPunctuation(token string) bool {
	return len(token) == 1 && strings.Contains(punctuation, token)
}

// ReconstructWords glues runs of single letters or digits back into words.
// A word ends at punctuation, at a multi-character token, or before a
// single uppercase letter.
func ReconstructWords(text string) string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return text
	}

	var out []string
	current := ""
	flush := func() {
		if current != "" {
			out = append(out, current)
			current = ""
		}
	}

	for i, token := range tokens {
		switch {
		case alnumChar.MatchString(token):
			current += token
		default:
			flush()
			out = append(out, token)
		}

		if current != "" && i+1 < len(tokens) {
			next := tokens[i+1]
			if strings.ContainsAny(next, punctuation) || upperChar.MatchString(next) {
				flush()
			}
		}
	}
	flush()

	var sb strings.Builder
	for i, tok := range out {
		sb.WriteString(tok)
		if i+1 < len(out) && !isPunctuation(out[i+1]) {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
