package analysis

import "github.com/abadojack/whatlanggo"

const defaultLanguage = "English"

// DetectLanguage names the dominant language of text, falling back to
// English when the detector is not confident.
func DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return defaultLanguage
	}
	name := info.Lang.String()
	if name == "" {
		return defaultLanguage
	}
	return name
}
