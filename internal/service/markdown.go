package service

import (
	"bytes"

	"saathi/internal/domain"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM))
	htmlClean = bluemonday.UGCPolicy()
)

// RenderMarkdown converts model markdown into sanitized HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", domain.NewInternalError("Failed to render markdown", err)
	}
	return htmlClean.Sanitize(buf.String()), nil
}
