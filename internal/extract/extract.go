// Package extract turns uploaded PDF, DOCX, PPTX and TXT files into plain text.
package extract

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"saathi/internal/domain"
)

const (
	MsgUnsupportedType = "Unsupported file type."
	MsgPDFParse        = "Could not parse PDF file. Please try a different PDF."
	MsgPDFEmpty        = "No text content found in PDF"
	MsgPDFNoReadable   = "No readable text found in PDF"
	MsgDOCXParse       = "Could not parse DOCX file."
	MsgPPTXParse       = "Could not parse PPTX file."
	MsgPPTXEmpty       = "No text content found in PPTX file."
)

// Result is the extracted text of one document. PageCount is set for PDFs.
type Result struct {
	Text      string
	PageCount *int
}

// Extractor dispatches on the file extension.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// SupportedExtension reports whether filename can be extracted.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".pptx", ".txt":
		return true
	}
	return false
}

// Extract reads data according to the extension of filename. PDFs use the
// layout-aware reader followed by CleanText.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, pages, err := PDFLayoutText(data)
		if err != nil {
			return nil, domain.NewDocumentParseError(MsgPDFParse, err)
		}
		return &Result{Text: text, PageCount: &pages}, nil
	case ".docx":
		text, err := DOCXText(data)
		if err != nil {
			return nil, domain.NewDocumentParseError(MsgDOCXParse, err)
		}
		return &Result{Text: text}, nil
	case ".pptx":
		text, err := PPTXText(data)
		if err != nil {
			return nil, domain.NewDocumentParseError(MsgPPTXParse, err)
		}
		if text == "" {
			return nil, domain.NewInvalidInputError(MsgPPTXEmpty)
		}
		return &Result{Text: text}, nil
	case ".txt":
		return &Result{Text: decodeUTF8(data)}, nil
	default:
		return nil, domain.NewInvalidInputError(MsgUnsupportedType)
	}
}

// ExtractPDFPlain returns the page texts of a PDF joined by newlines, the
// form used as quiz and notes source material.
func (e *Extractor) ExtractPDFPlain(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := PDFPlainText(data)
	if err != nil {
		return "", domain.NewInternalError("Failed to process PDF file. Please ensure the file is valid.", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.NewInvalidInputError(MsgPDFNoReadable)
	}
	return text, nil
}

func decodeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), "\uFEFF")
	}
	return strings.ToValidUTF8(string(data), "\uFFFD")
}
