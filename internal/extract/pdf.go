package extract

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// openPDF recovers from the panics the pdf package raises on malformed input.
func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// PDFPlainText concatenates the plain text of every page, one newline
// after each.
func PDFPlainText(data []byte) (text string, err error) {
	r, err := openPDF(data)
	if err != nil {
		return "", err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(strings.TrimSpace(pageText))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// PDFLayoutText rebuilds lines top to bottom and left to right, inserting
// spaces at horizontal gaps, then cleans the result. Pages are separated by
// a blank line.
func PDFLayoutText(data []byte) (text string, pages int, err error) {
	r, err := openPDF(data)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	pages = r.NumPage()
	pageTexts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pageTexts = append(pageTexts, "")
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return "", 0, fmt.Errorf("page %d: %w", i, err)
		}
		pageTexts = append(pageTexts, layoutRows(rows))
	}

	cleaned := CleanText(strings.Join(pageTexts, "\n\n"))
	if cleaned == "" {
		cleaned = MsgPDFEmpty
	}
	return cleaned, pages, nil
}

func layoutRows(rows pdf.Rows) string {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := layoutRow(row.Content); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func layoutRow(texts pdf.TextHorizontal) string {
	sort.SliceStable(texts, func(i, j int) bool {
		return texts[i].X < texts[j].X
	})

	var sb strings.Builder
	var prev *pdf.Text
	for i := range texts {
		t := &texts[i]
		if prev != nil && needsSpace(*prev, *t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		prev = t
	}
	return sb.String()
}

// needsSpace reports a visible gap between two glyph runs. Runs without
// width information never get a synthetic space.
func needsSpace(prev, cur pdf.Text) bool {
	if prev.W <= 0 || strings.HasSuffix(prev.S, " ") || strings.HasPrefix(cur.S, " ") {
		return false
	}
	gap := cur.X - (prev.X + prev.W)
	threshold := math.Max(1, prev.FontSize*0.2)
	return gap > threshold
}
