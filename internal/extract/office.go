package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	wordNS    = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	drawingNS = "http://schemas.openxmlformats.org/drawingml/2006/main"
)

var slidePath = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func openZip(data []byte) (*zip.Reader, error) {
	return zip.NewReader(bytes.NewReader(data), int64(len(data)))
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// DOCXText returns the raw text of word/document.xml: paragraphs separated
// by a blank line, tabs and breaks kept.
func DOCXText(data []byte) (string, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", err
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", errors.New("word/document.xml not found")
	}
	raw, err := readZipFile(doc)
	if err != nil {
		return "", err
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	var (
		paragraphs []string
		para       strings.Builder
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				para.WriteByte('\t')
			case "br", "cr":
				para.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, para.String())
				para.Reset()
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	if para.Len() > 0 {
		paragraphs = append(paragraphs, para.String())
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// PPTXText collects the non-blank a:t runs of every slide in slide order.
// Each slide with text renders as "Slide N:" followed by one run per line.
func PPTXText(data []byte) (string, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", err
	}

	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		m := slidePath.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides = append(slides, slide{num: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var blocks []string
	for _, s := range slides {
		raw, err := readZipFile(s.file)
		if err != nil {
			return "", err
		}
		texts, err := slideTexts(raw)
		if err != nil {
			return "", fmt.Errorf("slide %d: %w", s.num, err)
		}
		if len(texts) > 0 {
			blocks = append(blocks, fmt.Sprintf("Slide %d:\n%s", len(blocks)+1, strings.Join(texts, "\n")))
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

func slideTexts(raw []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var (
		texts  []string
		inText bool
		run    strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return texts, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == drawingNS && t.Name.Local == "t" {
				inText = true
				run.Reset()
			}
		case xml.EndElement:
			if t.Name.Space == drawingNS && t.Name.Local == "t" {
				inText = false
				if s := strings.TrimSpace(run.String()); s != "" {
					texts = append(texts, s)
				}
			}
		case xml.CharData:
			if inText {
				run.Write(t)
			}
		}
	}
}
