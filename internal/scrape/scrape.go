// Package scrape fetches web pages and reduces them to readable text.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"saathi/internal/config"
	"saathi/internal/domain"
	"saathi/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	MsgInvalidURL   = "Invalid URL format"
	MsgNoContent    = "No meaningful content found on the webpage"
	MsgNotFound     = "Website not found or unreachable"
	MsgTimeout      = "Request timeout - website took too long to respond"
	MsgForbidden    = "Access forbidden - website blocks automated requests"
	MsgPageNotFound = "Page not found"
	MsgFetchFailed  = "Failed to fetch content from URL"
)

const (
	removeSelector  = "script, style, nav, footer, header, aside, .advertisement, .ads"
	contentSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, article, section, div.content, div.main, main"

	minElementChars = 10
	minContentChars = 100
	minPageChars    = 50
)

var urlPattern = regexp.MustCompile(`^https?://.+`)

// ValidURL reports whether raw looks like an http(s) URL.
func ValidURL(raw string) bool {
	return urlPattern.MatchString(raw)
}

// Scraper downloads pages with a browser user agent.
type Scraper struct {
	client *resty.Client
}

func NewScraper(cfg config.ScrapeConfig) *Scraper {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	return &Scraper{client: client}
}

// Extract returns the main readable content of the page at url.
func (s *Scraper) Extract(ctx context.Context, url string) (string, error) {
	doc, err := s.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	doc.Find(removeSelector).Remove()

	var sb strings.Builder
	doc.Find(contentSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(text) > minElementChars {
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	})

	text := sb.String()
	if utf8.RuneCountInString(text) < minContentChars {
		text = doc.Find("body").Text()
	}
	text = collapseSpace(text)

	if utf8.RuneCountInString(text) < minPageChars {
		return "", domain.NewInvalidInputError(MsgNoContent)
	}
	return text, nil
}

// BodyText returns the whitespace-collapsed text of <body> without any
// element filtering.
func (s *Scraper) BodyText(ctx context.Context, url string) (string, error) {
	doc, err := s.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return collapseSpace(doc.Find("body").Text()), nil
}

func (s *Scraper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if !ValidURL(url) {
		return nil, domain.NewInvalidInputError(MsgInvalidURL)
	}

	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		logger.Get().Warn("Failed to fetch page", zap.String("url", url), zap.Error(err))
		return nil, classifyError(err)
	}

	switch {
	case resp.StatusCode() == http.StatusForbidden:
		return nil, domain.NewInvalidInputError(MsgForbidden)
	case resp.StatusCode() == http.StatusNotFound:
		return nil, domain.NewInvalidInputError(MsgPageNotFound)
	case resp.IsError():
		return nil, domain.NewInternalError(MsgFetchFailed, errors.New(resp.Status()))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, domain.NewInternalError(MsgFetchFailed, err)
	}
	return doc, nil
}

func classifyError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.NewError(domain.CodeInvalidInput, MsgNotFound, err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewError(domain.CodeInvalidInput, MsgTimeout, err)
	}
	return domain.NewInternalError(MsgFetchFailed, err)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
