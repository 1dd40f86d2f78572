package service

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"saathi/internal/analysis"
	"saathi/internal/cache"
	"saathi/internal/domain"
	"saathi/internal/dto"
	"saathi/internal/extract"
	"saathi/internal/logger"
	"saathi/internal/scrape"

	"go.uber.org/zap"
)

const (
	MsgNoMeaningfulText = "No meaningful text content found in the document."
	MsgPDFRequired      = "Please upload a PDF file"

	minAnalyzableRunes = 10
)

// DocumentExtractor is implemented by *extract.Extractor.
type DocumentExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (*extract.Result, error)
	ExtractPDFPlain(ctx context.Context, data []byte) (string, error)
}

// PageScraper is implemented by *scrape.Scraper.
type PageScraper interface {
	Extract(ctx context.Context, url string) (string, error)
	BodyText(ctx context.Context, url string) (string, error)
}

// ContentService turns uploads and web pages into plain text and analyses
// uploaded documents.
type ContentService interface {
	ExtractPDF(ctx context.Context, filename string, data []byte) (*dto.ExtractTextResponse, error)
	ExtractURL(ctx context.Context, url string) (*dto.ExtractTextResponse, error)
	PageBodyText(ctx context.Context, url string) (string, error)
	AnalyzeDocument(ctx context.Context, userID, filename string, data []byte) (*dto.AnalyzeDocumentResponse, error)
}

type contentServiceImpl struct {
	extractor DocumentExtractor
	scraper   PageScraper
	pages     ResultCacheService
	materials domain.MaterialRepository
}

func NewContentService(extractor DocumentExtractor, scraper PageScraper, pages ResultCacheService, materials domain.MaterialRepository) ContentService {
	return &contentServiceImpl{
		extractor: extractor,
		scraper:   scraper,
		pages:     pages,
		materials: materials,
	}
}

// ExtractPDF returns the plain page text of an uploaded PDF.
func (s *contentServiceImpl) ExtractPDF(ctx context.Context, filename string, data []byte) (*dto.ExtractTextResponse, error) {
	if len(data) == 0 {
		return nil, domain.NewInvalidInputError("No PDF file provided")
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && ext != ".pdf" {
		return nil, domain.NewUnsupportedMediaError(MsgPDFRequired)
	}
	text, err := s.extractor.ExtractPDFPlain(ctx, data)
	if err != nil {
		return nil, err
	}
	return &dto.ExtractTextResponse{Text: text}, nil
}

// ExtractURL returns the readable text of a web page, cached per URL.
func (s *contentServiceImpl) ExtractURL(ctx context.Context, url string) (*dto.ExtractTextResponse, error) {
	text, err := s.resolvePage(ctx, "content", url, s.scraper.Extract)
	if err != nil {
		return nil, err
	}
	return &dto.ExtractTextResponse{Text: text}, nil
}

// PageBodyText returns the collapsed body text of a web page, cached per URL.
func (s *contentServiceImpl) PageBodyText(ctx context.Context, url string) (string, error) {
	return s.resolvePage(ctx, "body", url, s.scraper.BodyText)
}

func (s *contentServiceImpl) resolvePage(ctx context.Context, kind, url string, fetch func(context.Context, string) (string, error)) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", domain.NewInvalidInputError("No URL provided")
	}
	if !scrape.ValidURL(url) {
		return "", domain.NewInvalidInputError(scrape.MsgInvalidURL)
	}
	return s.pages.Resolve(ctx, kind, cache.Fingerprint(url), func(ctx context.Context) (string, error) {
		return fetch(ctx, url)
	})
}

// AnalyzeDocument extracts an uploaded document and runs the heuristic
// analysis. Signed-in users get the result saved to their library.
func (s *contentServiceImpl) AnalyzeDocument(ctx context.Context, userID, filename string, data []byte) (*dto.AnalyzeDocumentResponse, error) {
	if len(data) == 0 {
		return nil, domain.NewInvalidInputError("No file uploaded")
	}
	res, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(strings.TrimSpace(res.Text)) < minAnalyzableRunes {
		return nil, domain.NewInvalidInputError(MsgNoMeaningfulText)
	}

	result := analysis.Analyze(res.Text, res.PageCount)
	logger.Get().Info("Document analyzed",
		zap.String("filename", filename),
		zap.Int("words", result.BasicStats.WordCount),
		zap.String("language", result.ContentAnalysis.LanguageDetected))

	if userID != "" && s.materials != nil {
		m := &domain.StudyMaterial{
			UserID:  userID,
			Kind:    domain.MaterialAnalysis,
			Title:   filename,
			Input:   filename,
			Content: result.Summary,
		}
		if err := s.materials.Save(ctx, m); err != nil {
			logger.Get().Warn("Failed to save analysis to library", zap.String("userID", userID), zap.Error(err))
		}
	}

	return &dto.AnalyzeDocumentResponse{Analysis: result}, nil
}
