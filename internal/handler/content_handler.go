package handler

import (
	"saathi/internal/dto"
	"saathi/internal/middleware"
	"saathi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves text extraction and document analysis.
type ContentHandler struct {
	content   service.ContentService
	validator *middleware.ValidationMiddleware
}

func NewContentHandler(content service.ContentService, validator *middleware.ValidationMiddleware) *ContentHandler {
	return &ContentHandler{content: content, validator: validator}
}

// ExtractPDF godoc
// @Summary Extract text from a PDF
// @Tags content
// @Accept mpfd
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} dto.ExtractTextResponse
// @Failure 400 {object} middleware.ErrorResponse "No PDF file provided"
// @Failure 415 {object} middleware.ErrorResponse
// @Router /extract-pdf [post]
// @Router /quiz/pdf [post]
func (h *ContentHandler) ExtractPDF(c *fiber.Ctx) error {
	name, data, err := readUpload(c, "file")
	if err != nil {
		return err
	}
	resp, err := h.content.ExtractPDF(c.UserContext(), name, data)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ExtractURL godoc
// @Summary Extract the main text of a web page
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.ExtractURLRequest true "Page URL"
// @Success 200 {object} dto.ExtractTextResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Page not found"
// @Failure 502 {object} middleware.ErrorResponse
// @Router /extract-url [post]
func (h *ContentHandler) ExtractURL(c *fiber.Ctx) error {
	var req dto.ExtractURLRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.content.ExtractURL(c.UserContext(), req.URL)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AnalyzeDocument godoc
// @Summary Analyse an uploaded document
// @Description Accepts PDF, DOCX, PPTX and TXT files.
// @Tags content
// @Accept mpfd
// @Produce json
// @Param file formData file true "Document"
// @Success 200 {object} dto.AnalyzeDocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 415 {object} middleware.ErrorResponse
// @Router /analyze-document [post]
func (h *ContentHandler) AnalyzeDocument(c *fiber.Ctx) error {
	name, data, err := readUpload(c, "file")
	if err != nil {
		return err
	}
	resp, err := h.content.AnalyzeDocument(c.UserContext(), middleware.UserID(c), name, data)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

