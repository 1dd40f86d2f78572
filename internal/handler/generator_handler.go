package handler

import (
	"saathi/internal/dto"
	"saathi/internal/middleware"
	"saathi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GeneratorHandler serves the AI learning tools.
type GeneratorHandler struct {
	generator service.GeneratorService
	content   service.ContentService
	validator *middleware.ValidationMiddleware
}

func NewGeneratorHandler(generator service.GeneratorService, content service.ContentService, validator *middleware.ValidationMiddleware) *GeneratorHandler {
	return &GeneratorHandler{
		generator: generator,
		content:   content,
		validator: validator,
	}
}

// Chat godoc
// @Summary Ask the AI assistant
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Prompt"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} middleware.ErrorResponse "Prompt is required"
// @Failure 503 {object} middleware.ErrorResponse
// @Router /chat [post]
func (h *GeneratorHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.generator.Chat(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DocumentChat godoc
// @Summary Ask a question about a document
// @Description Answers only from the supplied document text.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.DocumentChatRequest true "Question and document"
// @Success 200 {object} dto.DocumentChatResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /document-chat [post]
func (h *GeneratorHandler) DocumentChat(c *fiber.Ctx) error {
	var req dto.DocumentChatRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.generator.DocumentChat(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Roadmap godoc
// @Summary Generate a learning roadmap
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.RoadmapRequest true "Domain and difficulty"
// @Success 200 {object} dto.RoadmapResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /generate-roadmap [post]
func (h *GeneratorHandler) Roadmap(c *fiber.Ctx) error {
	var req dto.RoadmapRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.generator.Roadmap(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Notes godoc
// @Summary Generate study notes
// @Description Accepts JSON for topic, text and url input, or a multipart form with inputType=pdf and a file.
// @Tags ai
// @Accept json,mpfd
// @Produce json
// @Param request body dto.NotesRequest false "Notes source"
// @Param file formData file false "PDF when inputType is pdf"
// @Success 200 {object} dto.NotesResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /notes/generate [post]
func (h *GeneratorHandler) Notes(c *fiber.Ctx) error {
	var req dto.NotesRequest
	if isMultipart(c) {
		req.InputType = c.FormValue("inputType")
		req.Topic = c.FormValue("topic")
		req.Text = c.FormValue("text")
		req.URL = c.FormValue("url")
		if err := h.validator.Validate(&req); err != nil {
			return err
		}
		if req.InputType == "pdf" {
			name, data, err := readUpload(c, "file")
			if err != nil {
				return err
			}
			extracted, err := h.content.ExtractPDF(c.UserContext(), name, data)
			if err != nil {
				return err
			}
			req.Text = extracted.Text
		}
	} else if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}

	resp, err := h.generator.Notes(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateQuiz godoc
// @Summary Generate a multiple choice quiz from text
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizGenerateRequest true "Source text"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse "No content provided"
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *GeneratorHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.QuizGenerateRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.generator.Quiz(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// QuizFromURL godoc
// @Summary Generate a quiz from a web page
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizURLRequest true "Page URL"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/url [post]
func (h *GeneratorHandler) QuizFromURL(c *fiber.Ctx) error {
	var req dto.QuizURLRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.generator.QuizFromURL(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GradeQuiz godoc
// @Summary Grade quiz answers
// @Description Records the attempt for signed-in users.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GradeRequest true "Questions and answers"
// @Success 200 {object} domain.GradeResult
// @Failure 400 {object} middleware.ErrorResponse "Please answer all questions"
// @Router /quiz/grade [post]
func (h *GeneratorHandler) GradeQuiz(c *fiber.Ctx) error {
	var req dto.GradeRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	result, err := h.generator.Grade(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
