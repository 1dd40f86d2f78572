package handler

import (
	"saathi/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Auth       *AuthHandler
	Generator  *GeneratorHandler
	Content    *ContentHandler
	Calculator *CalculatorHandler
	User       *UserHandler
	Health     *HealthHandler
}

// RegisterRoutes mounts the API under /api and the health probe at /health.
func RegisterRoutes(app *fiber.App, h Handlers, tokens middleware.TokenValidator, vm *middleware.ValidationMiddleware, llmLimiter fiber.Handler) {
	protected := middleware.Protected(tokens)
	optional := middleware.OptionalAuth(tokens)
	if llmLimiter == nil {
		llmLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	app.Get("/health", h.Health.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/google/login", h.Auth.GoogleLogin)
	auth.Get("/google/callback", h.Auth.GoogleCallback)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Post("/logout", protected, h.Auth.Logout)

	api.Post("/chat", optional, llmLimiter, h.Generator.Chat)
	api.Post("/document-chat", optional, llmLimiter, h.Generator.DocumentChat)
	api.Post("/generate-roadmap", optional, llmLimiter, h.Generator.Roadmap)
	api.Post("/notes/generate", optional, llmLimiter, h.Generator.Notes)

	quiz := api.Group("/quiz")
	quiz.Post("/generate", optional, llmLimiter, h.Generator.GenerateQuiz)
	quiz.Post("/url", optional, llmLimiter, h.Generator.QuizFromURL)
	quiz.Post("/pdf", h.Content.ExtractPDF)
	quiz.Post("/grade", optional, h.Generator.GradeQuiz)

	api.Post("/extract-pdf", h.Content.ExtractPDF)
	api.Post("/extract-url", h.Content.ExtractURL)
	api.Post("/analyze-document", optional, h.Content.AnalyzeDocument)

	calc := api.Group("/calculator")
	calc.Post("/evaluate", optional, h.Calculator.Evaluate)
	calc.Get("/history", protected, h.Calculator.History)
	calc.Delete("/history", protected, h.Calculator.Clear)

	users := api.Group("/users", protected)
	users.Get("/me", h.User.GetMyProfile)
	users.Put("/me", h.User.UpdateMyProfile)
	users.Post("/me/photo", h.User.UploadPhoto)
	users.Get("/me/materials", vm.ValidatePagination(), h.User.ListMaterials)
	users.Get("/me/materials/:id", vm.ValidateIDParam("id"), h.User.GetMaterial)
	users.Delete("/me/materials/:id", vm.ValidateIDParam("id"), h.User.DeleteMaterial)
	users.Get("/me/attempts", vm.ValidatePagination(), h.User.GetMyQuizAttempts)
}
