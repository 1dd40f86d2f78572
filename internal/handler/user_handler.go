package handler

import (
	"saathi/internal/dto"
	"saathi/internal/logger"
	"saathi/internal/middleware"
	"saathi/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService service.UserService
	validator   *middleware.ValidationMiddleware
}

func NewUserHandler(userService service.UserService, validator *middleware.ValidationMiddleware) *UserHandler {
	return &UserHandler{userService: userService, validator: validator}
}

// GetMyProfile retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Description Retrieves the profile information of the logged-in user.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetUserProfile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateMyProfile changes names and preferences.
// @Summary Update My Profile
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateMyProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	userID := middleware.UserID(c)
	profile, err := h.userService.UpdateUserProfile(c.UserContext(), userID, req)
	if err != nil {
		return err
	}
	logger.Get().Info("User profile updated", zap.String("userID", userID))
	return c.JSON(profile)
}

// UploadPhoto stores a new profile picture.
// @Summary Upload profile photo
// @Description JPEG, PNG or WebP up to 2 MB.
// @Tags users
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param photo formData file true "Image"
// @Success 200 {object} dto.PhotoResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 415 {object} middleware.ErrorResponse
// @Router /users/me/photo [post]
func (h *UserHandler) UploadPhoto(c *fiber.Ctx) error {
	_, data, err := readUpload(c, "photo")
	if err != nil {
		return err
	}
	resp, err := h.userService.UpdateProfilePhoto(c.UserContext(), middleware.UserID(c), data)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListMaterials returns the saved study materials, newest first.
// @Summary List study materials
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param kind query string false "quiz, notes, roadmap or analysis"
// @Param limit query int false "Items per page" default(50)
// @Param page query int false "Page number"
// @Param offset query int false "Items to skip"
// @Success 200 {object} dto.MaterialsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /users/me/materials [get]
func (h *UserHandler) ListMaterials(c *fiber.Ctx) error {
	resp, err := h.userService.ListMaterials(c.UserContext(), middleware.UserID(c), c.Query("kind"), middleware.Pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetMaterial godoc
// @Summary Get a study material
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} dto.MaterialResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/me/materials/{id} [get]
func (h *UserHandler) GetMaterial(c *fiber.Ctx) error {
	resp, err := h.userService.GetMaterial(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteMaterial godoc
// @Summary Delete a study material
// @Tags users
// @Security ApiKeyAuth
// @Param id path string true "Material ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/me/materials/{id} [delete]
func (h *UserHandler) DeleteMaterial(c *fiber.Ctx) error {
	if err := h.userService.DeleteMaterial(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyQuizAttempts retrieves the graded quiz attempts of the current user.
// @Summary Get My Quiz Attempts
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Items per page" default(10)
// @Param page query int false "Page number"
// @Param offset query int false "Items to skip"
// @Success 200 {object} dto.QuizAttemptsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /users/me/attempts [get]
func (h *UserHandler) GetMyQuizAttempts(c *fiber.Ctx) error {
	resp, err := h.userService.GetUserQuizAttempts(c.UserContext(), middleware.UserID(c), middleware.Pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
