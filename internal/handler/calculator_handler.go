package handler

import (
	"saathi/internal/dto"
	"saathi/internal/middleware"
	"saathi/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CalculatorHandler struct {
	calculator service.CalculatorService
	validator  *middleware.ValidationMiddleware
}

func NewCalculatorHandler(calculator service.CalculatorService, validator *middleware.ValidationMiddleware) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator, validator: validator}
}

// Evaluate godoc
// @Summary Evaluate an expression or apply a memory operation
// @Description A failed evaluation is reported as result "Error" with status 200.
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body dto.CalculatorRequest true "Expression"
// @Success 200 {object} dto.CalculatorResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /calculator/evaluate [post]
func (h *CalculatorHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.CalculatorRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.calculator.Evaluate(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// History godoc
// @Summary Recent calculations
// @Tags calculator
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.HistoryResponse
// @Router /calculator/history [get]
func (h *CalculatorHandler) History(c *fiber.Ctx) error {
	resp, err := h.calculator.History(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Clear godoc
// @Summary Clear history and memory (AC)
// @Tags calculator
// @Security ApiKeyAuth
// @Success 204
// @Router /calculator/history [delete]
func (h *CalculatorHandler) Clear(c *fiber.Ctx) error {
	if err := h.calculator.Clear(c.UserContext(), middleware.UserID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
