package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type ScreenHandler struct {
	screener    services.ScreenerService
	maxFileSize int64
}

func NewScreenHandler(screener services.ScreenerService, maxFileSize int64) *ScreenHandler {
	return &ScreenHandler{
		screener:    screener,
		maxFileSize: maxFileSize,
	}
}

// HandleScreen handles POST /api/v1/screen
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	req, err := readScreeningRequest(c, h.maxFileSize)
	if err != nil {
		return err
	}

	report, err := h.screener.Screen(c.UserContext(), req, nil)
	if err != nil {
		if message, ok := validationMessage(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": message,
			})
		}

		response := models.ScreenResponse{
			Results:  []models.ScreeningResult{},
			Warnings: []string{},
		}
		if report != nil {
			response.RunID = report.RunID.String()
			response.Results = report.Results
			response.Warnings = report.Warnings
		}
		message := err.Error()
		response.Error = &message

		return c.Status(fiber.StatusBadGateway).JSON(response)
	}

	return c.JSON(models.ScreenResponse{
		RunID:    report.RunID.String(),
		Results:  report.Results,
		Warnings: report.Warnings,
	})
}
