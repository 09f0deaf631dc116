package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
)

type RunHandler struct {
	runRepo repositories.ScreeningRunRepository
}

func NewRunHandler(runRepo repositories.ScreeningRunRepository) *RunHandler {
	return &RunHandler{
		runRepo: runRepo,
	}
}

// HandleGetRun handles GET /api/v1/runs/:id
func (h *RunHandler) HandleGetRun(c *fiber.Ctx) error {
	runID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid run ID format",
		})
	}

	run, err := h.runRepo.FindByID(runID)
	if err != nil {
		if errors.Is(err, repositories.ErrRunNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Screening run not found",
			})
		}
		return err
	}

	return c.JSON(models.RunResponse{
		ID:                run.ID.String(),
		Status:            string(run.Status),
		Model:             run.Model,
		ResumeCount:       run.ResumeCount,
		ProcessedCount:    run.ProcessedCount,
		ParseFailureCount: run.ParseFailureCount,
		ErrorMessage:      run.ErrorMessage,
	})
}
