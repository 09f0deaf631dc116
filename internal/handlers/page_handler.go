package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

const pageTitle = "AI Recruitment Assistant - Resume Screening Demo"

type rawOutput struct {
	Message string
	Raw     string
}

type pageData struct {
	Title          string
	JobDescription string
	Ran            bool
	Progress       []string
	Warnings       []string
	RawOutputs     []rawOutput
	Error          string
	Results        []models.ScreeningResult
}

type PageHandler struct {
	screener    services.ScreenerService
	maxFileSize int64
}

func NewPageHandler(screener services.ScreenerService, maxFileSize int64) *PageHandler {
	return &PageHandler{
		screener:    screener,
		maxFileSize: maxFileSize,
	}
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	return c.Render("index", pageData{Title: pageTitle})
}

// HandleScreen handles POST /screen and renders the page with the results table.
func (h *PageHandler) HandleScreen(c *fiber.Ctx) error {
	data := pageData{
		Title:          pageTitle,
		JobDescription: c.FormValue(fieldJobDescription),
		Ran:            true,
	}

	req, err := readScreeningRequest(c, h.maxFileSize)
	if err != nil {
		return h.renderError(c, data, err)
	}

	report, err := h.screener.Screen(c.UserContext(), req, func(ev services.ProgressEvent) {
		switch ev.Kind {
		case services.ProgressScreening:
			data.Progress = append(data.Progress, ev.Message)
		case services.ProgressPageWarning:
			data.Warnings = append(data.Warnings, ev.Message)
		case services.ProgressParseFailed:
			data.RawOutputs = append(data.RawOutputs, rawOutput{Message: ev.Message, Raw: ev.Raw})
		}
	})
	if report != nil {
		data.Results = report.Results
	}
	if err != nil {
		return h.renderError(c, data, err)
	}

	return c.Render("index", data)
}

func (h *PageHandler) renderError(c *fiber.Ctx, data pageData, err error) error {
	code := fiber.StatusBadGateway
	data.Error = err.Error()

	var fiberErr *fiber.Error
	if message, ok := validationMessage(err); ok {
		code = fiber.StatusBadRequest
		data.Error = message
	} else if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).Render("index", data)
}
