package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	fieldJobDescription = "job_description"
	fieldResumes        = "resumes"
	pdfMIME             = "application/pdf"
)

// readScreeningRequest collects the job description and the uploaded PDFs
// in form order. Blank input is left for the screener to reject.
func readScreeningRequest(c *fiber.Ctx, maxFileSize int64) (*models.ScreeningRequest, error) {
	req := &models.ScreeningRequest{
		JobDescription: c.FormValue(fieldJobDescription),
	}

	// a urlencoded post carries no files
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return req, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	for _, file := range form.File[fieldResumes] {
		resume, err := readResume(file, maxFileSize)
		if err != nil {
			return nil, err
		}
		req.Resumes = append(req.Resumes, *resume)
	}

	return req, nil
}

func readResume(file *multipart.FileHeader, maxFileSize int64) (*models.Resume, error) {
	if file.Size > maxFileSize {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s is too large. Max size: %d bytes", file.Filename, maxFileSize))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s is not a PDF file", file.Filename))
	}

	src, err := file.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("failed to open uploaded file %s", file.Filename))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("failed to read uploaded file %s", file.Filename))
	}

	if !mimetype.Detect(data).Is(pdfMIME) {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s is not a PDF file", file.Filename))
	}

	return &models.Resume{
		Name: file.Filename,
		Data: data,
	}, nil
}
