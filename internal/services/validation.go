package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"alfredoptarigan/resume-screener/internal/models"
)

var (
	ErrBlankJobDescription = errors.New("job description is blank")
	ErrNoResumes           = errors.New("no resumes uploaded")
	ErrUnnamedResume       = errors.New("uploaded resume has no file name")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

// ValidateRequest checks the preconditions of a screening run. The job
// description is reported before the uploads.
func ValidateRequest(req *models.ScreeningRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	for _, fieldErr := range validationErrs {
		if fieldErr.StructField() == "JobDescription" {
			return ErrBlankJobDescription
		}
	}

	for _, fieldErr := range validationErrs {
		switch fieldErr.StructField() {
		case "Resumes":
			return ErrNoResumes
		case "Name":
			return ErrUnnamedResume
		}
	}

	return validationErrs
}
