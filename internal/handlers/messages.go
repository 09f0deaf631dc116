package handlers

import (
	"errors"

	"alfredoptarigan/resume-screener/internal/services"
)

var validationMessages = []struct {
	err     error
	message string
}{
	{services.ErrBlankJobDescription, "Please enter a job description!"},
	{services.ErrNoResumes, "Please upload at least one resume PDF."},
	{services.ErrUnnamedResume, "Every uploaded resume needs a file name."},
}

// validationMessage returns the text shown to the user for a rejected
// request, or false when err is not a validation error.
func validationMessage(err error) (string, bool) {
	for _, m := range validationMessages {
		if errors.Is(err, m.err) {
			return m.message, true
		}
	}
	return "", false
}
