package models

type ScreenResponse struct {
	RunID    string            `json:"run_id"`
	Results  []ScreeningResult `json:"results"`
	Warnings []string          `json:"warnings"`
	Error    *string           `json:"error,omitempty"`
}

type RunResponse struct {
	ID                string  `json:"id"`
	Status            string  `json:"status"`
	Model             string  `json:"model"`
	ResumeCount       int     `json:"resume_count"`
	ProcessedCount    int     `json:"processed_count"`
	ParseFailureCount int     `json:"parse_failure_count"`
	ErrorMessage      *string `json:"error_message,omitempty"`
}
