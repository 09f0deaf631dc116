package models

import "github.com/google/uuid"

// Resume is one uploaded file, kept in memory for a single run.
type Resume struct {
	Name string `validate:"required"`
	Data []byte
}

type ScreeningRequest struct {
	JobDescription string   `validate:"notblank"`
	Resumes        []Resume `validate:"min=1,dive"`
}

// ScreeningRecord holds the five fields the model is asked to return.
type ScreeningRecord struct {
	BasicQualified          string `json:"basic_qualified"`
	PreferredQualifications string `json:"preferred_qualifications"`
	MatchScore              string `json:"match_score"`
	Summary                 string `json:"summary"`
	Recommendation          string `json:"recommendation"`
}

// ParseFailedRecord is the row shown when a model reply cannot be decoded.
var ParseFailedRecord = ScreeningRecord{
	BasicQualified:          "Error",
	PreferredQualifications: "{}",
	MatchScore:              "0",
	Summary:                 "Parsing failed",
	Recommendation:          "Unknown",
}

// ScreeningResult is one table row.
type ScreeningResult struct {
	Candidate string `json:"candidate"`
	ScreeningRecord
	ParseFailed bool   `json:"parse_failed"`
	RawResponse string `json:"raw_response,omitempty"`
}

type ScreeningReport struct {
	RunID    uuid.UUID         `json:"run_id"`
	Results  []ScreeningResult `json:"results"`
	Warnings []string          `json:"warnings"`
}
