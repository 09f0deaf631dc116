package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
)

type ProgressKind string

const (
	ProgressScreening   ProgressKind = "screening"
	ProgressPageWarning ProgressKind = "page_warning"
	ProgressParseFailed ProgressKind = "parse_failed"
)

// ProgressEvent is emitted while a run advances. Raw is set for ProgressParseFailed.
type ProgressEvent struct {
	Kind      ProgressKind
	Candidate string
	Message   string
	Raw       string
}

type ProgressFunc func(ProgressEvent)

type ScreenerService interface {
	Screen(ctx context.Context, req *models.ScreeningRequest, progress ProgressFunc) (*models.ScreeningReport, error)
}

type screenerService struct {
	runRepo       repositories.ScreeningRunRepository
	llmService    LLMService
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	interpreter   *ResponseInterpreter
}

func NewScreenerService(
	runRepo repositories.ScreeningRunRepository,
	llmService LLMService,
	pdfParser PDFParserService,
	interpreter *ResponseInterpreter,
) ScreenerService {
	return &screenerService{
		runRepo:       runRepo,
		llmService:    llmService,
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		interpreter:   interpreter,
	}
}

// Screen validates req and screens every resume in upload order, one model
// call at a time. On a fatal error the returned report holds the rows
// produced so far.
func (s *screenerService) Screen(ctx context.Context, req *models.ScreeningRequest, progress ProgressFunc) (*models.ScreeningReport, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	run := &models.ScreeningRun{
		ID:          uuid.New(),
		Status:      models.StatusProcessing,
		Model:       s.llmService.ModelName(),
		ResumeCount: len(req.Resumes),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.runRepo.Create(run); err != nil {
		log.Printf("⚠️  Failed to record screening run %s: %v\n", run.ID, err)
	}

	log.Printf("🔄 Starting screening run %s with %d resume(s)\n", run.ID, len(req.Resumes))

	report := &models.ScreeningReport{
		RunID:    run.ID,
		Results:  make([]models.ScreeningResult, 0, len(req.Resumes)),
		Warnings: []string{},
	}
	counts := &repositories.RunUpdateData{}

	for i, resume := range req.Resumes {
		log.Printf("🔎 [%d/%d] Screening %s...\n", i+1, len(req.Resumes), resume.Name)
		progress(ProgressEvent{
			Kind:      ProgressScreening,
			Candidate: resume.Name,
			Message:   fmt.Sprintf("Screening %s...", resume.Name),
		})

		result, err := s.screenResume(ctx, req.JobDescription, resume, report, progress)
		if err != nil {
			s.recordFailure(run.ID, counts, err)
			return report, fmt.Errorf("failed to screen %s: %w", resume.Name, err)
		}

		report.Results = append(report.Results, *result)
		counts.ProcessedCount++
		if result.ParseFailed {
			counts.ParseFailureCount++
		}
	}

	if err := s.runRepo.UpdateResult(run.ID, counts); err != nil {
		log.Printf("⚠️  Failed to update screening run %s: %v\n", run.ID, err)
	}

	log.Printf("✅ Screening run %s completed: %d resume(s), %d parse failure(s)\n",
		run.ID, counts.ProcessedCount, counts.ParseFailureCount)
	return report, nil
}

func (s *screenerService) screenResume(
	ctx context.Context,
	jobDescription string,
	resume models.Resume,
	report *models.ScreeningReport,
	progress ProgressFunc,
) (*models.ScreeningResult, error) {
	content, err := s.pdfParser.ExtractText(bytes.NewReader(resume.Data), int64(len(resume.Data)))
	if err != nil {
		return nil, err
	}

	for _, page := range content.FailedPages() {
		warning := fmt.Sprintf("No text extracted from page %d of %s (%v).", page.Number, resume.Name, page.Err)
		report.Warnings = append(report.Warnings, warning)
		progress(ProgressEvent{Kind: ProgressPageWarning, Candidate: resume.Name, Message: warning})
	}

	prompt := s.promptBuilder.BuildScreeningPrompt(jobDescription, content.Text())

	raw, err := s.llmService.Complete(ctx, prompt)
	if err != nil {
		log.Printf("❌ Model call failed for %s: %v\n", resume.Name, err)
		return nil, err
	}

	interpretation := s.interpreter.Interpret(raw)
	result := &models.ScreeningResult{
		Candidate:       resume.Name,
		ScreeningRecord: interpretation.Record,
	}

	if interpretation.Kind == InterpretationMalformed {
		log.Printf("⚠️  Could not parse model response for %s: %v\n", resume.Name, interpretation.Err)
		warning := fmt.Sprintf("Could not parse model response for %s. Showing raw output.", resume.Name)
		report.Warnings = append(report.Warnings, warning)
		progress(ProgressEvent{Kind: ProgressParseFailed, Candidate: resume.Name, Message: warning, Raw: raw})

		result.ParseFailed = true
		result.RawResponse = raw
	}

	return result, nil
}

func (s *screenerService) recordFailure(runID uuid.UUID, counts *repositories.RunUpdateData, cause error) {
	if err := s.runRepo.UpdateError(runID, counts, cause.Error()); err != nil {
		log.Printf("⚠️  Failed to update screening run %s: %v\n", runID, err)
	}
}
