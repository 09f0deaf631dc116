package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
)

// fakeLLM replies from a queue of responses and records every prompt.
type fakeLLM struct {
	replies []string
	errs    []error
	prompts []string
}

func (f *fakeLLM) ModelName() string { return "fake-model" }

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	return f.replies[i], nil
}

// fakeParser treats resume data as page text; pages are split on "\f" and
// a page reading "<broken>" fails.
type fakeParser struct {
	openErr error
}

func (p *fakeParser) ExtractText(r io.ReaderAt, size int64) (*PDFContent, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	data, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, err
	}

	var pages fakePageSource
	for _, text := range strings.Split(string(data), "\f") {
		if text == "<broken>" {
			pages = append(pages, fakePage{err: errors.New("cannot decode page")})
			continue
		}
		pages = append(pages, fakePage{text: text})
	}
	return extractPages(pages), nil
}

func (p *fakeParser) ExtractFile(string) (*PDFContent, error) {
	return nil, errors.New("not used")
}

type fakeRunRepo struct {
	runs    map[uuid.UUID]*models.ScreeningRun
	updates []repositories.RunUpdateData
	errMsg  string
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: map[uuid.UUID]*models.ScreeningRun{}}
}

func (r *fakeRunRepo) Create(run *models.ScreeningRun) error {
	r.runs[run.ID] = run
	return nil
}

func (r *fakeRunRepo) FindByID(id uuid.UUID) (*models.ScreeningRun, error) {
	run, ok := r.runs[id]
	if !ok {
		return nil, repositories.ErrRunNotFound
	}
	return run, nil
}

func (r *fakeRunRepo) UpdateResult(id uuid.UUID, data *repositories.RunUpdateData) error {
	r.runs[id].Status = models.StatusCompleted
	r.updates = append(r.updates, *data)
	return nil
}

func (r *fakeRunRepo) UpdateError(id uuid.UUID, data *repositories.RunUpdateData, errorMsg string) error {
	r.runs[id].Status = models.StatusFailed
	r.updates = append(r.updates, *data)
	r.errMsg = errorMsg
	return nil
}

const aliceReply = `{"basic_qualified":"Yes","preferred_qualifications":"Canva","match_score":"85","summary":"Strong fit","recommendation":"Strong Match"}`

func newTestScreener(llm LLMService, parser PDFParserService, repo repositories.ScreeningRunRepository) ScreenerService {
	return NewScreenerService(repo, llm, parser, NewResponseInterpreter(false))
}

func TestScreen_ExampleScenario(t *testing.T) {
	llm := &fakeLLM{replies: []string{aliceReply}}
	repo := newFakeRunRepo()
	screener := newTestScreener(llm, &fakeParser{}, repo)

	report, err := screener.Screen(context.Background(), &models.ScreeningRequest{
		JobDescription: "Marketing Intern, GPA 3.0+",
		Resumes:        []models.Resume{{Name: "alice.pdf", Data: []byte("3.9 GPA, Canva experience")}},
	}, nil)

	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, models.ScreeningResult{
		Candidate: "alice.pdf",
		ScreeningRecord: models.ScreeningRecord{
			BasicQualified:          "Yes",
			PreferredQualifications: "Canva",
			MatchScore:              "85",
			Summary:                 "Strong fit",
			Recommendation:          "Strong Match",
		},
	}, report.Results[0])
	assert.Empty(t, report.Warnings)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Marketing Intern, GPA 3.0+")
	assert.Contains(t, llm.prompts[0], "3.9 GPA, Canva experience")

	run, err := repo.FindByID(report.RunID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, run.Status)
	assert.Equal(t, "fake-model", run.Model)
	assert.Equal(t, 1, run.ResumeCount)
	assert.Equal(t, []repositories.RunUpdateData{{ProcessedCount: 1}}, repo.updates)
}

func TestScreen_OneRowPerResumeInUploadOrder(t *testing.T) {
	llm := &fakeLLM{replies: []string{aliceReply, "not json", aliceReply}}
	screener := newTestScreener(llm, &fakeParser{}, newFakeRunRepo())

	var progress []ProgressEvent
	report, err := screener.Screen(context.Background(), &models.ScreeningRequest{
		JobDescription: "Marketing Intern",
		Resumes: []models.Resume{
			{Name: "c.pdf", Data: []byte("carol")},
			{Name: "a.pdf", Data: []byte("alice")},
			{Name: "c.pdf", Data: []byte("another carol")},
		},
	}, func(ev ProgressEvent) { progress = append(progress, ev) })

	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "c.pdf", report.Results[0].Candidate)
	assert.Equal(t, "a.pdf", report.Results[1].Candidate)
	assert.Equal(t, "c.pdf", report.Results[2].Candidate)

	require.Len(t, llm.prompts, 3)
	assert.Contains(t, llm.prompts[0], "carol")
	assert.Contains(t, llm.prompts[1], "alice")
	assert.Contains(t, llm.prompts[2], "another carol")

	var screening []string
	for _, ev := range progress {
		if ev.Kind == ProgressScreening {
			screening = append(screening, ev.Message)
		}
	}
	assert.Equal(t, []string{"Screening c.pdf...", "Screening a.pdf...", "Screening c.pdf..."}, screening)
}

func TestScreen_MalformedReplyDegradesOneRow(t *testing.T) {
	llm := &fakeLLM{replies: []string{"Sorry, I cannot help with that.", aliceReply}}
	repo := newFakeRunRepo()
	screener := newTestScreener(llm, &fakeParser{}, repo)

	var parseFailures []ProgressEvent
	report, err := screener.Screen(context.Background(), &models.ScreeningRequest{
		JobDescription: "Marketing Intern",
		Resumes: []models.Resume{
			{Name: "bob.pdf", Data: []byte("bob")},
			{Name: "alice.pdf", Data: []byte("alice")},
		},
	}, func(ev ProgressEvent) {
		if ev.Kind == ProgressParseFailed {
			parseFailures = append(parseFailures, ev)
		}
	})

	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	bob := report.Results[0]
	assert.Equal(t, "bob.pdf", bob.Candidate)
	assert.Equal(t, models.ParseFailedRecord, bob.ScreeningRecord)
	assert.True(t, bob.ParseFailed)
	assert.Equal(t, "Sorry, I cannot help with that.", bob.RawResponse)

	assert.False(t, report.Results[1].ParseFailed)
	assert.Equal(t, "Strong Match", report.Results[1].Recommendation)

	require.Len(t, parseFailures, 1)
	assert.Equal(t, "bob.pdf", parseFailures[0].Candidate)
	assert.Equal(t, "Sorry, I cannot help with that.", parseFailures[0].Raw)
	assert.Equal(t, []string{"Could not parse model response for bob.pdf. Showing raw output."}, report.Warnings)

	assert.Equal(t, []repositories.RunUpdateData{{ProcessedCount: 2, ParseFailureCount: 1}}, repo.updates)
}

func TestScreen_FailedPageStillProducesRow(t *testing.T) {
	llm := &fakeLLM{replies: []string{aliceReply}}
	screener := newTestScreener(llm, &fakeParser{}, newFakeRunRepo())

	report, err := screener.Screen(context.Background(), &models.ScreeningRequest{
		JobDescription: "Marketing Intern",
		Resumes:        []models.Resume{{Name: "scan.pdf", Data: []byte("page one\f<broken>\fpage three")}},
	}, nil)

	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "scan.pdf", report.Results[0].Candidate)
	assert.Contains(t, llm.prompts[0], "page one\n\npage three")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "page 2 of scan.pdf")
}

func TestScreen_UnreadablePageOnlyResumeUsesEmptyText(t *testing.T) {
	llm := &fakeLLM{replies: []string{aliceReply}}
	screener := newTestScreener(llm, &fakeParser{}, newFakeRunRepo())

	report, err := screener.Screen(context.Background(), &models.ScreeningRequest{
		JobDescription: "Marketing Intern",
		Resumes:        []models.Resume{{Name: "image-only.pdf", Data: []byte("<broken>")}},
	}, nil)

	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	expected := NewPromptBuilder().BuildScreeningPrompt("Marketing Intern", "")
	assert.Equal(t, expected, llm.prompts[0])
}

func TestScreen_PreconditionsSkipModel(t *testing.T) {
	tests := []struct {
		name string
		req  *models.ScreeningRequest
		want error
	}{
		{
			name: "blank job description",
			req: &models.ScreeningRequest{
				JobDescription: "   ",
				Resumes:        []models.Resume{{Name: "alice.pdf", Data: []byte("alice")}},
			},
			want: ErrBlankJobDescription,
		},
		{
			name: "no resumes",
			req:  &models.ScreeningRequest{JobDescription: "Marketing Intern"},
			want: ErrNoResumes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeLLM{}
			repo := newFakeRunRepo()
			screener := newTestScreener(llm, &fakeParser{}, repo)

			report, err := screener.Screen(context.Background(), tt.req, nil)

			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, report)
			assert.Empty(t, llm.prompts)
			assert.Empty(t, repo.runs)
		})
	}
}

func TestScreen_ModelFailureAbortsRemainingResumes(t *testing.T) {
	errQuota := errors.New("quota exceeded")
	llm := &fakeLLM{
		replies: []string{aliceReply, "", ""},
		errs:    []error{nil, errQuota},
	}
	repo := newFakeRunRepo()
	screener := newTestScreener(llm, &fakeParser{}, repo)

	report, err := screener.Screen(context.Background(), &models.ScreeningRequest{
		JobDescription: "Marketing Intern",
		Resumes: []models.Resume{
			{Name: "alice.pdf", Data: []byte("alice")},
			{Name: "bob.pdf", Data: []byte("bob")},
			{Name: "carol.pdf", Data: []byte("carol")},
		},
	}, nil)

	assert.ErrorIs(t, err, errQuota)
	assert.Contains(t, err.Error(), "bob.pdf")
	require.NotNil(t, report)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "alice.pdf", report.Results[0].Candidate)
	assert.Len(t, llm.prompts, 2)

	run, findErr := repo.FindByID(report.RunID)
	require.NoError(t, findErr)
	assert.Equal(t, models.StatusFailed, run.Status)
	assert.Equal(t, "quota exceeded", repo.errMsg)
	assert.Equal(t, []repositories.RunUpdateData{{ProcessedCount: 1}}, repo.updates)
}

func TestScreen_UnopenablePDFAbortsRun(t *testing.T) {
	errOpen := errors.New("failed to open PDF: not a PDF file")
	llm := &fakeLLM{}
	screener := newTestScreener(llm, &fakeParser{openErr: errOpen}, newFakeRunRepo())

	report, err := screener.Screen(context.Background(), &models.ScreeningRequest{
		JobDescription: "Marketing Intern",
		Resumes:        []models.Resume{{Name: "broken.pdf", Data: []byte("x")}},
	}, nil)

	assert.ErrorIs(t, err, errOpen)
	require.NotNil(t, report)
	assert.Empty(t, report.Results)
	assert.Empty(t, llm.prompts)
}
