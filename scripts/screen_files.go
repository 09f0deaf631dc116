package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

// Screens local resume PDFs against a job description file:
//
//	go run ./scripts -jd job_description.txt alice.pdf bob.pdf
//
// With -text it only prints the text extracted from each PDF.
func main() {
	jdPath := flag.String("jd", "", "path to a text file holding the job description")
	textOnly := flag.Bool("text", false, "print extracted text and exit without calling the model")
	flag.Parse()

	pdfParser := services.NewPDFParserService()

	if *textOnly {
		for _, path := range flag.Args() {
			if err := printExtractedText(pdfParser, path); err != nil {
				log.Fatalf("❌ %v", err)
			}
		}
		return
	}

	log.Println("🚀 Starting local screening...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	jobDescription := ""
	if *jdPath != "" {
		data, err := os.ReadFile(*jdPath)
		if err != nil {
			log.Fatalf("❌ Failed to read job description: %v", err)
		}
		jobDescription = string(data)
	}

	req := &models.ScreeningRequest{JobDescription: jobDescription}
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("❌ Failed to read %s: %v", path, err)
		}
		req.Resumes = append(req.Resumes, models.Resume{
			Name: filepath.Base(path),
			Data: data,
		})
	}

	llmService, err := services.NewLLMService(cfg.LLM)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s client: %v", cfg.LLM.Provider, err)
	}

	screener := services.NewScreenerService(
		repositories.NewNoopScreeningRunRepository(),
		llmService,
		pdfParser,
		services.NewResponseInterpreter(cfg.LLM.StripCodeFences),
	)

	report, err := screener.Screen(context.Background(), req, func(ev services.ProgressEvent) {
		if ev.Kind == services.ProgressParseFailed {
			log.Printf("   ⚠️  %s\n%s", ev.Message, ev.Raw)
		}
	})
	if report != nil {
		printTable(report.Results)
	}
	if err != nil {
		log.Fatalf("❌ Screening failed: %v", err)
	}

	log.Println("✅ Screening finished")
}

func printExtractedText(pdfParser services.PDFParserService, path string) error {
	content, err := pdfParser.ExtractFile(path)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", path, err)
	}

	fmt.Printf("===== %s (%d page(s)) =====\n", filepath.Base(path), content.PageCount)
	for _, page := range content.FailedPages() {
		log.Printf("⚠️  No text extracted from page %d of %s (%v)\n", page.Number, path, page.Err)
	}
	fmt.Println(content.Text())
	return nil
}

func printTable(results []models.ScreeningResult) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("Screening Results")
	fmt.Println(strings.Repeat("=", 60))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Candidate\tBasic Qualified\tPreferred Qualifications\tMatch Score\tSummary\tRecommendation")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Candidate, oneLine(r.BasicQualified), oneLine(r.PreferredQualifications),
			oneLine(r.MatchScore), oneLine(r.Summary), oneLine(r.Recommendation))
	}
	w.Flush()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
