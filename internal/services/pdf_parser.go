package services

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrEmptyPage = errors.New("page has no content")

type PDFParserService interface {
	ExtractText(r io.ReaderAt, size int64) (*PDFContent, error)
	ExtractFile(path string) (*PDFContent, error)
}

// PageText is the outcome of extracting one page. Err is set when the page
// produced no text; Text is then empty.
type PageText struct {
	Number int
	Text   string
	Err    error
}

type PDFContent struct {
	Pages     []PageText
	PageCount int
}

// Text joins all pages with a newline. Failed pages contribute an empty line.
func (c *PDFContent) Text() string {
	parts := make([]string, len(c.Pages))
	for i, page := range c.Pages {
		if page.Err == nil {
			parts[i] = page.Text
		}
	}
	return strings.Join(parts, "\n")
}

func (c *PDFContent) FailedPages() []PageText {
	var failed []PageText
	for _, page := range c.Pages {
		if page.Err != nil {
			failed = append(failed, page)
		}
	}
	return failed
}

// pageSource is the part of *pdf.Reader the extractor needs.
type pageSource interface {
	NumPage() int
	PageText(index int) (string, error)
}

type pdfReaderSource struct {
	reader *pdf.Reader
}

func (s pdfReaderSource) NumPage() int {
	return s.reader.NumPage()
}

func (s pdfReaderSource) PageText(index int) (string, error) {
	page := s.reader.Page(index)
	if page.V.IsNull() {
		return "", ErrEmptyPage
	}
	return page.GetPlainText(nil)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(r io.ReaderAt, size int64) (content *PDFContent, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables
	defer func() {
		if rec := recover(); rec != nil {
			content, err = nil, fmt.Errorf("failed to read PDF: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return extractPages(pdfReaderSource{reader: reader}), nil
}

// ExtractFile reads a PDF from disk.
func (p *pdfParserService) ExtractFile(path string) (content *PDFContent, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			content, err = nil, fmt.Errorf("failed to read PDF: %v", rec)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return extractPages(pdfReaderSource{reader: reader}), nil
}

func extractPages(src pageSource) *PDFContent {
	totalPage := src.NumPage()
	content := &PDFContent{
		Pages:     make([]PageText, 0, totalPage),
		PageCount: totalPage,
	}

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		text, err := src.PageText(pageIndex)
		if err == nil && text == "" {
			err = ErrEmptyPage
		}
		if err != nil {
			text = ""
		}

		content.Pages = append(content.Pages, PageText{
			Number: pageIndex,
			Text:   text,
			Err:    err,
		})
	}

	return content
}
