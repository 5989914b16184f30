package services

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParserService extracts the raw text of an uploaded resume PDF.
// Unreadable pages are skipped; a PDF with no extractable text at all is an
// error, since there is nothing to parse a profile from.
type PDFParserService interface {
	ExtractText(filePath string) (string, error)
	ExtractTextWithMetaData(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	content, err := p.ExtractTextWithMetaData(filePath)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractTextWithMetaData implements PDFParserService.
func (p *pdfParserService) ExtractTextWithMetaData(filePath string) (*PDFContent, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", filePath, err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPages := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in %s", filePath)
	}

	return &PDFContent{
		Text:      text,
		PageCount: totalPages,
		FilePath:  filePath,
	}, nil
}

// CleanText normalizes extracted resume text: trims each line and drops
// blank ones, so downstream section detection sees one line per statement.
func CleanText(text string) string {
	var cleanedLines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}
	return strings.Join(cleanedLines, "\n")
}
