package services

import (
	"bytes"
	"fmt"
	"html"
	"log"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/resumesync/internal/models"
)

var (
	controlChars    = regexp.MustCompile(`[\x00-\x1F\x7F]+`)
	whitespaceRuns  = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
	docxParagraphs  = regexp.MustCompile(`</w:p>`)
	docxMarkup      = regexp.MustCompile(`<[^>]+>`)
	extensionToType = map[string]string{
		".pdf":  models.MediaTypePDF,
		".docx": models.MediaTypeDOCX,
		".doc":  models.MediaTypeDOC,
		".txt":  models.MediaTypeText,
	}
)

type IngestionService interface {
	Ingest(upload models.Upload) (*models.Document, error)
}

// TextExtractor pulls text out of an office document.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

type ingestionService struct {
	pdfExtractor  PageExtractor
	docxExtractor TextExtractor
}

// NewIngestionService builds the ingestion pipeline. docxExtractor may be nil, in which case
// DOCX and DOC files are passed through without extraction.
func NewIngestionService(pdfExtractor PageExtractor, docxExtractor TextExtractor) IngestionService {
	return &ingestionService{
		pdfExtractor:  pdfExtractor,
		docxExtractor: docxExtractor,
	}
}

// Ingest implements IngestionService.
func (s *ingestionService) Ingest(upload models.Upload) (*models.Document, error) {
	mediaType := MediaTypeFor(upload.FileName, upload.MediaType)

	doc := &models.Document{
		FileName:  upload.FileName,
		MediaType: mediaType,
	}

	switch mediaType {
	case models.MediaTypeText:
		doc.Text = string(upload.Data)
		return doc, nil

	case models.MediaTypePDF:
		pages, err := s.pdfExtractor.ExtractPages(upload.Data)
		if err != nil {
			log.Printf("❌ PDF extraction failed for %s: %v", upload.FileName, err)
			return nil, &ExtractionFailedError{Reason: ExtractionReasonLibrary, Err: err}
		}

		text := CleanExtractedText(strings.Join(pages, " "))
		if text == "" {
			return nil, &ExtractionFailedError{Reason: ExtractionReasonEmpty}
		}

		doc.Text = text
		doc.PageCount = len(pages)
		log.Printf("📄 Extracted %d pages, %d characters from %s", doc.PageCount, len(doc.Text), upload.FileName)
		return doc, nil

	case models.MediaTypeDOCX, models.MediaTypeDOC:
		if mediaType == models.MediaTypeDOCX && s.docxExtractor != nil {
			text, err := s.docxExtractor.ExtractText(upload.Data)
			if err == nil && text != "" {
				doc.Text = text
				return doc, nil
			}
			if err != nil {
				log.Printf("⚠️  DOCX extraction failed for %s: %v", upload.FileName, err)
			}
		}

		doc.Warning = fmt.Sprintf("%s ready for analysis. If analysis fails, paste text manually.", upload.FileName)
		return doc, nil

	default:
		return nil, &UnsupportedTypeError{MediaType: mediaType}
	}
}

// MediaTypeFor normalizes a declared media type, falling back to the file extension when none
// was declared.
func MediaTypeFor(fileName, declared string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" {
		if parsed, _, err := mime.ParseMediaType(declared); err == nil {
			return parsed
		}
		return strings.ToLower(declared)
	}

	return extensionToType[strings.ToLower(filepath.Ext(fileName))]
}

// CleanExtractedText strips control characters, collapses whitespace runs and trims.
func CleanExtractedText(text string) string {
	text = controlChars.ReplaceAllString(text, " ")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

type docxTextExtractor struct{}

func NewDocxTextExtractor() TextExtractor {
	return &docxTextExtractor{}
}

// ExtractText implements TextExtractor.
func (d *docxTextExtractor) ExtractText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphs.ReplaceAllString(content, "\n")
	content = docxMarkup.ReplaceAllString(content, "")

	return CleanExtractedText(html.UnescapeString(content)), nil
}
