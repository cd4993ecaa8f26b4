package models

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeDOC  = "application/msword"
	MediaTypeText = "text/plain"
)

// Upload is a user-selected file before ingestion.
type Upload struct {
	FileName  string
	MediaType string
	Data      []byte
}

// Document is the outcome of ingesting an Upload.
type Document struct {
	FileName  string `json:"file_name"`
	MediaType string `json:"media_type"`
	Text      string `json:"text"`
	PageCount int    `json:"page_count,omitempty"`
	// Warning is set when the caller should ask for manual text entry.
	Warning string `json:"warning,omitempty"`
}
