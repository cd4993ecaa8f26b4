package models

type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is the short user-facing message shown after every action.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}

type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" form:"resume_text"`
	JobDescription string `json:"job_description" form:"job_description"`
}

type IngestResponse struct {
	Document     *Document    `json:"document"`
	Notification Notification `json:"notification"`
}

type ErrorResponse struct {
	Error        string       `json:"error"`
	Notification Notification `json:"notification"`
}

type AnalyzeResponse struct {
	Report       *AnalysisReport `json:"report"`
	View         *View           `json:"view"`
	Notification Notification    `json:"notification"`
}
