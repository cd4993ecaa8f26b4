package models

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the per-browser-session state of the analyzer page.
type Workspace struct {
	ID             uuid.UUID
	FileName       string
	ResumeText     string
	JobDescription string
	Report         *AnalysisReport
	Notice         *Notification
	Analyzing      bool
	UpdatedAt      time.Time
}
