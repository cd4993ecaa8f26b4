package models

import "github.com/google/uuid"

type SectionKind string

const (
	SectionScore     SectionKind = "score"
	SectionMatch     SectionKind = "match"
	SectionTable     SectionKind = "table"
	SectionBadges    SectionKind = "badges"
	SectionChecklist SectionKind = "checklist"
	SectionParagraph SectionKind = "paragraph"
	SectionOrdered   SectionKind = "ordered"
	SectionSummary   SectionKind = "summary"
)

type ScoreTone string

const (
	ToneGood ScoreTone = "good"
	ToneFair ScoreTone = "fair"
	TonePoor ScoreTone = "poor"
)

type ViewRow struct {
	Requirement string `json:"requirement"`
	Evidence    string `json:"evidence"`
	Label       string `json:"label"`
}

// Section is one titled block of a rendered report. Only the fields relevant to Kind are set.
type Section struct {
	Title    string      `json:"title"`
	Kind     SectionKind `json:"kind"`
	Headline string      `json:"headline,omitempty"`
	Progress float64     `json:"progress,omitempty"`
	Tone     ScoreTone   `json:"tone,omitempty"`
	Text     string      `json:"text,omitempty"`
	Items    []string    `json:"items,omitempty"`
	Rows     []ViewRow   `json:"rows,omitempty"`
}

// View is the display form of an AnalysisReport.
type View struct {
	ReportID uuid.UUID `json:"report_id"`
	Sections []Section `json:"sections"`
}

// Page is everything the analyzer page template needs.
type Page struct {
	FileName       string
	ResumeText     string
	JobDescription string
	Analyzing      bool
	Notice         *Notification
	View           *View
}
