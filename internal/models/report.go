package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultKnockoutFactor replaces an empty knockout factor list.
const DefaultKnockoutFactor = "All Clear 🚀"

type MatchStatus string

const (
	StatusStrongMatch  MatchStatus = "Strong Match"
	StatusMatch        MatchStatus = "Match"
	StatusPartialMatch MatchStatus = "Partial Match"
	StatusMissing      MatchStatus = "Missing"
)

type Score struct {
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

type ComparisonRow struct {
	Requirement string `json:"requirement"`
	Evidence    string `json:"evidence"`
	// Status is the model's text as returned; it is not restricted to the MatchStatus values.
	Status string `json:"status"`
}

// AnalysisReport is the merged result of one analysis. It is never mutated after creation.
type AnalysisReport struct {
	ID              uuid.UUID       `json:"id"`
	Score           Score           `json:"score"`
	MatchPercentage float64         `json:"match_percentage"`
	ComparisonRows  []ComparisonRow `json:"comparison_rows"`
	KnockoutFactors []string        `json:"knockout_factors"`
	Strengths       []string        `json:"strengths"`
	Conclusion      string          `json:"conclusion"`
	Recommendations []string        `json:"recommendations"`
	OverallSummary  string          `json:"overall_summary"`
	CreatedAt       time.Time       `json:"created_at"`
}
