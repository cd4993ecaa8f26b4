package services

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"alfredoptarigan/resumesync/internal/models"
)

const (
	TitleScore           = "ATS Score"
	TitleMatch           = "Resume-to-JD Match Percentage"
	TitleComparison      = "Detailed Match Analysis"
	TitleKnockout        = "Knockout Factors Affecting ATS Score"
	TitleStrengths       = "Resume Strengths"
	TitleConclusion      = "Conclusion"
	TitleRecommendations = "How to Improve"
	TitleSummary         = "Final AI Summary"
)

const (
	LabelStrongMatch  = "✅ Strong Match"
	LabelPartialMatch = "⚠️ Partial Match"
	LabelMissing      = "❌ Missing"
	LabelMatch        = "Match"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"number": formatNumber}).
		ParseFS(templateFS, "templates/index.html"),
)

// Present turns a report into its eight display sections. It does not modify the report.
func Present(report *models.AnalysisReport) *models.View {
	rows := make([]models.ViewRow, 0, len(report.ComparisonRows))
	for _, row := range report.ComparisonRows {
		rows = append(rows, models.ViewRow{
			Requirement: row.Requirement,
			Evidence:    row.Evidence,
			Label:       StatusLabel(row.Status),
		})
	}

	return &models.View{
		ReportID: report.ID,
		Sections: []models.Section{
			{
				Title:    TitleScore,
				Kind:     models.SectionScore,
				Headline: formatNumber(report.Score.Value) + " / 100",
				Progress: report.Score.Value,
				Tone:     ScoreToneFor(report.Score.Value),
				Text:     report.Score.Reason,
			},
			{
				Title:    TitleMatch,
				Kind:     models.SectionMatch,
				Headline: formatNumber(report.MatchPercentage) + "% Match",
				Progress: report.MatchPercentage,
			},
			{Title: TitleComparison, Kind: models.SectionTable, Rows: rows},
			{Title: TitleKnockout, Kind: models.SectionBadges, Items: copyStrings(report.KnockoutFactors)},
			{Title: TitleStrengths, Kind: models.SectionChecklist, Items: copyStrings(report.Strengths)},
			{Title: TitleConclusion, Kind: models.SectionParagraph, Text: report.Conclusion},
			{Title: TitleRecommendations, Kind: models.SectionOrdered, Items: copyStrings(report.Recommendations)},
			{Title: TitleSummary, Kind: models.SectionSummary, Text: report.OverallSummary},
		},
	}
}

// StatusLabel maps free-form match status text to a display label.
// Rules are case-insensitive substring checks applied in order.
func StatusLabel(status string) string {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "strong"):
		return LabelStrongMatch
	case strings.Contains(s, "partial"):
		return LabelPartialMatch
	case strings.Contains(s, "missing"), strings.Contains(s, "no"):
		return LabelMissing
	default:
		return LabelMatch
	}
}

func ScoreToneFor(score float64) models.ScoreTone {
	switch {
	case score >= 80:
		return models.ToneGood
	case score >= 60:
		return models.ToneFair
	default:
		return models.TonePoor
	}
}

// RenderText writes the view as plain text, one block per section.
func RenderText(view *models.View) string {
	var b strings.Builder

	for i, section := range view.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "== %s ==\n", section.Title)

		switch section.Kind {
		case models.SectionScore:
			fmt.Fprintf(&b, "%s\n", section.Headline)
			fmt.Fprintf(&b, "Reason: %s\n", section.Text)
		case models.SectionMatch:
			fmt.Fprintf(&b, "%s\n", section.Headline)
		case models.SectionTable:
			for _, row := range section.Rows {
				fmt.Fprintf(&b, "- %s | %s | %s\n", row.Requirement, row.Evidence, row.Label)
			}
		case models.SectionBadges:
			for _, item := range section.Items {
				fmt.Fprintf(&b, "❌ %s\n", item)
			}
		case models.SectionChecklist:
			for _, item := range section.Items {
				fmt.Fprintf(&b, "✅ %s\n", item)
			}
		case models.SectionOrdered:
			for n, item := range section.Items {
				fmt.Fprintf(&b, "%d. %s\n", n+1, item)
			}
		default:
			fmt.Fprintf(&b, "%s\n", section.Text)
		}
	}

	return b.String()
}

// RenderHTML writes the analyzer page.
func RenderHTML(w io.Writer, page *models.Page) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
