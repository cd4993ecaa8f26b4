package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resumesync/internal/config"
	"alfredoptarigan/resumesync/internal/models"
)

const defaultSentinelMessage = "The resume or job description could not be analyzed."

type AnalyzerService interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisReport, error)
}

type analyzerService struct {
	completer              Completer
	promptBuilder          *PromptBuilder
	numericTemperature     float32
	descriptiveTemperature float32
	now                    func() time.Time
}

func NewAnalyzerService(
	completer Completer,
	promptBuilder *PromptBuilder,
	workflow config.WorkflowConfig,
) AnalyzerService {
	return &analyzerService{
		completer:              completer,
		promptBuilder:          promptBuilder,
		numericTemperature:     workflow.NumericTemperature,
		descriptiveTemperature: workflow.DescriptiveTemperature,
		now:                    time.Now,
	}
}

// analysisPayload mirrors the JSON object the model is asked to return.
type analysisPayload struct {
	Error           json.RawMessage `json:"error"`
	ATSScore        *scorePayload   `json:"ATS_Score"`
	Match           *matchPayload   `json:"Resume_to_JD_Match"`
	KnockoutFactors []string        `json:"ATS_Knockout_Factors"`
	Strengths       []string        `json:"Strengths"`
	Conclusion      string          `json:"Conclusion"`
	Recommendations []string        `json:"Recommendations"`
	OverallSummary  string          `json:"Overall_Summary"`
}

type scorePayload struct {
	Value  *float64 `json:"value"`
	Reason string   `json:"reason"`
}

type matchPayload struct {
	Percentage      *float64               `json:"percentage"`
	ComparisonTable []comparisonRowPayload `json:"comparison_table"`
}

type comparisonRowPayload struct {
	JobRequirement string `json:"Job_Requirement"`
	ResumeEvidence string `json:"Resume_Evidence"`
	MatchStatus    string `json:"Match_Status"`
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisReport, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &MissingInputError{Field: FieldResume}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &MissingInputError{Field: FieldJobDescription}
	}

	prompt := a.promptBuilder.BuildAnalysisPrompt(resumeText, jobDescription)
	log.Printf("📝 Analysis prompt length: %d characters", len(prompt))

	// Step 1: numeric fields at low temperature
	log.Println("🤖 Requesting numeric analysis...")
	numericText, err := a.completer.Complete(ctx, prompt, a.numericTemperature)
	if err != nil {
		return nil, fmt.Errorf("numeric analysis request failed: %w", err)
	}
	log.Printf("✅ Numeric analysis received: %d characters", len(numericText))

	var numeric analysisPayload
	if err := DecodeModelJSON(numericText, &numeric); err != nil {
		return nil, &MalformedResponseError{Reason: "numeric response is not valid JSON", Err: err}
	}
	if message, ok := numeric.sentinel(); ok {
		log.Printf("⚠️  Model rejected the input: %s", message)
		return nil, &InvalidInputError{Message: message}
	}
	if err := numeric.validate(); err != nil {
		return nil, err
	}

	// Step 2: descriptive fields at higher temperature
	log.Println("🤖 Requesting descriptive analysis...")
	descriptiveText, err := a.completer.Complete(ctx, prompt, a.descriptiveTemperature)
	if err != nil {
		return nil, fmt.Errorf("descriptive analysis request failed: %w", err)
	}
	log.Printf("✅ Descriptive analysis received: %d characters", len(descriptiveText))

	var descriptive analysisPayload
	if err := DecodeModelJSON(descriptiveText, &descriptive); err != nil {
		log.Printf("⚠️  Ignoring unparseable descriptive response: %v", err)
	} else if message, ok := descriptive.sentinel(); ok {
		log.Printf("⚠️  Model rejected the input: %s", message)
		return nil, &InvalidInputError{Message: message}
	}

	// TODO: take Strengths, Conclusion, Recommendations and Overall_Summary from the
	// descriptive response once the report layout is settled; all fields come from step 1.
	report := numeric.toReport(a.now())
	log.Printf("✅ Analysis %s completed (score %.0f, match %.0f%%)", report.ID, report.Score.Value, report.MatchPercentage)

	return report, nil
}

// sentinel reports whether the payload is the model's error object and returns its message.
func (p *analysisPayload) sentinel() (string, bool) {
	if len(p.Error) == 0 {
		return "", false
	}

	var message string
	if err := json.Unmarshal(p.Error, &message); err == nil {
		if strings.TrimSpace(message) == "" {
			return defaultSentinelMessage, true
		}
		return message, true
	}

	if string(p.Error) == "null" {
		return defaultSentinelMessage, true
	}

	return string(p.Error), true
}

func (p *analysisPayload) validate() error {
	if p.ATSScore == nil || p.ATSScore.Value == nil {
		return &MalformedResponseError{Reason: "ATS_Score.value is missing"}
	}
	if !inPercentRange(*p.ATSScore.Value) {
		return &MalformedResponseError{Reason: fmt.Sprintf("ATS_Score.value %v is outside 0-100", *p.ATSScore.Value)}
	}

	if p.Match == nil || p.Match.Percentage == nil {
		return &MalformedResponseError{Reason: "Resume_to_JD_Match.percentage is missing"}
	}
	if !inPercentRange(*p.Match.Percentage) {
		return &MalformedResponseError{Reason: fmt.Sprintf("Resume_to_JD_Match.percentage %v is outside 0-100", *p.Match.Percentage)}
	}

	return nil
}

func (p *analysisPayload) toReport(createdAt time.Time) *models.AnalysisReport {
	rows := make([]models.ComparisonRow, 0, len(p.Match.ComparisonTable))
	for _, row := range p.Match.ComparisonTable {
		rows = append(rows, models.ComparisonRow{
			Requirement: row.JobRequirement,
			Evidence:    row.ResumeEvidence,
			Status:      row.MatchStatus,
		})
	}

	knockout := copyStrings(p.KnockoutFactors)
	if len(knockout) == 0 {
		knockout = []string{models.DefaultKnockoutFactor}
	}

	return &models.AnalysisReport{
		ID: uuid.New(),
		Score: models.Score{
			Value:  *p.ATSScore.Value,
			Reason: p.ATSScore.Reason,
		},
		MatchPercentage: *p.Match.Percentage,
		ComparisonRows:  rows,
		KnockoutFactors: knockout,
		Strengths:       copyStrings(p.Strengths),
		Conclusion:      p.Conclusion,
		Recommendations: copyStrings(p.Recommendations),
		OverallSummary:  p.OverallSummary,
		CreatedAt:       createdAt,
	}
}

func inPercentRange(v float64) bool {
	return v >= 0 && v <= 100
}

func copyStrings(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}
