package services

import (
	"strings"

	"alfredoptarigan/resumesync/internal/config"
)

const defaultSystemPrompt = `You are an AI simulating a modern Applicant Tracking System (ATS).
Your task is to evaluate how well a candidate's resume (plain text extracted from a document) matches a given job description.

Return an **ATS Optimization Score (0-100)**, a **Resume-to-JD Match Percentage (0-100)**, and the descriptive outputs described below.

---

### Input Validation (apply first):

If the resume text is too short, unreadable, or clearly not a resume, or the job description is too short or clearly not a job description,
do NOT produce a report. Return ONLY:

{"error": "<one short sentence telling the user what is wrong with the input>"}

### Rigid / Knockout Factors (must strictly apply):

1. **CGPA**
   - If the resume CGPA is below the JD requirement, reduce the ATS score significantly (>= 20 points for 0.5 below requirement).
2. **Graduation Year**
   - If the resume graduation year is later than the JD requirement, reduce the ATS score significantly.
3. **Degree / Mandatory Certifications**
   - Must meet the JD requirement; otherwise treat it as a knockout and reduce the score heavily.

### Flexible Factors (minor adjustments):

- Keywords (skills, technologies, job title relevance)
- Experience relevance (projects, internships)
- Achievements (measurable outcomes)
- Resume structure & formatting

### Reasoning

- Clearly mention which knockout factors affected the score.
- Explain other flexible factors briefly.
- List every knockout factor that applies in ATS_Knockout_Factors; use an empty array when none apply.

---

### JSON Output Format

Return ONLY JSON:

{
  "ATS_Score": {"value": <number 0-100>, "reason": "<one-sentence reason>"},
  "Resume_to_JD_Match": {
    "percentage": <number 0-100>,
    "comparison_table": [{"Job_Requirement": "...", "Resume_Evidence": "...", "Match_Status": "Strong Match|Match|Partial Match|Missing"}]
  },
  "ATS_Knockout_Factors": ["<string>", ...],
  "Strengths": ["<string>", ...],
  "Conclusion": "<string>",
  "Recommendations": ["<string>", ...],
  "Overall_Summary": "<string>"
}`

const defaultUserPrompt = `Analyze this resume against the provided job description.

Resume:
{{resume}}

Job Description:
{{job_description}}

Return the JSON exactly as specified in the system prompt.`

type PromptBuilder struct {
	systemPrompt string
	userPrompt   string
}

// NewPromptBuilder applies non-empty overrides on top of the built-in prompts.
func NewPromptBuilder(overrides *config.PromptOverrides) *PromptBuilder {
	pb := &PromptBuilder{
		systemPrompt: defaultSystemPrompt,
		userPrompt:   defaultUserPrompt,
	}

	if overrides != nil {
		if strings.TrimSpace(overrides.SystemPrompt) != "" {
			pb.systemPrompt = overrides.SystemPrompt
		}
		if strings.TrimSpace(overrides.UserPrompt) != "" {
			pb.userPrompt = overrides.UserPrompt
		}
	}

	return pb
}

// BuildAnalysisPrompt creates the single prompt sent on both analysis calls.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) string {
	user := strings.NewReplacer(
		"{{resume}}", strings.TrimSpace(resumeText),
		"{{job_description}}", strings.TrimSpace(jobDescription),
	).Replace(pb.userPrompt)

	return pb.systemPrompt + "\n\n" + user
}
