package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resumesync/internal/config"
	"alfredoptarigan/resumesync/internal/models"
	"alfredoptarigan/resumesync/internal/services"
)

const modelReport = `{"ATS_Score":{"value":81,"reason":"Good keyword coverage."},"Resume_to_JD_Match":{"percentage":77,"comparison_table":[{"Job_Requirement":"Go","Resume_Evidence":"6 years","Match_Status":"Strong Match"}]},"ATS_Knockout_Factors":[],"Strengths":["APIs"],"Conclusion":"Fit.","Recommendations":["Add metrics"],"Overall_Summary":"Recommended."}`

func newModelServer(t *testing.T) (*config.Config, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		candidate := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": "```json\n" + modelReport + "\n```"}},
				},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidate)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		AI: config.AIConfig{Provider: config.ProviderGemini},
		Gemini: config.GeminiConfig{
			APIKey:     "test-key",
			Model:      "gemini-test",
			BaseURL:    srv.URL,
			APIVersion: "v1",
		},
		Workflow: config.WorkflowConfig{NumericTemperature: 0, DescriptiveTemperature: 0.6},
	}
	return cfg, &calls
}

func writeResume(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyzeCommandPrintsReport(t *testing.T) {
	cfg, calls := newModelServer(t)
	resume := writeResume(t, "Jane Doe, Go engineer")

	var out bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"analyze", "--resume", resume, "--job-text", "Senior Go developer"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, 2, *calls)
	assert.Contains(t, out.String(), "== ATS Score ==\n81 / 100\n")
	assert.Contains(t, out.String(), "❌ All Clear 🚀")
	assert.Contains(t, out.String(), "- Go | 6 years | ✅ Strong Match")
}

func TestAnalyzeCommandJSON(t *testing.T) {
	cfg, _ := newModelServer(t)
	resume := writeResume(t, "Jane Doe, Go engineer")
	job := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(job, []byte("Senior Go developer"), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"analyze", "--resume", resume, "--job", job, "--json"})

	require.NoError(t, cmd.Execute())

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 81.0, resp.Report.Score.Value)
	assert.Equal(t, []string{models.DefaultKnockoutFactor}, resp.Report.KnockoutFactors)
	assert.Len(t, resp.View.Sections, 8)
}

func TestAnalyzeCommandReportsMissingJobDescription(t *testing.T) {
	cfg, calls := newModelServer(t)
	resume := writeResume(t, "Jane Doe")

	var stderr bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"analyze", "--resume", resume, "--job-text", "   "})

	err := cmd.Execute()

	var missing *services.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, services.FieldJobDescription, missing.Field)
	assert.Contains(t, stderr.String(), services.TitleMissingJD)
	assert.Zero(t, *calls)
}

func TestAnalyzeCommandRejectsResumeWithoutText(t *testing.T) {
	cfg, calls := newModelServer(t)
	resume := filepath.Join(t.TempDir(), "cv.doc")
	require.NoError(t, os.WriteFile(resume, []byte{0xd0, 0xcf, 0x11, 0xe0}, 0o600))

	var stderr bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"analyze", "--resume", resume, "--job-text", "Senior Go developer"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.True(t, errors.Is(err, errNoDocumentText))
	assert.Contains(t, stderr.String(), services.TitleNoTextExtracted)
	assert.Contains(t, stderr.String(), "cv.doc")
	assert.Zero(t, *calls)
}

func TestAnalyzeCommandFlagValidation(t *testing.T) {
	cfg, _ := newModelServer(t)

	tests := [][]string{
		{"analyze", "--job-text", "Go developer"},
		{"analyze", "--resume", "cv.txt"},
		{"analyze", "--resume", "cv.txt", "--job", "jd.txt", "--job-text", "Go developer"},
	}

	for _, args := range tests {
		cmd := newRootCmd(cfg)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)

		assert.Error(t, cmd.Execute(), args)
	}
}
