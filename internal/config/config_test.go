package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "AI_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_API_VERSION",
		"NUMERIC_TEMPERATURE", "DESCRIPTIVE_TEMPERATURE", "INGEST_DOCX_TEXT", "AI_REQUEST_TIMEOUT",
		"WORKSPACE_IDLE_TTL", "WORKSPACE_SWEEP_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Gemini.Model)
	assert.Equal(t, "v1", cfg.Gemini.APIVersion)
	assert.Equal(t, float32(0), cfg.Workflow.NumericTemperature)
	assert.InDelta(t, 0.6, cfg.Workflow.DescriptiveTemperature, 0.0001)
	assert.False(t, cfg.Ingest.DocxText)
	assert.Equal(t, time.Duration(0), cfg.AI.RequestTimeout)
	assert.Equal(t, "GEMINI_API_KEY", cfg.APIKeyName())
	assert.Equal(t, 2*time.Hour, cfg.Workspace.IdleTTL)
	assert.Equal(t, 10*time.Minute, cfg.Workspace.SweepInterval)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DESCRIPTIVE_TEMPERATURE", "0.9")
	t.Setenv("INGEST_DOCX_TEXT", "true")
	t.Setenv("AI_REQUEST_TIMEOUT", "45s")
	t.Setenv("MAX_BODY_SIZE", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey())
	assert.Equal(t, "OPENAI_API_KEY", cfg.APIKeyName())
	assert.InDelta(t, 0.9, cfg.Workflow.DescriptiveTemperature, 0.0001)
	assert.True(t, cfg.Ingest.DocxText)
	assert.Equal(t, 45*time.Second, cfg.AI.RequestTimeout)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxBodySize)
}

func TestLoadPromptOverrides(t *testing.T) {
	overrides, err := LoadPromptOverrides("")
	require.NoError(t, err)
	assert.Empty(t, overrides.SystemPrompt)

	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "system_prompt: |\n  Be strict.\nuser_prompt: \"Resume: {{resume}} JD: {{job_description}}\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	overrides, err = LoadPromptOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, "Be strict.\n", overrides.SystemPrompt)
	assert.Equal(t, "Resume: {{resume}} JD: {{job_description}}", overrides.UserPrompt)

	_, err = LoadPromptOverrides(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
