package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Ingest    IngestConfig
	Prompt    PromptConfig
	Workflow  WorkflowConfig
	Workspace WorkspaceConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	MaxBodySize int64
}

type AIConfig struct {
	Provider       string
	RequestTimeout time.Duration
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	APIVersion string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type IngestConfig struct {
	DocxText bool
	// AdvisorySize is only shown to the user; uploads are not rejected on size.
	AdvisorySize int64
}

type PromptConfig struct {
	File string
}

type WorkflowConfig struct {
	NumericTemperature     float32
	DescriptiveTemperature float32
}

type WorkspaceConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			Env:         getEnv("ENV", "development"),
			MaxBodySize: getEnvAsInt64("MAX_BODY_SIZE", 32<<20),
		},
		AI: AIConfig{
			Provider:       strings.ToLower(getEnv("AI_PROVIDER", ProviderGemini)),
			RequestTimeout: getEnvAsDuration("AI_REQUEST_TIMEOUT", "0s"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
			BaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/"),
			APIVersion: getEnv("GEMINI_API_VERSION", "v1"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
		Ingest: IngestConfig{
			DocxText:     getEnvAsBool("INGEST_DOCX_TEXT", false),
			AdvisorySize: getEnvAsInt64("ADVISORY_FILE_SIZE", 10485760),
		},
		Prompt: PromptConfig{
			File: getEnv("PROMPT_FILE", ""),
		},
		Workflow: WorkflowConfig{
			NumericTemperature:     getEnvAsFloat32("NUMERIC_TEMPERATURE", 0),
			DescriptiveTemperature: getEnvAsFloat32("DESCRIPTIVE_TEMPERATURE", 0.6),
		},
		Workspace: WorkspaceConfig{
			IdleTTL:       getEnvAsDuration("WORKSPACE_IDLE_TTL", "2h"),
			SweepInterval: getEnvAsDuration("WORKSPACE_SWEEP_INTERVAL", "10m"),
		},
	}
}

// APIKey returns the credential of the selected provider.
func (c *Config) APIKey() string {
	if c.AI.Provider == ProviderOpenAI {
		return c.OpenAI.APIKey
	}
	return c.Gemini.APIKey
}

// APIKeyName is the environment variable that supplies APIKey.
func (c *Config) APIKeyName() string {
	if c.AI.Provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
