package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PromptOverrides replaces the built-in evaluation instructions.
// Empty fields keep the defaults.
type PromptOverrides struct {
	SystemPrompt string `yaml:"system_prompt"`
	UserPrompt   string `yaml:"user_prompt"`
}

// LoadPromptOverrides reads a YAML prompt file. An empty path yields no overrides.
func LoadPromptOverrides(path string) (*PromptOverrides, error) {
	if path == "" {
		return &PromptOverrides{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}

	var overrides PromptOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file: %w", err)
	}

	return &overrides, nil
}
