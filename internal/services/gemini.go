package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"alfredoptarigan/resumesync/internal/config"
)

type geminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(cfg config.GeminiConfig, timeout time.Duration) (Completer, error) {
	ctx := context.Background()

	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: &apiKeyTransport{apiKey: cfg.APIKey, base: http.DefaultTransport},
		},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: cfg.Model,
	}, nil
}

// Complete implements Completer.
func (g *geminiService) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), genConfig)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", geminiError(err)
	}

	text := firstCandidateText(resp)
	if text == "" {
		log.Println("❌ No text content in Gemini response")
		return "", &EmptyResponseError{}
	}

	return text, nil
}

// firstCandidateText returns the first text part of the first candidate.
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	part := candidate.Content.Parts[0]
	if part == nil {
		return ""
	}

	return part.Text
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Status: apiErr.Code, Message: apiErr.Message}
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &UpstreamError{Status: apiErrPtr.Code, Message: apiErrPtr.Message}
	}

	return fmt.Errorf("failed to generate text: %w", err)
}

// apiKeyTransport passes the API key as the `key` query parameter on every request.
type apiKeyTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	query := clone.URL.Query()
	query.Set("key", t.apiKey)
	clone.URL.RawQuery = query.Encode()

	return t.base.RoundTrip(clone)
}
