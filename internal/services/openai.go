package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"alfredoptarigan/resumesync/internal/config"
)

type openAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(cfg config.OpenAIConfig, timeout time.Duration) Completer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &openAIService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

// Complete implements Completer.
func (o *openAIService) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	// A zero temperature is dropped by omitempty on the request struct.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("❌ OpenAI API error: %v", err)
		return "", openAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Println("❌ No text content in OpenAI response")
		return "", &EmptyResponseError{}
	}

	return resp.Choices[0].Message.Content, nil
}

func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{Status: reqErr.HTTPStatusCode, Message: reqErr.HTTPStatus}
	}

	return fmt.Errorf("failed to create chat completion: %w", err)
}
