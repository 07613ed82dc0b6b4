package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const openaiMaxTokens = 2048

const openaiSystemPrompt = "You are a consumer-protection analyst for e-commerce product listings. " +
	"Respond with a single valid JSON object and nothing else."

// OpenAIClient adapts the chat completion API to the Provider interface,
// with the response format pinned to a JSON object.
type OpenAIClient struct {
	client *openai.Client
	apiKey string
	model  string
	logger *logrus.Logger
}

func NewOpenAIClient(apiKey, model string, timeout time.Duration, logger *logrus.Logger) *OpenAIClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

func (c *OpenAIClient) Source() string { return "openai" }

func (c *OpenAIClient) Configured() bool { return c.apiKey != "" }

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	// Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(c.model, "o1") || strings.HasPrefix(c.model, "o3") ||
		strings.HasPrefix(c.model, "o4") || strings.HasPrefix(c.model, "gpt-5") {
		req.MaxCompletionTokens = openaiMaxTokens
	} else {
		req.MaxTokens = openaiMaxTokens
	}

	c.logger.WithFields(logrus.Fields{
		"model":       c.model,
		"prompt_size": len(prompt),
	}).Debug("Making OpenAI chat completion request")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
