package main

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"google.golang.org/genai"
)

// GoogleAIProvider adapts the Gemini API (google.golang.org/genai) to the
// llms.Model interface used throughout the app.
type GoogleAIProvider struct {
	client *genai.Client
	model  string
}

// NewGoogleAIProvider creates a new GoogleAIProvider instance
func NewGoogleAIProvider(ctx context.Context, model string, apiKey string) (*GoogleAIProvider, error) {
	if apiKey == "" {
		return nil, errMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create googleai client: %w", err)
	}

	return &GoogleAIProvider{
		client: client,
		model:  model,
	}, nil
}

// generate sends a text generation request to the Gemini API. An empty
// systemInstruction is omitted from the request.
func (p *GoogleAIProvider) generate(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("googleai client not initialized")
	}

	var genConfig *genai.GenerateContentConfig
	if systemInstruction != "" {
		genConfig = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{
					{Text: systemInstruction},
				},
			},
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("googleai GenerateContent API error: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("googleai GenerateContent API returned empty response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("googleai GenerateContent API returned a candidate with no content")
	}

	if candidate.Content.Parts[0].Text == "" {
		return "", fmt.Errorf("googleai GenerateContent API returned a candidate with empty text")
	}

	return candidate.Content.Parts[0].Text, nil
}

// GenerateContent implements the llms.Model interface. System messages become
// the Gemini system instruction; the remaining text parts form the prompt.
func (p *GoogleAIProvider) GenerateContent(ctx context.Context, messages []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
	var systemInstruction string
	var prompt string

	for _, msg := range messages {
		for _, part := range msg.Parts {
			textPart, ok := part.(llms.TextContent)
			if !ok {
				return nil, fmt.Errorf("googleai provider only supports text content parts")
			}
			if msg.Role == llms.ChatMessageTypeSystem {
				systemInstruction = textPart.Text
			} else {
				prompt = textPart.Text
			}
		}
	}
	if prompt == "" {
		return nil, fmt.Errorf("no prompt provided")
	}

	result, err := p.generate(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				Content: result,
			},
		},
	}, nil
}

// Call implements the llms.Model interface for compatibility with langchaingo.
func (p *GoogleAIProvider) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	return p.generate(ctx, "", prompt)
}
