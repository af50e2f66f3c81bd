package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// errMissingAPIKey signals that no Gemini API key is available for a live
// request. The handler maps it to a configuration error for the caller.
var errMissingAPIKey = errors.New("GEMINI_API_KEY is not set: set it in the environment, a .env file, or pass apiKey in the request")

// modelForRequest resolves which LLM serves a request. A caller-supplied key
// takes precedence for that request only and is honored for the googleai
// provider; mock mode ignores keys entirely.
func (app *App) modelForRequest(ctx context.Context, apiKey string) (llms.Model, error) {
	if isMockMode() {
		return app.LLM, nil
	}

	if apiKey != "" {
		switch strings.ToLower(llmProvider) {
		case "", "googleai", "gemini":
			return NewGoogleAIProvider(ctx, resolveModelName(), apiKey)
		default:
			log.Warnf("Ignoring caller-supplied apiKey for provider '%s'", llmProvider)
		}
	}

	if app.LLM == nil {
		return nil, errMissingAPIKey
	}
	return app.LLM, nil
}

// summarizeDocument renders the prompt template for the given document text
// and asks the model for an analysis. The content is truncated first when a
// token limit is configured.
func (app *App) summarizeDocument(ctx context.Context, llm llms.Model, content string) (string, error) {
	templateMutex.RLock()
	defer templateMutex.RUnlock()

	// Truncate content if a token limit is set
	availableTokens, err := getAvailableTokensForContent(summarizeTemplate, map[string]interface{}{})
	if err != nil {
		return "", fmt.Errorf("error calculating available tokens: %w", err)
	}
	content, err = truncateContentByTokens(content, availableTokens)
	if err != nil {
		return "", fmt.Errorf("error truncating content: %w", err)
	}

	var promptBuffer bytes.Buffer
	err = summarizeTemplate.Execute(&promptBuffer, map[string]interface{}{
		"Content": content,
	})
	if err != nil {
		return "", fmt.Errorf("error executing summarize template: %w", err)
	}

	prompt := promptBuffer.String()
	log.Debugf("Summarize prompt: %s", prompt)

	completion, err := llm.GenerateContent(ctx, []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextContent{
					Text: systemPrompt,
				},
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextContent{
					Text: prompt,
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error getting response from LLM: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return strings.TrimSpace(completion.Choices[0].Content), nil
}
