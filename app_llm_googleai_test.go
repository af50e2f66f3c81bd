package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestNewGoogleAIProviderRequiresKey(t *testing.T) {
	_, err := NewGoogleAIProvider(context.Background(), "gemini-2.5-flash", "")
	assert.ErrorIs(t, err, errMissingAPIKey)
}

func TestGoogleAIProviderGenerateContentValidation(t *testing.T) {
	provider, err := NewGoogleAIProvider(context.Background(), "gemini-2.5-flash", "test-key")
	require.NoError(t, err)

	t.Run("no prompt", func(t *testing.T) {
		_, err := provider.GenerateContent(context.Background(), []llms.MessageContent{})
		assert.ErrorContains(t, err, "no prompt provided")
	})

	t.Run("system message alone is not a prompt", func(t *testing.T) {
		_, err := provider.GenerateContent(context.Background(), []llms.MessageContent{
			{
				Role:  llms.ChatMessageTypeSystem,
				Parts: []llms.ContentPart{llms.TextContent{Text: "system only"}},
			},
		})
		assert.ErrorContains(t, err, "no prompt provided")
	})

	t.Run("non-text parts are rejected", func(t *testing.T) {
		_, err := provider.GenerateContent(context.Background(), []llms.MessageContent{
			{
				Role:  llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{llms.BinaryContent{MIMEType: "image/png", Data: []byte{1}}},
			},
		})
		assert.ErrorContains(t, err, "only supports text")
	})
}
