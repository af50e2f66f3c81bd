package main

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// Mock LLM for testing
type mockLLM struct {
	Response   string
	Err        error
	lastSystem string
	lastPrompt string
	calls      int
}

func (m *mockLLM) Call(_ context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.Response, m.Err
}

func (m *mockLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	for _, msg := range messages {
		text := msg.Parts[0].(llms.TextContent).Text
		if msg.Role == llms.ChatMessageTypeSystem {
			m.lastSystem = text
		} else {
			m.lastPrompt = text
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				Content: m.Response,
			},
		},
	}, nil
}

const testSummarizeTemplate = `Document:
{{.Content}}
Analyze it.
`

func setupTestTemplates(t *testing.T) {
	t.Helper()
	templateMutex.Lock()
	defer templateMutex.Unlock()

	var err error
	summarizeTemplate, err = template.New("summarize").Parse(testSummarizeTemplate)
	require.NoError(t, err)
}

func TestSummarizeDocument(t *testing.T) {
	setupTestTemplates(t)
	t.Setenv("TOKEN_LIMIT", "")
	resetTokenLimit()

	mock := &mockLLM{Response: "  ## Plain-English Summary\nA lease agreement.  "}
	app := &App{LLM: mock}

	summary, err := app.summarizeDocument(context.Background(), app.LLM, "The lessee shall indemnify the lessor.")

	require.NoError(t, err)
	assert.Equal(t, "## Plain-English Summary\nA lease agreement.", summary)
	assert.Contains(t, mock.lastPrompt, "The lessee shall indemnify the lessor.")
	assert.Contains(t, mock.lastSystem, "LegalEase AI")
	assert.Contains(t, mock.lastSystem, "Disclaimer: I am an AI assistant and not a lawyer.")
}

func TestSummarizeDocumentPropagatesLLMError(t *testing.T) {
	setupTestTemplates(t)
	t.Setenv("TOKEN_LIMIT", "")
	resetTokenLimit()

	mock := &mockLLM{Err: fmt.Errorf("quota exceeded")}
	app := &App{LLM: mock}

	_, err := app.summarizeDocument(context.Background(), app.LLM, "Some text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSummarizeDocumentHonorsTokenLimit(t *testing.T) {
	setupTestTemplates(t)
	t.Setenv("TOKEN_LIMIT", "100")
	resetTokenLimit()

	mock := &mockLLM{Response: "summary"}
	app := &App{LLM: mock}

	longContent := strings.Repeat("whereas the party of the first part agrees ", 500)
	_, err := app.summarizeDocument(context.Background(), app.LLM, longContent)

	require.NoError(t, err)
	assert.LessOrEqual(t, getTokenCount(mock.lastPrompt), 100,
		"Final prompt should be within token limit")
}

func TestModelForRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("mock mode ignores caller key", func(t *testing.T) {
		t.Setenv("LEG_MODE", "mock")
		t.Setenv("LLM_PROVIDER", "")
		refreshEnvVars()

		mock := &mockLLM{}
		app := &App{LLM: mock}

		llm, err := app.modelForRequest(ctx, "caller-key")
		require.NoError(t, err)
		assert.Same(t, llms.Model(mock), llm)
	})

	t.Run("no key configured returns configuration error", func(t *testing.T) {
		t.Setenv("LEG_MODE", "")
		t.Setenv("LLM_PROVIDER", "")
		refreshEnvVars()

		app := &App{LLM: nil}

		_, err := app.modelForRequest(ctx, "")
		assert.ErrorIs(t, err, errMissingAPIKey)
	})

	t.Run("caller key builds per-request googleai provider", func(t *testing.T) {
		t.Setenv("LEG_MODE", "")
		t.Setenv("LLM_PROVIDER", "googleai")
		refreshEnvVars()

		app := &App{LLM: nil}

		llm, err := app.modelForRequest(ctx, "caller-key")
		require.NoError(t, err)
		assert.IsType(t, &GoogleAIProvider{}, llm)
	})

	t.Run("caller key ignored for other providers", func(t *testing.T) {
		t.Setenv("LEG_MODE", "")
		t.Setenv("LLM_PROVIDER", "ollama")
		refreshEnvVars()

		mock := &mockLLM{}
		app := &App{LLM: mock}

		llm, err := app.modelForRequest(ctx, "caller-key")
		require.NoError(t, err)
		assert.Same(t, llms.Model(mock), llm)
	})

	t.Run("server-side model used when no caller key", func(t *testing.T) {
		t.Setenv("LEG_MODE", "")
		t.Setenv("LLM_PROVIDER", "")
		refreshEnvVars()

		mock := &mockLLM{}
		app := &App{LLM: mock}

		llm, err := app.modelForRequest(ctx, "")
		require.NoError(t, err)
		assert.Same(t, llms.Model(mock), llm)
	})
}
