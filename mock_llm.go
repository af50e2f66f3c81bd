package main

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// mockAnalysis is the canned response returned in mock mode so the service
// can be exercised without network access or an API key.
const mockAnalysis = "## Plain-English Summary:\nThis is a mock summary used in mock mode.\n\n" +
	"## Legal Jargon Explained:\n* MockTerm - A mocked definition.\n\n" +
	"## General Suggestions:\n* Review the document with a qualified lawyer.\n\n" +
	"Disclaimer: I am an AI assistant and not a lawyer. This analysis is for informational purposes only and is not legal advice. You should consult with a qualified legal professional for advice on your specific situation."

// MockLLM implements llms.Model and returns a fixed analysis for any input.
// It is used when LEG_MODE=mock and never makes network calls.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return mockAnalysis, nil
}

func (m *MockLLM) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				Content: mockAnalysis,
			},
		},
	}, nil
}
