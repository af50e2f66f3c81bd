package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"legalease-ai/internal/constants"
)

// Global Variables and Constants
var (

	// Logger
	log = logrus.New()

	// Environment Variables
	geminiAPIKey = os.Getenv("GEMINI_API_KEY")
	legMode      = os.Getenv("LEG_MODE")
	llmProvider  = os.Getenv("LLM_PROVIDER")
	llmModel     = os.Getenv("LLM_MODEL")
	logLevel     = strings.ToLower(os.Getenv("LOG_LEVEL"))
	tokenLimit   = 0 // loaded from TOKEN_LIMIT

	// Templates
	summarizeTemplate *template.Template
	templateMutex     sync.RWMutex

	// System instruction sent with every analysis request. The disclaimer
	// wording is mandatory and must not be altered.
	systemPrompt = `You are 'LegalEase AI', a helpful legal assistant. Your job is to analyze legal documents and explain them in simple, plain English (around an 8th-grade reading level). Use Markdown for formatting your response (e.g., "## Summary", "## Complex Terms", "* Item 1").

Your response MUST include three sections:
1.  **## Plain-English Summary:** A brief summary of the document's main purpose and key points.
2.  **## Legal Jargon Explained:** Identify and define complex legal terms from the document in a simple, easy-to-understand way. List them as bullet points.
3.  **## General Suggestions:** Provide a list of general, common-sense next steps or things to consider based on the document's content.

IMPORTANT: You must never provide specific legal advice, recommend a specific lawyer, or create a client-attorney relationship. Always include this disclaimer at the end of your response, exactly as written:
'Disclaimer: I am an AI assistant and not a lawyer. This analysis is for informational purposes only and is not legal advice. You should consult with a qualified legal professional for advice on your specific situation.'`

	// Default templates
	defaultSummarizePrompt = `Here is the legal document text:
---
{{.Content}}
---
Please analyze it according to your instructions.
`
)

// App struct to hold dependencies
type App struct {
	LLM llms.Model
}

func main() {
	// Load .env if present for local dev. Values in the file win over the
	// ambient environment so a stale shell export cannot shadow the file.
	for _, w := range loadDotEnv(".env") {
		log.Warn(w)
	}
	refreshEnvVars()

	// Initialize logrus logger
	initLogger()

	// Validate Environment Variables
	validateEnvVars()

	// Load Templates
	loadTemplates()

	// Initialize LLM
	llm, err := createLLM()
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	if llm == nil && !isMockMode() {
		log.Warn("GEMINI_API_KEY is not set; requests must supply their own apiKey")
	}

	// Initialize App with dependencies
	app := &App{
		LLM: llm,
	}

	// Create a Gin router with recovery middleware and request ID logging
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())

	// API routes
	api := router.Group("/api")
	{
		api.POST("/summarize", app.summarizeHandler)
		api.GET("/prompts", getPromptsHandler)
		api.POST("/prompts", updatePromptsHandler)
	}

	router.GET("/health", healthHandler)

	// Serve the embedded demo frontend
	router.GET("/", func(c *gin.Context) {
		serveEmbeddedFile(c, "index.html")
	})
	router.NoRoute(func(c *gin.Context) {
		serveEmbeddedFile(c, c.Request.URL.Path)
	})

	addr := serverAddress()
	log.Infof("Starting LegalEase AI server on http://%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func initLogger() {
	switch logLevel {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
		if logLevel != "" {
			log.Fatalf("Invalid log level: '%s'.", logLevel)
		}
	}

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// requestIDMiddleware attaches a request ID to each request so log lines from
// a single call can be correlated.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()

		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
		}).Debug("Request handled")
	}
}

func isMockMode() bool {
	return strings.EqualFold(legMode, "mock")
}

// refreshEnvVars re-reads the environment-derived globals. Called after
// loadDotEnv so file values are picked up, and from tests.
func refreshEnvVars() {
	geminiAPIKey = os.Getenv("GEMINI_API_KEY")
	legMode = os.Getenv("LEG_MODE")
	llmProvider = os.Getenv("LLM_PROVIDER")
	llmModel = os.Getenv("LLM_MODEL")
	logLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	resetTokenLimit()
}

func resetTokenLimit() {
	tokenLimit = 0
	if limit := os.Getenv("TOKEN_LIMIT"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 0 {
			log.Warnf("Invalid TOKEN_LIMIT value '%s', disabling token limit", limit)
			return
		}
		tokenLimit = parsed
	}
}

func serverAddress() string {
	host := os.Getenv("HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	return host + ":" + port
}

// validateEnvVars ensures the configured provider is usable. A missing Gemini
// key is deliberately not fatal: callers may supply their own key per request,
// and mock mode needs no key at all.
func validateEnvVars() {
	if isMockMode() {
		log.Info("LEG_MODE=mock: external API calls are disabled")
		return
	}

	switch strings.ToLower(llmProvider) {
	case "", "googleai", "gemini":
		// key checked per request
	case "openai":
		if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("OPENAI_BASE_URL") == "" {
			log.Fatal("Please set the OPENAI_API_KEY environment variable for the OpenAI provider.")
		}
		if llmModel == "" {
			log.Fatal("Please set the LLM_MODEL environment variable for the OpenAI provider.")
		}
	case "ollama":
		if llmModel == "" {
			log.Fatal("Please set the LLM_MODEL environment variable for the Ollama provider.")
		}
	default:
		log.Fatalf("Unsupported LLM provider: '%s'. Use 'googleai', 'openai' or 'ollama'.", llmProvider)
	}
}

// loadTemplates loads the summarize prompt template from disk or writes out the
// default on first run so operators can edit it.
func loadTemplates() {
	templateMutex.Lock()
	defer templateMutex.Unlock()

	promptsDir := "prompts"
	if err := os.MkdirAll(promptsDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create prompts directory: %v", err)
	}

	summarizeTemplatePath := filepath.Join(promptsDir, "summarize_prompt.tmpl")
	summarizeTemplateContent, err := os.ReadFile(summarizeTemplatePath)
	if err != nil {
		log.Errorf("Could not read %s, using default template: %v", summarizeTemplatePath, err)
		summarizeTemplateContent = []byte(defaultSummarizePrompt)
		if err := os.WriteFile(summarizeTemplatePath, summarizeTemplateContent, os.ModePerm); err != nil {
			log.Fatalf("Failed to write default summarize template to disk: %v", err)
		}
	}
	summarizeTemplate, err = template.New("summarize").Funcs(sprig.FuncMap()).Parse(string(summarizeTemplateContent))
	if err != nil {
		log.Fatalf("Failed to parse summarize template: %v", err)
	}
}

// createLLM creates the appropriate LLM client based on the provider. In mock
// mode a stub model is returned and no network client is built. For the
// googleai provider a nil model (without error) means no server-side key is
// configured; requests carrying their own key still work.
func createLLM() (llms.Model, error) {
	if isMockMode() {
		return NewMockLLM(), nil
	}

	switch strings.ToLower(llmProvider) {
	case "", "googleai", "gemini":
		if geminiAPIKey == "" {
			return nil, nil
		}
		return NewGoogleAIProvider(context.Background(), resolveModelName(), geminiAPIKey)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			apiKey = constants.DummyAPIKey
		}
		opts := []openai.Option{
			openai.WithModel(resolveModelName()),
			openai.WithToken(apiKey),
		}
		if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		return openai.New(opts...)
	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://127.0.0.1:11434"
		}
		return ollama.New(
			ollama.WithModel(resolveModelName()),
			ollama.WithServerURL(host),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmProvider)
	}
}

func resolveModelName() string {
	if llmModel != "" {
		return llmModel
	}
	return "gemini-2.5-flash"
}
