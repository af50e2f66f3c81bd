package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/gin-gonic/gin"
)

// summarizeHandler handles the POST /api/summarize endpoint
func (app *App) summarizeHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request payload: %v", err)})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Missing "text" in request body.`})
		return
	}

	llm, err := app.modelForRequest(ctx, req.APIKey)
	if err != nil {
		if errors.Is(err, errMissingAPIKey) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to initialize AI client: %v", err)})
		}
		log.Errorf("Could not resolve LLM for request: %v", err)
		return
	}

	summary, err := app.summarizeDocument(ctx, llm, req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("Error generating analysis: %v", err)})
		log.Errorf("Error generating analysis: %v", err)
		return
	}

	c.JSON(http.StatusOK, SummarizeResponse{Summary: summary})
}

// healthHandler handles the GET /health endpoint
func healthHandler(c *gin.Context) {
	mode := "live"
	if isMockMode() {
		mode = "mock"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": mode})
}

// getPromptsHandler handles the GET /api/prompts endpoint
func getPromptsHandler(c *gin.Context) {
	templateMutex.RLock()
	defer templateMutex.RUnlock()

	summarizeTemplateContent, err := os.ReadFile(filepath.Join("prompts", "summarize_prompt.tmpl"))
	if err != nil {
		summarizeTemplateContent = []byte(defaultSummarizePrompt)
	}

	c.JSON(http.StatusOK, gin.H{
		"summarize_template": string(summarizeTemplateContent),
	})
}

// updatePromptsHandler handles the POST /api/prompts endpoint
func updatePromptsHandler(c *gin.Context) {
	var req struct {
		SummarizeTemplate string `json:"summarize_template"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	templateMutex.Lock()
	defer templateMutex.Unlock()

	if req.SummarizeTemplate != "" {
		t, err := template.New("summarize").Funcs(sprig.FuncMap()).Parse(req.SummarizeTemplate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid summarize template: %v", err)})
			return
		}
		summarizeTemplate = t
		err = os.WriteFile(filepath.Join("prompts", "summarize_prompt.tmpl"), []byte(req.SummarizeTemplate), 0644)
		if err != nil {
			log.Errorf("Failed to write summarize_prompt.tmpl: %v", err)
		}
	}

	c.Status(http.StatusOK)
}
