package main

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tmc/langchaingo/llms"
)

// getAvailableTokensForContent calculates how many tokens are available for
// document content by rendering the template with empty content and counting
// the tokens the scaffolding itself uses. Returns -1 when no limit is set.
func getAvailableTokensForContent(tmpl *template.Template, data map[string]interface{}) (int, error) {
	if tokenLimit <= 0 {
		return -1, nil
	}

	templateData := make(map[string]interface{})
	for k, v := range data {
		templateData[k] = v
	}
	templateData["Content"] = ""

	var promptBuffer bytes.Buffer
	if err := tmpl.Execute(&promptBuffer, templateData); err != nil {
		return 0, fmt.Errorf("error executing template: %v", err)
	}

	promptTokens := getTokenCount(promptBuffer.String())
	log.Debugf("Prompt template uses %d tokens", promptTokens)

	// Safety margin for prompt tokens
	promptTokens += 10

	availableTokens := tokenLimit - promptTokens
	if availableTokens < 0 {
		return 0, fmt.Errorf("prompt template exceeds token limit")
	}
	return availableTokens, nil
}

func getTokenCount(content string) int {
	return llms.CountTokens(resolveModelName(), content)
}

// truncateContentByTokens truncates content so its token count does not exceed
// availableTokens, using a binary search on runes for the longest fitting
// prefix. With the limit disabled the content is returned unchanged.
func truncateContentByTokens(content string, availableTokens int) (string, error) {
	if availableTokens < 0 || tokenLimit <= 0 {
		return content, nil
	}
	if getTokenCount(content) <= availableTokens {
		return content, nil
	}

	runes := []rune(content)
	low := 0
	high := len(runes)
	validCut := 0

	for low <= high {
		mid := (low + high) / 2
		if getTokenCount(string(runes[:mid])) <= availableTokens {
			validCut = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	truncated := string(runes[:validCut])
	if getTokenCount(truncated) > availableTokens {
		return "", fmt.Errorf("truncated content still exceeds the available token limit")
	}
	log.Debugf("Content truncated from %d to %d characters", len(content), len(truncated))
	return truncated, nil
}
