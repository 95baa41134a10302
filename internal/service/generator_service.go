package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"formforge/internal/config"
	"formforge/internal/model"
)

const generatePrompt = `You are a form builder assistant. Generate a JSON structure for a form based on the user's request.
Return ONLY valid JSON with this structure:
{
  "title": "Form Title",
  "description": "Form description",
  "elements": [
    {
      "type": "shortText" | "longText" | "numberField" | "singleSelect" | "multiSelect" | "dropdown" | "emailField" | "phoneField" | "datePicker",
      "label": "Question text",
      "required": true,
      "options": ["Option 1", "Option 2"]
    }
  ]
}
Only include "options" for singleSelect, multiSelect and dropdown elements.`

// GeneratorService proxies Gemini to turn a natural-language prompt into a
// form skeleton. One synchronous call per request; failures are surfaced to
// the caller without retries.
type GeneratorService struct {
	config *config.AIConfig
	client *http.Client
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(cfg *config.AIConfig) *GeneratorService {
	return &GeneratorService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Generate produces a form skeleton from the user's prompt.
func (s *GeneratorService) Generate(ctx context.Context, prompt string) (*model.GeneratedForm, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	if !s.config.IsEnabled() {
		return nil, fmt.Errorf("%w: api key not configured", ErrAIUnavailable)
	}

	text, err := s.callGemini(ctx, generatePrompt+"\n\nUser request: "+prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	var form model.GeneratedForm
	if err := json.Unmarshal([]byte(stripFences(text)), &form); err != nil {
		return nil, fmt.Errorf("%w: malformed model output", ErrAIUnavailable)
	}
	return &form, nil
}

// callGemini makes a request to the Gemini API
func (s *GeneratorService) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from gemini")
}

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
