// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/proposal-engine/internal/httputil"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// geminiAPIBase is the Generative Language API base URL. Package-level var
// for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

const defaultGeminiModel = "gemini-2.0-flash"

// geminiClient calls the Google Generative Language API over raw HTTP.
type geminiClient struct {
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

func newGemini(cfg types.ProviderConfig) *geminiClient {
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &geminiClient{
		apiKey:    cfg.APIKey,
		model:     model,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: timeout},
	}
}

func (c *geminiClient) Name() string { return "gemini" }

// Generative Language API JSON structures.
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Complete sends the prompt to the model's generateContent endpoint and
// returns the first candidate's concatenated text parts.
func (c *geminiClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     temperature,
			MaxOutputTokens: c.maxTokens,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &types.UpstreamServiceError{Service: "gemini", Err: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", geminiAPIBase, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &types.UpstreamServiceError{Service: "gemini", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return "", classify("gemini", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", &types.UpstreamServiceError{Service: "gemini", Status: resp.StatusCode}
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", &types.UpstreamServiceError{Service: "gemini", Err: err}
	}

	if len(gResp.Candidates) == 0 {
		return "", &types.MalformedOutputError{Raw: "", Err: errGeminiEmpty}
	}

	var text string
	for _, part := range gResp.Candidates[0].Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", &types.MalformedOutputError{Raw: "", Err: errGeminiEmpty}
	}
	return text, nil
}

var errGeminiEmpty = errors.New("gemini API returned no candidates")
