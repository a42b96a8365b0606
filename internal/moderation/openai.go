// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	defaultOpenAIBaseURL  = "https://api.openai.com/v1"
	openAIModerationModel = "omni-moderation-latest"
)

// OpenAIClassifier uses the OpenAI Moderation API (POST /v1/moderations),
// which is free for all OpenAI API key holders.
type OpenAIClassifier struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIClassifier creates a classifier backed by OpenAI's moderation API.
// An empty baseURL selects the public endpoint.
func NewOpenAIClassifier(apiKey, baseURL string) *OpenAIClassifier {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIClassifier{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Classify sends text to the moderation endpoint. Confidence is the highest
// category score the model reports, clamped to [0, 1].
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (*ToxicityResult, error) {
	payload, err := json.Marshal(openAIModRequest{
		Model: openAIModerationModel,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("moderation marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/moderations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("moderation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("moderation read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moderation API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result openAIModResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("moderation unmarshal: %w", err)
	}

	if len(result.Results) == 0 {
		return &ToxicityResult{Confidence: 0.1, Categories: []string{}}, nil
	}
	return toToxicityResult(result.Results[0]), nil
}

func toToxicityResult(r openAIModResult) *ToxicityResult {
	var maxScore float64
	for _, score := range r.CategoryScores {
		if score > maxScore {
			maxScore = score
		}
	}

	flagged := []string{}
	for cat, isFlagged := range r.Categories {
		if isFlagged {
			// "hate/threatening" -> "hate-threatening" to match local category names.
			flagged = append(flagged, strings.NewReplacer("/", "-", "_", "-").Replace(cat))
		}
	}
	sort.Strings(flagged)

	out := &ToxicityResult{
		IsToxic:    r.Flagged,
		Confidence: clamp01(maxScore),
		Categories: flagged,
	}
	if r.Flagged {
		out.Suggestion = DefaultSuggestion
	}
	return out
}

// --- Request/Response types ---

type openAIModRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIModResponse struct {
	Results []openAIModResult `json:"results"`
}

type openAIModResult struct {
	Flagged        bool               `json:"flagged"`
	Categories     map[string]bool    `json:"categories"`
	CategoryScores map[string]float64 `json:"category_scores"`
}
