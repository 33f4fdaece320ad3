package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-3-flash-preview"

	menuPrompt = "Analyze this photo of a menu or order list. Extract every item " +
		"name, price and note. Rules: 1. Keep item names in the original language " +
		"of the image, never translate them. 2. If a price differs by size, list " +
		"each size as its own item. 3. Return JSON only."
)

// GeminiAnalyzer implements Analyzer against the Gemini generateContent
// REST endpoint, asking for a JSON response constrained to the extracted
// item schema.
type GeminiAnalyzer struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// NewGeminiAnalyzer builds an analyzer. An empty model selects the default;
// a nil httpc gets a client with a generous timeout, vision calls are slow.
func NewGeminiAnalyzer(apiKey, model string, httpc *http.Client) *GeminiAnalyzer {
	if model == "" {
		model = defaultModel
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 60 * time.Second}
	}
	return &GeminiAnalyzer{apiKey: apiKey, model: model, baseURL: defaultBaseURL, httpc: httpc}
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

// responseSchema constrains the model output to {"orders": [{name, price,
// note}]}, the same envelope the hosted app used.
var responseSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"orders": {
			"type": "ARRAY",
			"items": {
				"type": "OBJECT",
				"properties": {
					"name":  {"type": "STRING"},
					"price": {"type": "NUMBER"},
					"note":  {"type": "STRING"}
				},
				"required": ["name", "price"]
			}
		}
	}
}`)

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiAnalyzer) AnalyzeMenu(ctx context.Context, image []byte, mimeType string) ([]ExtractedItem, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: menuPrompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("vision: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("vision: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision: call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("vision: model returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("vision: decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, nil
	}

	var result struct {
		Orders []ExtractedItem `json:"orders"`
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("vision: decode extracted items: %w", err)
	}
	return result.Orders, nil
}
