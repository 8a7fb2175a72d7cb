// Package imagegen calls an OpenAI-compatible image generation endpoint.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/config"
)

const maxErrorBody = 4 << 10

// Client generates one image per call.
type Client struct {
	url          string
	apiKey       string
	defaultModel string
	http         *http.Client
}

func NewClient(cfg config.ImageGen) *Client {
	return &Client{
		url:          cfg.URL,
		apiKey:       cfg.APIKey,
		defaultModel: cfg.DefaultModel,
		http:         &http.Client{Timeout: cfg.Timeout},
	}
}

type generateRequest struct {
	Model          string `json:"model,omitempty"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type generateResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate returns the raw image bytes for prompt. An empty model selects the
// configured default.
func (c *Client) Generate(ctx context.Context, prompt, model string) ([]byte, error) {
	if c.url == "" {
		return nil, errors.New("image generation is not configured")
	}
	if model == "" {
		model = c.defaultModel
	}
	body, err := json.Marshal(generateRequest{
		Model:          model,
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal image request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build image request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call image provider")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.Errorf("image provider returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode image response")
	}
	if out.Error != nil {
		return nil, errors.Errorf("image provider: %s", out.Error.Message)
	}
	if len(out.Data) == 0 || out.Data[0].B64JSON == "" {
		return nil, errors.New("image provider returned no image")
	}
	img, err := base64.StdEncoding.DecodeString(out.Data[0].B64JSON)
	return img, errors.Wrap(err, "decode image payload")
}
