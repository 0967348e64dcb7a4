package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lshigami/sketchquiz/config"
)

type ollamaGenerateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
	Stream bool     `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// OllamaGateway calls a non-streaming Ollama compatible /api/generate endpoint.
type OllamaGateway struct {
	url    string
	model  string
	client *http.Client
}

func NewOllamaGateway(cfg *config.Config, client *http.Client) *OllamaGateway {
	if client == nil {
		client = &http.Client{}
	}
	return &OllamaGateway{
		url:    cfg.Inference.OllamaURL,
		model:  cfg.Inference.OllamaModel,
		client: client,
	}
}

func (g *OllamaGateway) Caption(ctx context.Context, imageBase64 string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  g.model,
		Prompt: CaptionPrompt,
		Images: []string{imageBase64},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encode ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &GatewayStatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return out.Response, nil
}
