package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/sketchquiz/config"
	"github.com/lshigami/sketchquiz/internal/imagedata"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiGateway captions drawings with a hosted Gemini vision model.
type GeminiGateway struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGateway(ctx context.Context, cfg *config.Config) (*GeminiGateway, error) {
	if cfg.Inference.GeminiApiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required when INFERENCE_PROVIDER is gemini")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Inference.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Inference.GeminiModel)
	model.SetTemperature(0)
	return &GeminiGateway{client: client, model: model}, nil
}

func (g *GeminiGateway) Caption(ctx context.Context, imageBase64 string) (string, error) {
	raw, err := imagedata.Decode(imageBase64)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.ImageData("png", raw), genai.Text(CaptionPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		log.Warn().Msg("Gemini returned no candidates")
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

func (g *GeminiGateway) Close() error {
	return g.client.Close()
}
