package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Sampling settings keep the answer to a single short line.
const (
	DefaultModel    = "gemini-1.5-flash"
	temperature     = 0.6
	topP            = 0.9
	topK            = 30
	maxOutputTokens = 18
)

// GeminiModel is a ChatModel backed by the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiModel(ctx context.Context, apiKey, modelName string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is not configured")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	m := client.GenerativeModel(modelName)
	m.SetTemperature(temperature)
	m.SetTopP(topP)
	m.SetTopK(topK)
	m.SetMaxOutputTokens(maxOutputTokens)
	m.ResponseMIMEType = "text/plain"

	return &GeminiModel{client: client, model: m}, nil
}

// Send starts a new chat for every prompt so no history carries over.
func (g *GeminiModel) Send(ctx context.Context, prompt string) (string, bool, error) {
	cs := g.model.StartChat()
	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", false, err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false, nil
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), true, nil
}

func (g *GeminiModel) Close() error {
	return g.client.Close()
}
