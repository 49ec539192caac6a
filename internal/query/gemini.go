package query

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.0-flash"
	systemPrompt = "You are a savvy HR data analyst."

	maxAnswerTokens = 500
	temperature     = 0.2
)

// Gemini implements Adapter against the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the adapter. The API key is required; the model
// defaults to a fast general-purpose one when unset.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Ask sends the prompt plus the serialized dataset and returns the
// model's answer verbatim.
func (g *Gemini) Ask(ctx context.Context, prompt string, snapshot []byte) (string, error) {
	full := fmt.Sprintf("%s\n\nHere is the starters data:\n%s", prompt, snapshot)
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(full),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr[float32](temperature),
			MaxOutputTokens:   maxAnswerTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return answer, nil
}
