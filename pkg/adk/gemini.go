package adk

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

func NewGeminiProvider(ctx context.Context, apiKey string, modelName string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}

	return &GeminiProvider{client: client, modelName: modelName}, nil
}

func (g *GeminiProvider) Name() string { return "gemini" }

func (g *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	iter := g.client.ListModels(ctx)
	var names []string
	for {
		m, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		// Only list models that support content generation (rough filter)
		if strings.Contains(m.Name, "gemini") {
			// m.Name is like "models/gemini-1.5-pro", we usually want the short form
			names = append(names, strings.TrimPrefix(m.Name, "models/"))
		}
	}
	return names, nil
}

func (g *GeminiProvider) Complete(ctx context.Context, system, user string) (Completion, error) {
	// Fresh model handle per call: the model struct is mutated when the
	// system instruction is set, and providers are shared across goroutines.
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return Completion{}, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Completion{}, fmt.Errorf("no response candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if text.Len() == 0 {
		return Completion{}, fmt.Errorf("empty response content")
	}

	c := Completion{Text: text.String()}
	if resp.UsageMetadata != nil {
		c.Usage = Usage{
			Input:  int64(resp.UsageMetadata.PromptTokenCount),
			Output: int64(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return c, nil
}

func (g *GeminiProvider) Close() error {
	return g.client.Close()
}
