package llm

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/hpungsan/nobi/internal/errors"
)

// APIKeyEnv is the environment variable holding the Gemini API key.
const APIKeyEnv = "GEMINI_API_KEY"

// ErrNoAPIKey is returned by NewGemini when no API key is available.
var ErrNoAPIKey = stderrors.New(APIKeyEnv + " is not set")

// Generator turns a prompt into raw itinerary text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini generates itinerary text with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// Options configures NewGemini. Empty fields fall back to the environment and defaults.
type Options struct {
	APIKey string
	Model  string

	// BaseURL overrides the API endpoint.
	BaseURL string
}

// NewGemini creates a Gemini generator. The API key defaults to $GEMINI_API_KEY.
func NewGemini(ctx context.Context, opts Options) (*Gemini, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		key = strings.TrimSpace(os.Getenv(APIKeyEnv))
	}
	if key == "" {
		return nil, ErrNoAPIKey
	}

	cfg := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Gemini{client: client, model: model}, nil
}

// Model returns the model name used for generation.
func (g *Gemini) Model() string {
	return g.model
}

// Generate sends prompt to the model and returns the response text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	log := zerolog.Ctx(ctx)
	log.Debug().Str("model", g.model).Int("prompt_chars", len(prompt)).Msg("generating itinerary")

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.NewUpstream("generation", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.NewUpstream("generation", stderrors.New("no itinerary generated"))
	}
	return text, nil
}
