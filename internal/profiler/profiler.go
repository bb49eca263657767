package profiler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/config"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/metrics"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

const (
	DefaultModel = "gemini-2.5-flash"

	// Temperature is fixed for every call.
	Temperature float32 = 0.7
)

var (
	ErrNotConfigured     = errors.New("profiler: Gemini API key is not configured")
	ErrEmptyResponse     = errors.New("profiler: empty response from model")
	ErrMalformedResponse = errors.New("profiler: malformed response from model")
	ErrGenerationFailed  = errors.New("profiler: generation failed")
)

// contentGenerator is the part of *genai.GenerativeModel the client calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	client    *genai.Client
	model     contentGenerator
	modelName string
	logger    *zap.Logger
}

// NewGeminiClient builds a client from injected configuration. Without an
// API key the client is returned unconfigured and every Generate call fails
// with ErrNotConfigured before any network traffic.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := cfg.Model
	if name == "" {
		name = DefaultModel
	}

	g := &GeminiClient{modelName: name, logger: logger.Named("profiler")}
	if cfg.APIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(name)
	configureModel(model)

	g.client = client
	g.model = model
	return g, nil
}

func configureModel(model *genai.GenerativeModel) {
	model.SetTemperature(Temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = ProfileSchema()
}

func (g *GeminiClient) Configured() bool {
	return g.model != nil
}

func (g *GeminiClient) ModelName() string {
	return g.modelName
}

func (g *GeminiClient) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Generate issues exactly one model call for the input and returns the
// parsed profile. The input is only read.
func (g *GeminiClient) Generate(ctx context.Context, input models.InterviewInput) (*models.GeneratedProfile, error) {
	start := time.Now()
	profile, err := g.generate(ctx, input)
	elapsed := time.Since(start)

	outcome := Outcome(err)
	metrics.GenerationTotal.WithLabelValues(outcome).Inc()
	metrics.GenerationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	fields := []zap.Field{
		zap.String("model", g.modelName),
		zap.String("outcome", outcome),
		zap.Int("images", len(input.Images)),
		zap.String("tone", string(input.Tone)),
		zap.Duration("duration", elapsed),
	}
	if err != nil {
		g.logger.Error("profile generation failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	g.logger.Info("profile generated", fields...)
	return profile, nil
}

func (g *GeminiClient) generate(ctx context.Context, input models.InterviewInput) (*models.GeneratedProfile, error) {
	if g.model == nil {
		return nil, ErrNotConfigured
	}

	resp, err := g.model.GenerateContent(ctx, BuildParts(input)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}
	return ParseProfile(text)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// Outcome maps a Generate error to its metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrNotConfigured):
		return metrics.OutcomeNotConfigured
	case errors.Is(err, ErrEmptyResponse):
		return metrics.OutcomeEmpty
	case errors.Is(err, ErrMalformedResponse):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeFailed
	}
}
