package profiler

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/config"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

type fakeModel struct {
	calls int
	parts []genai.Part
	resp  *genai.GenerateContentResponse
	err   error
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.parts = parts
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(text)}}},
		},
	}
}

func newTestClient(model contentGenerator) *GeminiClient {
	return &GeminiClient{model: model, modelName: DefaultModel, logger: zap.NewNop()}
}

const validReply = `{
  "brandIdentity": {
    "archetype": "The Bold Creative",
    "tagline": "Sketches, summits, and sarcasm",
    "emotionalVibe": "Magnetic confidence",
    "writingStyle": "Direct and punchy",
    "colorPaletteSuggestions": ["black", "rust orange"]
  },
  "bios": {
    "short": "Alex, 28. I design things.",
    "medium": "Designer who climbs. Looking for someone to belay me.",
    "long": "I'm Alex, a 28 year old designer with a soft spot for mountains.",
    "tinder": "Swipe right for bad puns and good espresso.",
    "bumble": "Your move: best breakfast spot in town?",
    "hinge": "Looking for a partner in spontaneous weekend trips.",
    "okcupid": "Designer, climber, and amateur chef."
  },
  "photoAdvice": {
    "analysis": "No photos were provided.",
    "keep": [],
    "discard": [],
    "newIdeas": ["Candid climbing shot", "Golden hour portrait"]
  },
  "optimization": {
    "prompts": [{"question": "I'm looking for", "answer": "Someone who laughs at my puns"}],
    "openers": ["What's the boldest thing you've done this year?"],
    "donts": ["Don't use sunglasses in every photo"]
  }
}`

func TestGenerate_EndToEnd(t *testing.T) {
	model := &fakeModel{resp: textResponse(validReply)}
	client := newTestClient(model)

	input := models.InterviewInput{Name: "Alex", Age: "28", Tone: models.ToneBold, Images: []models.Image{}}
	profile, err := client.Generate(context.Background(), input)
	require.NoError(t, err)

	require.Equal(t, 1, model.calls)
	require.Len(t, model.parts, 1, "no inline image parts without photos")
	prompt, ok := model.parts[0].(genai.Text)
	require.True(t, ok)
	assert.Contains(t, string(prompt), "Alex")
	assert.Contains(t, string(prompt), "28")
	assert.Contains(t, string(prompt), "Tone Preference: bold")

	assert.Equal(t, []string{}, profile.PhotoAdvice.Keep)
	assert.Equal(t, []string{}, profile.PhotoAdvice.Discard)
	assert.Equal(t, "The Bold Creative", profile.BrandIdentity.Archetype)
	assert.Equal(t, []string{"black", "rust orange"}, profile.BrandIdentity.ColorPaletteSuggestions)
	assert.NotEmpty(t, profile.Bios.Tinder)
	assert.NotEmpty(t, profile.Bios.OkCupid)
	require.Len(t, profile.Optimization.Prompts, 1)
	assert.Equal(t, "Someone who laughs at my puns", profile.Optimization.Prompts[0].Answer)
}

func TestGenerate_InlineImageParts(t *testing.T) {
	model := &fakeModel{resp: textResponse(validReply)}
	client := newTestClient(model)

	input := models.InterviewInput{
		Tone: models.ToneFunny,
		Images: []models.Image{
			{MediaType: "image/png", Data: []byte{1}},
			{MediaType: "image/webp", Data: []byte{2}},
			{Data: []byte{3}},
		},
	}
	before := input.Clone()

	_, err := client.Generate(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, model.parts, 4)
	wantTypes := []string{"image/png", "image/webp", "image/jpeg"}
	for i, part := range model.parts[1:] {
		blob, ok := part.(genai.Blob)
		require.True(t, ok, "part %d is not a blob", i+1)
		assert.Equal(t, wantTypes[i], blob.MIMEType)
		assert.Equal(t, []byte{byte(i + 1)}, blob.Data)
	}
	assert.Equal(t, before, input, "input must not be mutated")
}

func TestGenerate_NotConfigured(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), config.GeminiConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, client.Configured())
	assert.Equal(t, DefaultModel, client.ModelName())

	_, err = client.Generate(context.Background(), models.InterviewInput{Tone: models.ToneBold})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NotErrorIs(t, err, ErrGenerationFailed)
	assert.NoError(t, client.Close())
}

func TestGenerate_EmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"blank text", textResponse("   ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(&fakeModel{resp: tt.resp})
			_, err := client.Generate(context.Background(), models.InterviewInput{Tone: models.ToneBold})
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestGenerate_MissingRequiredField(t *testing.T) {
	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(validReply), &raw))
	delete(raw["bios"], "tinder")
	b, err := json.Marshal(raw)
	require.NoError(t, err)

	client := newTestClient(&fakeModel{resp: textResponse(string(b))})
	profile, err := client.Generate(context.Background(), models.InterviewInput{Tone: models.ToneBold})

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "bios.tinder")
}

func TestGenerate_InvalidJSON(t *testing.T) {
	client := newTestClient(&fakeModel{resp: textResponse(`{"brandIdentity": `)})

	_, err := client.Generate(context.Background(), models.InterviewInput{Tone: models.ToneBold})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerate_TransportFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	client := newTestClient(&fakeModel{err: cause})

	_, err := client.Generate(context.Background(), models.InterviewInput{Tone: models.ToneBold})
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, cause)
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile(validReply)
	require.NoError(t, err)
	assert.Equal(t, "Sketches, summits, and sarcasm", p.BrandIdentity.Tagline)

	_, err = ParseProfile("not json")
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = ParseProfile(validReply + `{"extra": true}`)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = ParseProfile("null")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseProfile_OptionalPhotoListsAbsent(t *testing.T) {
	reply := strings.Replace(validReply, `"keep": [],`, "", 1)
	reply = strings.Replace(reply, `"discard": [],`, "", 1)

	p, err := ParseProfile(reply)
	require.NoError(t, err)
	assert.Equal(t, []string{}, p.PhotoAdvice.Keep)
	assert.Equal(t, []string{}, p.PhotoAdvice.Discard)
}

func TestConfigureModel(t *testing.T) {
	model := &genai.GenerativeModel{}
	configureModel(model)

	require.NotNil(t, model.Temperature)
	assert.InDelta(t, 0.7, *model.Temperature, 1e-6)
	assert.Equal(t, "application/json", model.ResponseMIMEType)
	assert.NotNil(t, model.ResponseSchema)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", Outcome(nil))
	assert.Equal(t, "not_configured", Outcome(ErrNotConfigured))
	assert.Equal(t, "empty_response", Outcome(ErrEmptyResponse))
	assert.Equal(t, "malformed_response", Outcome(ErrMalformedResponse))
	assert.Equal(t, "failed", Outcome(errors.New("boom")))
}
