package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

func profile() *models.GeneratedProfile {
	return &models.GeneratedProfile{
		BrandIdentity: models.BrandIdentity{
			Archetype:               "The Playful Intellectual",
			Tagline:                 "Books, banter, brunch",
			EmotionalVibe:           "Cozy",
			WritingStyle:            "Light",
			ColorPaletteSuggestions: []string{"navy"},
		},
		Bios: models.BioVariations{
			Short: "s", Medium: "m", Long: "l",
			Tinder: "tinder bio", Bumble: "bumble bio", Hinge: "hinge bio", OkCupid: "okc bio",
		},
		PhotoAdvice: models.PhotoAdvice{
			Analysis: "Good light.",
			Keep:     []string{},
			Discard:  []string{"Blurry selfie"},
			NewIdeas: []string{"Bookstore candid"},
		},
		Optimization: models.ProfileOptimization{
			Prompts: []models.PromptAnswer{{Question: "Two truths", Answer: "and a lie"}},
			Openers: []string{"Hi"},
			Donts:   []string{"No mirror selfies"},
		},
	}
}

func TestMarkdown_AllViews(t *testing.T) {
	out := Markdown(profile())

	assert.Contains(t, out, "# The Playful Intellectual")
	assert.Contains(t, out, "## Brand Identity")
	assert.Contains(t, out, "**Tinder:**\ntinder bio")
	assert.Contains(t, out, "**Keep:** Nothing flagged.")
	assert.Contains(t, out, "- Blurry selfie")
	assert.Contains(t, out, "- Two truths\n  > and a lie")
	assert.Contains(t, out, "**Don'ts:**\n- No mirror selfies")
}

func TestMarkdown_Nil(t *testing.T) {
	assert.Equal(t, "No profile generated.", Markdown(nil))
	assert.Empty(t, Section(nil, ViewBios))
}

func TestSection(t *testing.T) {
	out := Section(profile(), ViewBios)
	assert.Contains(t, out, "## Bios")
	assert.NotContains(t, out, "## Brand Identity")
}

func TestParseView(t *testing.T) {
	v, err := ParseView("Photos")
	require.NoError(t, err)
	assert.Equal(t, ViewPhotos, v)

	_, err = ParseView("gallery")
	assert.Error(t, err)
}
