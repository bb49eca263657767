package profiler

import "github.com/google/generative-ai-go/genai"

func stringField(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func stringList(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Items:       &genai.Schema{Type: genai.TypeString},
		Description: description,
	}
}

// ProfileSchema mirrors models.GeneratedProfile field for field. Every field
// is required except the three photoAdvice lists.
func ProfileSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"brandIdentity": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"archetype":               stringField("e.g., The Intellectual Adventurer"),
					"tagline":                 stringField("A catchy 3-5 word slogan for their profile"),
					"emotionalVibe":           stringField("The feeling users get when seeing the profile"),
					"writingStyle":            stringField("Guidance on how to write future messages"),
					"colorPaletteSuggestions": stringList("Colors to wear or look for in backgrounds"),
				},
				Required: []string{"archetype", "tagline", "emotionalVibe", "writingStyle", "colorPaletteSuggestions"},
			},
			"bios": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"short":   stringField("One-liner"),
					"medium":  stringField("2-3 sentences"),
					"long":    stringField("Full bio with personality"),
					"tinder":  stringField("Tinder specific version"),
					"bumble":  stringField("Bumble specific version"),
					"hinge":   stringField("Hinge specific version"),
					"okcupid": stringField("OKCupid specific version"),
				},
				Required: []string{"short", "medium", "long", "tinder", "bumble", "hinge", "okcupid"},
			},
			"photoAdvice": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"analysis": stringField("General critique of uploaded photos"),
					"keep":     stringList("Descriptions of photos to keep"),
					"discard":  stringList("Descriptions of photos to remove"),
					"newIdeas": stringList("Specific ideas for new photos (poses, lighting)"),
				},
				Required: []string{"analysis"},
			},
			"optimization": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"prompts": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"question": {Type: genai.TypeString},
								"answer":   {Type: genai.TypeString},
							},
							Required: []string{"question", "answer"},
						},
					},
					"openers": stringList("Opening messages to send to matches"),
					"donts":   stringList("Things to avoid on the profile"),
				},
				Required: []string{"prompts", "openers", "donts"},
			},
		},
		Required: []string{"brandIdentity", "bios", "photoAdvice", "optimization"},
	}
}
