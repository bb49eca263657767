package models

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func sampleProfile() GeneratedProfile {
	return GeneratedProfile{
		BrandIdentity: BrandIdentity{
			Archetype:               "The Intellectual Adventurer",
			Tagline:                 "Maps, mochas, and mischief",
			EmotionalVibe:           "Warm curiosity",
			WritingStyle:            "Short, playful, confident",
			ColorPaletteSuggestions: []string{"forest green", "warm beige"},
		},
		Bios: BioVariations{
			Short:   "Designer by day, trail snacker by weekend.",
			Medium:  "I design things people use. On weekends I hike things people avoid.",
			Long:    "Graphic designer, film photographer, indie coffee connoisseur.",
			Tinder:  "Swipe right if you know a good trailhead.",
			Bumble:  "Tell me your favorite coffee shop and I'll tell you mine.",
			Hinge:   "Looking for a co-pilot for spontaneous road trips.",
			OkCupid: "Sci-fi novels, film cameras, and long walks that end in tacos.",
		},
		PhotoAdvice: PhotoAdvice{
			Analysis: "Strong smile, lighting is dim in the second photo.",
			Keep:     []string{"Hiking photo"},
			Discard:  []string{"Group shot"},
			NewIdeas: []string{"Golden hour portrait"},
		},
		Optimization: ProfileOptimization{
			Prompts: []PromptAnswer{{Question: "My simple pleasures", Answer: "Fresh film rolls"}},
			Openers: []string{"Which trail should I hit next?"},
			Donts:   []string{"Don't lead with your job title"},
		},
	}
}
