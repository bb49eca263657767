package profiler

import (
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

// fallbackMediaType is used for images that arrive without a known type.
const fallbackMediaType = "image/jpeg"

const promptTemplate = `You are a world-class "AI Romantic Brand Builder".
Your goal is to create a consistent, attractive, authentic dating profile brand.

User Context:
Name: %s
Age: %s
Gender: %s
Profession: %s
Hobbies/Interests: %s
Desired Vibe: %s
Target Partner: %s
Tone Preference: %s

Task:
1. Rewrite the bio in multiple versions tailored to the tone.
2. Create a brand identity (archetype, colors, style).
3. Analyze the provided images (if any) and give specific direction on what to keep, delete, and shoot new.
4. Optimize the profile with prompts and openers.

Be specific, witty, and incredibly helpful. The output must be strictly JSON matching the schema.`

// BuildPrompt interpolates every answer verbatim.
func BuildPrompt(input models.InterviewInput) string {
	return fmt.Sprintf(promptTemplate,
		input.Name,
		input.Age,
		input.Gender,
		input.Profession,
		input.Hobbies,
		input.Vibe,
		input.TargetPartner,
		input.Tone,
	)
}

// BuildParts returns the instruction text followed by one inline blob per
// photo, in photo order.
func BuildParts(input models.InterviewInput) []genai.Part {
	parts := make([]genai.Part, 0, 1+len(input.Images))
	parts = append(parts, genai.Text(BuildPrompt(input)))

	for _, img := range input.Images {
		mediaType := img.MediaType
		if mediaType == "" {
			mediaType = fallbackMediaType
		}
		parts = append(parts, genai.Blob{MIMEType: mediaType, Data: img.Data})
	}
	return parts
}
