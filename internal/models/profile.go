package models

type BrandIdentity struct {
	Archetype               string   `json:"archetype" validate:"required"`
	Tagline                 string   `json:"tagline" validate:"required"`
	EmotionalVibe           string   `json:"emotionalVibe" validate:"required"`
	WritingStyle            string   `json:"writingStyle" validate:"required"`
	ColorPaletteSuggestions []string `json:"colorPaletteSuggestions" validate:"required"`
}

type BioVariations struct {
	Short   string `json:"short" validate:"required"`
	Medium  string `json:"medium" validate:"required"`
	Long    string `json:"long" validate:"required"`
	Tinder  string `json:"tinder" validate:"required"`
	Bumble  string `json:"bumble" validate:"required"`
	Hinge   string `json:"hinge" validate:"required"`
	OkCupid string `json:"okcupid" validate:"required"`
}

// PhotoAdvice lists may be empty; an empty Keep or Discard means nothing
// was flagged.
type PhotoAdvice struct {
	Analysis string   `json:"analysis" validate:"required"`
	Keep     []string `json:"keep"`
	Discard  []string `json:"discard"`
	NewIdeas []string `json:"newIdeas"`
}

type PromptAnswer struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type ProfileOptimization struct {
	Prompts []PromptAnswer `json:"prompts" validate:"required,dive"`
	Openers []string       `json:"openers" validate:"required"`
	Donts   []string       `json:"donts" validate:"required"`
}

type GeneratedProfile struct {
	BrandIdentity BrandIdentity       `json:"brandIdentity"`
	Bios          BioVariations       `json:"bios"`
	PhotoAdvice   PhotoAdvice         `json:"photoAdvice"`
	Optimization  ProfileOptimization `json:"optimization"`
}

// Validate checks every required field is present.
func (p *GeneratedProfile) Validate() error {
	return validateStruct(p)
}

// Normalize replaces absent optional photo lists with empty ones.
func (p *GeneratedProfile) Normalize() {
	if p.PhotoAdvice.Keep == nil {
		p.PhotoAdvice.Keep = []string{}
	}
	if p.PhotoAdvice.Discard == nil {
		p.PhotoAdvice.Discard = []string{}
	}
	if p.PhotoAdvice.NewIdeas == nil {
		p.PhotoAdvice.NewIdeas = []string{}
	}
}
