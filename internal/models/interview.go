package models

import (
	"fmt"
	"strings"
)

type Tone string

const (
	ToneBold        Tone = "bold"
	ToneFunny       Tone = "funny"
	ToneFlirty      Tone = "flirty"
	ToneSerious     Tone = "serious"
	ToneClassy      Tone = "classy"
	ToneAdventurous Tone = "adventurous"
)

type ToneOption struct {
	ID          Tone   `json:"id"`
	Label       string `json:"label"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

var toneOptions = []ToneOption{
	{ID: ToneBold, Label: "Bold", Emoji: "🦁", Description: "Confident & direct"},
	{ID: ToneFunny, Label: "Funny", Emoji: "😂", Description: "Witty & humorous"},
	{ID: ToneFlirty, Label: "Flirty", Emoji: "😉", Description: "Playful & charming"},
	{ID: ToneSerious, Label: "Serious", Emoji: "🧐", Description: "Intentional & deep"},
	{ID: ToneClassy, Label: "Classy", Emoji: "🥂", Description: "Elegant & refined"},
	{ID: ToneAdventurous, Label: "Adventurous", Emoji: "🧗", Description: "Spontaneous & fun"},
}

// Tones returns the selectable tones in display order.
func Tones() []ToneOption {
	out := make([]ToneOption, len(toneOptions))
	copy(out, toneOptions)
	return out
}

func (t Tone) Valid() bool {
	for _, opt := range toneOptions {
		if opt.ID == t {
			return true
		}
	}
	return false
}

func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown tone %q", s)
	}
	return t, nil
}

// InterviewInput is the questionnaire answers plus attached photos.
// Only Tone is required for submission.
type InterviewInput struct {
	Name          string  `json:"name"`
	Age           string  `json:"age"`
	Gender        string  `json:"gender"`
	Profession    string  `json:"profession"`
	Hobbies       string  `json:"hobbies"`
	Vibe          string  `json:"vibe"`
	TargetPartner string  `json:"targetPartner"`
	Tone          Tone    `json:"tone" validate:"required,oneof=bold funny flirty serious classy adventurous"`
	Images        []Image `json:"images" validate:"max=3"`
}

// Clone returns a deep copy, image bytes included.
func (in InterviewInput) Clone() InterviewInput {
	out := in
	out.Images = make([]Image, len(in.Images))
	for i, img := range in.Images {
		out.Images[i] = img.Clone()
	}
	return out
}

func (in InterviewInput) Validate() error {
	return validateStruct(in)
}
