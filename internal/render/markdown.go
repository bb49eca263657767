package render

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

// View is one themed section of a generated profile.
type View string

const (
	ViewIdentity View = "identity"
	ViewBios     View = "bios"
	ViewPhotos   View = "photos"
	ViewPrompts  View = "prompts"
)

func Views() []View {
	return []View{ViewIdentity, ViewBios, ViewPhotos, ViewPrompts}
}

func ParseView(s string) (View, error) {
	for _, v := range Views() {
		if string(v) == strings.ToLower(s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Markdown renders every view in order.
func Markdown(p *models.GeneratedProfile) string {
	if p == nil {
		return "No profile generated."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n_%s_\n", p.BrandIdentity.Archetype, p.BrandIdentity.Tagline))
	for _, v := range Views() {
		b.WriteString("\n---\n\n")
		writeView(&b, p, v)
	}
	return b.String()
}

// Section renders a single view.
func Section(p *models.GeneratedProfile, v View) string {
	var b strings.Builder
	writeView(&b, p, v)
	return b.String()
}

func writeView(b *strings.Builder, p *models.GeneratedProfile, v View) {
	if p == nil {
		return
	}
	switch v {
	case ViewIdentity:
		writeIdentity(b, p.BrandIdentity)
	case ViewBios:
		writeBios(b, p.Bios)
	case ViewPhotos:
		writePhotos(b, p.PhotoAdvice)
	case ViewPrompts:
		writePrompts(b, p.Optimization)
	}
}

func writeIdentity(b *strings.Builder, id models.BrandIdentity) {
	b.WriteString("## Brand Identity\n\n")
	b.WriteString(fmt.Sprintf("- Archetype: %s\n", id.Archetype))
	b.WriteString(fmt.Sprintf("- Tagline: %s\n", id.Tagline))
	b.WriteString(fmt.Sprintf("- Emotional Vibe: %s\n", id.EmotionalVibe))
	b.WriteString(fmt.Sprintf("- Writing Style: %s\n", id.WritingStyle))
	writeList(b, "Color Palette", id.ColorPaletteSuggestions)
}

func writeBios(b *strings.Builder, bios models.BioVariations) {
	b.WriteString("## Bios\n\n")
	entries := []struct{ label, text string }{
		{"Short", bios.Short},
		{"Medium", bios.Medium},
		{"Long", bios.Long},
		{"Tinder", bios.Tinder},
		{"Bumble", bios.Bumble},
		{"Hinge", bios.Hinge},
		{"OkCupid", bios.OkCupid},
	}
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("**%s:**\n%s\n\n", e.label, strings.TrimSpace(e.text)))
	}
}

func writePhotos(b *strings.Builder, advice models.PhotoAdvice) {
	b.WriteString("## Photo Strategy\n\n")
	b.WriteString(strings.TrimSpace(advice.Analysis))
	b.WriteString("\n")
	writeListOr(b, "Keep", advice.Keep, "Nothing flagged.")
	writeListOr(b, "Discard", advice.Discard, "Nothing flagged.")
	writeList(b, "New Photo Ideas", advice.NewIdeas)
}

func writePrompts(b *strings.Builder, opt models.ProfileOptimization) {
	b.WriteString("## Prompts & Openers\n")
	if len(opt.Prompts) > 0 {
		b.WriteString("\n**Prompts:**\n")
		for _, pa := range opt.Prompts {
			b.WriteString(fmt.Sprintf("- %s\n  > %s\n", strings.TrimSpace(pa.Question), strings.TrimSpace(pa.Answer)))
		}
	}
	writeList(b, "Openers", opt.Openers)
	writeList(b, "Don'ts", opt.Donts)
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n**%s:**\n", title))
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s\n", strings.TrimSpace(item)))
	}
}

func writeListOr(b *strings.Builder, title string, items []string, empty string) {
	if len(items) == 0 {
		b.WriteString(fmt.Sprintf("\n**%s:** %s\n", title, empty))
		return
	}
	writeList(b, title, items)
}
