package interview

// Step is one stage of the interview.
type Step int

const (
	StepBasics Step = iota
	StepPersonality
	StepGoals
	StepPhotos
)

// LastStep is the step whose advance submits the interview.
const LastStep = StepPhotos

var stepInfo = [...]struct {
	name     string
	title    string
	subtitle string
}{
	StepBasics:      {"Basics", "The Basics", "Let's start with the essentials."},
	StepPersonality: {"Personality", "Your Story", "What makes you, you?"},
	StepGoals:       {"Goals", "The Goal", "Who are you looking for?"},
	StepPhotos:      {"Photos", "Photo Check", "Upload up to 3 photos for AI analysis."},
}

func (s Step) Valid() bool {
	return s >= StepBasics && s <= LastStep
}

func (s Step) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return stepInfo[s].name
}

func (s Step) Title() string {
	if !s.Valid() {
		return ""
	}
	return stepInfo[s].title
}

func (s Step) Subtitle() string {
	if !s.Valid() {
		return ""
	}
	return stepInfo[s].subtitle
}

// Steps returns every step in order.
func Steps() []Step {
	return []Step{StepBasics, StepPersonality, StepGoals, StepPhotos}
}
