package persona

import (
	"fmt"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var Genders = []Gender{GenderMale, GenderFemale}

// Noun is the word used for the gender inside a persona context sentence.
func (g Gender) Noun() string {
	if g == GenderMale {
		return "man"
	}
	return "woman"
}

type LifeStage string

const (
	StageCollegeStudent          LifeStage = "college_student"
	StageYoungProfessional       LifeStage = "young_professional"
	StageEstablishedProfessional LifeStage = "established_professional"
	StageSeniorProfessional      LifeStage = "senior_professional"
	StageRetired                 LifeStage = "retired"
)

// Label renders "young_professional" as "Young Professional".
func (s LifeStage) Label() string {
	return titleize(string(s))
}

type Personality string

const (
	PersonalityIntroverted Personality = "introverted"
	PersonalityExtroverted Personality = "extroverted"
	PersonalityAnalytical  Personality = "analytical"
	PersonalityCreative    Personality = "creative"
	PersonalityPractical   Personality = "practical"
	PersonalityEmpathetic  Personality = "empathetic"
)

// DefaultPersonality is used when a life stage declares no likely personalities.
const DefaultPersonality = PersonalityPractical

type FamilyStatus string

const (
	FamilySingle              FamilyStatus = "single"
	FamilyMarriedNoChildren   FamilyStatus = "married_no_children"
	FamilyMarriedWithChildren FamilyStatus = "married_with_children"
	FamilyEmptyNester         FamilyStatus = "empty_nester"
)

// Label is the phrase used for the status inside a context sentence.
func (f FamilyStatus) Label() string {
	switch f {
	case FamilySingle:
		return "Single"
	case FamilyMarriedNoChildren:
		return "Married, no children"
	case FamilyMarriedWithChildren:
		return "Married with children"
	case FamilyEmptyNester:
		return "Married, children grown"
	default:
		return titleize(string(f))
	}
}

// MaxRenderedTraits caps how many traits a persona card shows.
const MaxRenderedTraits = 4

// Persona is a synthetic audience member. Values are never mutated after generation.
type Persona struct {
	Name         string       `json:"name"`
	Gender       Gender       `json:"gender"`
	Age          int          `json:"age"`
	Personality  Personality  `json:"personality"`
	LifeStage    LifeStage    `json:"life_stage"`
	FamilyStatus FamilyStatus `json:"family_status"`
	Context      string       `json:"context"`
	Traits       []string     `json:"traits"`
}

func (p Persona) TopTraits() []string {
	if len(p.Traits) <= MaxRenderedTraits {
		return p.Traits
	}
	return p.Traits[:MaxRenderedTraits]
}

func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case GenderMale, GenderFemale:
		return g, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

func ParseLifeStage(s string) (LifeStage, error) {
	switch st := LifeStage(strings.ToLower(strings.TrimSpace(s))); st {
	case StageCollegeStudent, StageYoungProfessional, StageEstablishedProfessional,
		StageSeniorProfessional, StageRetired:
		return st, nil
	}
	return "", fmt.Errorf("unknown life stage %q", s)
}

func ParsePersonality(s string) (Personality, error) {
	switch p := Personality(strings.ToLower(strings.TrimSpace(s))); p {
	case PersonalityIntroverted, PersonalityExtroverted, PersonalityAnalytical,
		PersonalityCreative, PersonalityPractical, PersonalityEmpathetic:
		return p, nil
	}
	return "", fmt.Errorf("unknown personality %q", s)
}

func titleize(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
