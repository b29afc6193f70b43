package persona

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed attributes.yaml
var attributesYAML []byte

type AgeRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type StageProfile struct {
	Stage               LifeStage     `yaml:"stage"`
	AgeRange            AgeRange      `yaml:"ageRange"`
	LikelyPersonalities []Personality `yaml:"likelyPersonalities"`
	Context             string        `yaml:"context"`
}

type PersonalityProfile struct {
	Description string   `yaml:"description"`
	Traits      []string `yaml:"traits"`
}

type FamilyProfile struct {
	Status       FamilyStatus `yaml:"status"`
	LikelyStages []LifeStage  `yaml:"likelyStages"`
}

// Tables holds the static attribute data the generator draws from.
// Slices keep declaration order so draws are reproducible for a given Source.
type Tables struct {
	LifeStages       []StageProfile                     `yaml:"lifeStages"`
	Personalities    map[Personality]PersonalityProfile `yaml:"personalities"`
	FamilyStatuses   []FamilyProfile                    `yaml:"familyStatuses"`
	MaleFirstNames   []string                           `yaml:"maleFirstNames"`
	FemaleFirstNames []string                           `yaml:"femaleFirstNames"`
	FamilyNames      []string                           `yaml:"familyNames"`
}

var (
	defaultTablesOnce sync.Once
	defaultTables     *Tables
)

// DefaultTables returns the embedded attribute tables.
func DefaultTables() *Tables {
	defaultTablesOnce.Do(func() {
		t, err := LoadTables(attributesYAML)
		if err != nil {
			panic(fmt.Sprintf("persona: embedded attribute tables are invalid: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

func LoadTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode attribute tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) validate() error {
	if len(t.LifeStages) == 0 {
		return fmt.Errorf("attribute tables declare no life stages")
	}
	for _, s := range t.LifeStages {
		if s.AgeRange.Min > s.AgeRange.Max {
			return fmt.Errorf("life stage %s has inverted age range %d-%d", s.Stage, s.AgeRange.Min, s.AgeRange.Max)
		}
		for _, p := range s.LikelyPersonalities {
			if _, ok := t.Personalities[p]; !ok {
				return fmt.Errorf("life stage %s references unknown personality %s", s.Stage, p)
			}
		}
	}
	if len(t.MaleFirstNames) == 0 || len(t.FemaleFirstNames) == 0 || len(t.FamilyNames) == 0 {
		return fmt.Errorf("attribute tables need male, female and family name pools")
	}
	return nil
}

func (t *Tables) Stage(stage LifeStage) (StageProfile, bool) {
	for _, s := range t.LifeStages {
		if s.Stage == stage {
			return s, true
		}
	}
	return StageProfile{}, false
}

// CompatibleFamilyStatuses lists, in table order, every status whose
// compatibility set includes stage.
func (t *Tables) CompatibleFamilyStatuses(stage LifeStage) []FamilyStatus {
	var out []FamilyStatus
	for _, f := range t.FamilyStatuses {
		for _, s := range f.LikelyStages {
			if s == stage {
				out = append(out, f.Status)
				break
			}
		}
	}
	return out
}

func (t *Tables) FirstNames(g Gender) []string {
	if g == GenderMale {
		return t.MaleFirstNames
	}
	return t.FemaleFirstNames
}
