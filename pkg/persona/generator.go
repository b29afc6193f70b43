package persona

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

// DefaultBatchSize is the number of personas offered per shuffle.
const DefaultBatchSize = 5

// fallbackAge is used when a life stage is missing from the tables.
const fallbackAge = 30

// Source is the randomness the generator draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a seeded source. A zero seed picks a random one.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Constraints pins any subset of the primary draws. Empty fields are drawn at random.
type Constraints struct {
	Gender      Gender
	LifeStage   LifeStage
	Personality Personality
}

type Generator struct {
	mu     sync.Mutex
	tables *Tables
	rng    Source
}

func NewGenerator(tables *Tables, rng Source) *Generator {
	if tables == nil {
		tables = DefaultTables()
	}
	if rng == nil {
		rng = NewSource(0)
	}
	return &Generator{tables: tables, rng: rng}
}

func (g *Generator) Tables() *Tables {
	return g.tables
}

// Generate draws one persona with every attribute aligned to its life stage.
func (g *Generator) Generate() Persona {
	return g.GenerateWithConstraints(Constraints{})
}

// GenerateWithConstraints behaves like Generate but keeps any pinned value.
// Age, family status and traits always follow the resolved life stage and personality.
func (g *Generator) GenerateWithConstraints(c Constraints) Persona {
	g.mu.Lock()
	defer g.mu.Unlock()

	gender := c.Gender
	if gender == "" {
		gender = Genders[g.rng.IntN(len(Genders))]
	}

	stage := c.LifeStage
	if stage == "" {
		stage = g.tables.LifeStages[g.rng.IntN(len(g.tables.LifeStages))].Stage
	}

	age := g.ageFor(stage)

	personality := c.Personality
	if personality == "" {
		personality = g.personalityFor(stage)
	}

	family := g.familyStatusFor(stage)
	name := g.nameFor(gender)

	var traits []string
	if profile, ok := g.tables.Personalities[personality]; ok {
		traits = append(traits, profile.Traits...)
	}

	return Persona{
		Name:         name,
		Gender:       gender,
		Age:          age,
		Personality:  personality,
		LifeStage:    stage,
		FamilyStatus: family,
		Context:      g.contextFor(age, gender, family, stage),
		Traits:       traits,
	}
}

// GenerateBatch returns up to count personas with distinct full names.
// Duplicates are retried, but only count*10 draws are made in total, so the
// result may be shorter than count. A count of zero or less yields an empty
// batch.
func (g *Generator) GenerateBatch(count int) []Persona {
	if count <= 0 {
		return []Persona{}
	}

	personas := make([]Persona, 0, count)
	used := make(map[string]struct{}, count)

	maxAttempts := count * 10
	for attempts := 0; len(personas) < count && attempts < maxAttempts; attempts++ {
		p := g.Generate()
		if _, dup := used[p.Name]; dup {
			continue
		}
		used[p.Name] = struct{}{}
		personas = append(personas, p)
	}
	return personas
}

func (g *Generator) ageFor(stage LifeStage) int {
	profile, ok := g.tables.Stage(stage)
	if !ok {
		return fallbackAge
	}
	lo, hi := profile.AgeRange.Min, profile.AgeRange.Max
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) personalityFor(stage LifeStage) Personality {
	profile, ok := g.tables.Stage(stage)
	if !ok || len(profile.LikelyPersonalities) == 0 {
		return DefaultPersonality
	}
	return profile.LikelyPersonalities[g.rng.IntN(len(profile.LikelyPersonalities))]
}

func (g *Generator) familyStatusFor(stage LifeStage) FamilyStatus {
	compatible := g.tables.CompatibleFamilyStatuses(stage)
	if len(compatible) == 0 {
		return FamilySingle
	}
	return compatible[g.rng.IntN(len(compatible))]
}

func (g *Generator) nameFor(gender Gender) string {
	first := g.tables.FirstNames(gender)
	family := g.tables.FamilyNames
	return first[g.rng.IntN(len(first))] + " " + family[g.rng.IntN(len(family))]
}

func (g *Generator) contextFor(age int, gender Gender, family FamilyStatus, stage LifeStage) string {
	var fragment string
	if profile, ok := g.tables.Stage(stage); ok {
		fragment = profile.Context
	}
	return strings.TrimSpace(fmt.Sprintf("%d year old %s, %s. %s", age, gender.Noun(), family.Label(), fragment))
}
