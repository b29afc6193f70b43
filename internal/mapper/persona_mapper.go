package mapper

import (
	"paraphrase-be/internal/dto"
	"paraphrase-be/pkg/persona"
)

type PersonaMapper struct{}

func NewPersonaMapper() *PersonaMapper {
	return &PersonaMapper{}
}

func (m *PersonaMapper) ToResponse(p persona.Persona) *dto.PersonaResponse {
	return &dto.PersonaResponse{
		Name:              p.Name,
		Gender:            string(p.Gender),
		Age:               p.Age,
		Personality:       string(p.Personality),
		LifeStage:         string(p.LifeStage),
		LifeStageLabel:    p.LifeStage.Label(),
		FamilyStatus:      string(p.FamilyStatus),
		FamilyStatusLabel: p.FamilyStatus.Label(),
		Context:           p.Context,
		Traits:            append([]string{}, p.Traits...),
		TopTraits:         append([]string{}, p.TopTraits()...),
	}
}

func (m *PersonaMapper) ToResponses(ps []persona.Persona) []*dto.PersonaResponse {
	res := make([]*dto.PersonaResponse, 0, len(ps))
	for _, p := range ps {
		res = append(res, m.ToResponse(p))
	}
	return res
}

// ToConstraints assumes the request already passed validation; unknown
// values are left unpinned.
func (m *PersonaMapper) ToConstraints(req *dto.ConstrainedPersonaRequest) persona.Constraints {
	var c persona.Constraints
	if req == nil {
		return c
	}
	if g, err := persona.ParseGender(req.Gender); err == nil {
		c.Gender = g
	}
	if s, err := persona.ParseLifeStage(req.LifeStage); err == nil {
		c.LifeStage = s
	}
	if p, err := persona.ParsePersonality(req.Personality); err == nil {
		c.Personality = p
	}
	return c
}
